package evm

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type ChainClient interface {
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

type GasEstimator struct {
	client ChainClient
}

func NewGasEstimator(client ChainClient) *GasEstimator {
	return &GasEstimator{
		client: client,
	}
}

// GasPrice estimates the current gas price for the chain. EIP-1559 fee data
// is preferred; nodes that do not expose it fall back to the legacy gas
// price query.
func (e *GasEstimator) GasPrice(ctx context.Context) (*big.Int, error) {
	tip, err := e.client.SuggestGasTipCap(ctx)
	if err == nil {
		head, err := e.client.HeaderByNumber(ctx, nil)
		if err == nil && head.BaseFee != nil {
			// maxFeePerGas = 2 * baseFee + tip, the doubling absorbs
			// base fee growth between estimation and inclusion
			return new(big.Int).Add(new(big.Int).Mul(head.BaseFee, big.NewInt(2)), tip), nil
		}
	}

	return e.client.SuggestGasPrice(ctx)
}

// BalanceReader reads native gas balances across the configured EVM chains.
type BalanceReader struct {
	clients map[uint64]ChainClient
}

func NewBalanceReader(clients map[uint64]ChainClient) *BalanceReader {
	return &BalanceReader{
		clients: clients,
	}
}

func (r *BalanceReader) GasBalance(ctx context.Context, chainID uint64, address string) (*big.Int, error) {
	client, ok := r.clients[chainID]
	if !ok {
		return nil, fmt.Errorf("no client for chain %d", chainID)
	}

	return client.BalanceAt(ctx, common.HexToAddress(address), nil)
}
