package svm

import (
	"context"
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

type BalanceClient interface {
	GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error)
}

// BalanceSource pairs a chain's rpc client with its configured commitment
// level.
type BalanceSource struct {
	Client     BalanceClient
	Commitment rpc.CommitmentType
}

// BalanceReader reads native lamport balances across the configured SVM
// chains, each at its own commitment level.
type BalanceReader struct {
	sources map[uint64]BalanceSource
}

func NewBalanceReader(sources map[uint64]BalanceSource) *BalanceReader {
	return &BalanceReader{
		sources: sources,
	}
}

func (r *BalanceReader) GasBalance(ctx context.Context, chainID uint64, address string) (*big.Int, error) {
	source, ok := r.sources[chainID]
	if !ok {
		return nil, fmt.Errorf("no client for chain %d", chainID)
	}

	account, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return nil, fmt.Errorf("invalid address %s: %w", address, err)
	}

	commitment := source.Commitment
	if commitment == "" {
		commitment = rpc.CommitmentConfirmed
	}

	result, err := source.Client.GetBalance(ctx, account, commitment)
	if err != nil {
		return nil, err
	}

	return new(big.Int).SetUint64(result.Value), nil
}
