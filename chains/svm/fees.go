package svm

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

type RPCClient interface {
	GetRecentPrioritizationFees(ctx context.Context, accounts solana.PublicKeySlice) ([]rpc.PriorizationFeeResult, error)
}

// FeeHistory exposes recent prioritization fee history for the configured
// SVM chains.
type FeeHistory struct {
	clients map[uint64]RPCClient
}

func NewFeeHistory(clients map[uint64]RPCClient) *FeeHistory {
	return &FeeHistory{
		clients: clients,
	}
}

// RecentFees returns the prioritization fees of up to limit recent requests
// on the chain, newest first.
func (f *FeeHistory) RecentFees(ctx context.Context, chainID uint64, limit int) ([]uint64, error) {
	client, ok := f.clients[chainID]
	if !ok {
		return nil, fmt.Errorf("no client for chain %d", chainID)
	}

	results, err := client.GetRecentPrioritizationFees(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prioritization fees: %w", err)
	}

	// newest slots last in the RPC response
	fees := make([]uint64, 0, limit)
	for i := len(results) - 1; i >= 0 && len(fees) < limit; i-- {
		fees = append(fees, results[i].PrioritizationFee)
	}

	return fees, nil
}
