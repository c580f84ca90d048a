// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package execution

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/rs/zerolog/log"

	"github.com/glyphwallet/swap-engine/config"
	"github.com/glyphwallet/swap-engine/quote"
)

// WalletAdapter abstracts the user's wallet. Implementations switch chains,
// sign protocol payloads and broadcast transactions on behalf of one address.
type WalletAdapter interface {
	Address() string
	CurrentChainID(ctx context.Context) (uint64, error)
	SwitchChain(ctx context.Context, chainID uint64) error
	SignMessage(ctx context.Context, step SignStep) ([]byte, error)
	SendTransaction(ctx context.Context, tx *TxFields) (string, error)
	WaitForReceipt(
		ctx context.Context,
		txHash string,
		chainID uint64,
		onReplaced func(newTxHash string),
		onCancelled func(),
	) error
}

type Backend interface {
	SubmitQuote(ctx context.Context, raw json.RawMessage) (*quote.Submission, error)
	SubmitStepSignature(ctx context.Context, txnID string, stepID string, signature []byte) error
	ReportFailed(ctx context.Context, txnID string) error
}

type GasBalancer interface {
	GasBalance(ctx context.Context, chainID uint64, address string) (*big.Int, error)
}

// Outcome identifies a successfully handed-off execution. RequestID keys
// settlement status tracking; LastTxHash is the hash of the final deposit
// transaction after any replacements.
type Outcome struct {
	TxnID      string
	RequestID  string
	LastTxHash string
}

// Executor drives a quoted swap through submission, chain switching and the
// final quote's protocol steps.
type Executor struct {
	backend   Backend
	balances  GasBalancer
	vmTypes   map[uint64]config.VmType
	supported map[config.VmType]struct{}
}

func NewExecutor(
	backend Backend,
	balances GasBalancer,
	vmTypes map[uint64]config.VmType,
	supported map[config.VmType]struct{},
) *Executor {
	return &Executor{
		backend:   backend,
		balances:  balances,
		vmTypes:   vmTypes,
		supported: supported,
	}
}

// Execute runs the full swap flow for a previously fetched quote. onStart is
// invoked exactly once, after the backend accepts the submission but before
// any chain switch or signing.
//
// Once the submission is accepted, every failure is reported to the backend
// exactly once so no ledger record is left dangling.
func (e *Executor) Execute(ctx context.Context, q *quote.Quote, adapter WalletAdapter, onStart func()) (*Outcome, error) {
	vmType, ok := e.vmTypes[q.OriginChainID]
	if !ok {
		return nil, fmt.Errorf("no vm type configured for chain %d: %w", q.OriginChainID, ErrNotImplemented)
	}
	if _, ok := e.supported[vmType]; !ok {
		return nil, fmt.Errorf("vm type '%s': %w", vmType, ErrNotImplemented)
	}

	submission, err := e.backend.SubmitQuote(ctx, q.Raw)
	if err != nil {
		// nothing was recorded, so there is nothing to report
		return nil, fmt.Errorf("failed to submit quote: %w", err)
	}

	run := &run{executor: e, txnID: submission.TxnID}

	final := submission.FinalQuote
	if submission.TxnID == "" || final == nil {
		return nil, run.fail(ctx, ErrStatusCheckFailed)
	}

	onStart()

	currentChainID, err := adapter.CurrentChainID(ctx)
	if err != nil {
		return nil, run.fail(ctx, fmt.Errorf("failed to read wallet chain: %w", err))
	}
	if currentChainID != final.OriginChainID {
		if err := adapter.SwitchChain(ctx, final.OriginChainID); err != nil {
			return nil, run.fail(ctx, fmt.Errorf("failed to switch to chain %d: %w", final.OriginChainID, err))
		}
	}

	steps, err := ParseSteps(final.Steps)
	if err != nil {
		return nil, run.fail(ctx, err)
	}

	for _, step := range steps {
		if err := e.runStep(ctx, run, final, adapter, step); err != nil {
			return nil, run.fail(ctx, err)
		}
	}

	if final.RequestID == "" {
		// transactions went out but the settlement record cannot be tracked
		return nil, run.fail(ctx, ErrStatusCheckFailed)
	}

	return &Outcome{
		TxnID:      submission.TxnID,
		RequestID:  final.RequestID,
		LastTxHash: run.lastTxHash,
	}, nil
}

func (e *Executor) runStep(ctx context.Context, run *run, final *quote.Quote, adapter WalletAdapter, step Step) error {
	switch step.Kind {
	case StepSignMessage:
		signature, err := adapter.SignMessage(ctx, step.Sign)
		if err != nil {
			return fmt.Errorf("failed to sign step %s: %w", step.ID, err)
		}
		if err := e.backend.SubmitStepSignature(ctx, run.txnID, step.ID, signature); err != nil {
			return fmt.Errorf("failed to submit signature for step %s: %w", step.ID, err)
		}
	case StepSendTransaction:
		if err := e.checkGas(ctx, final, adapter.Address()); err != nil {
			return err
		}
		txHash, err := adapter.SendTransaction(ctx, step.Tx)
		if err != nil {
			return fmt.Errorf("failed to send transaction for step %s: %w", step.ID, err)
		}
		run.lastTxHash = txHash
	case StepConfirmTransaction:
		cancelled := false
		err := adapter.WaitForReceipt(
			ctx,
			run.lastTxHash,
			final.OriginChainID,
			func(newTxHash string) {
				log.Debug().Msgf("Transaction %s replaced by %s", run.lastTxHash, newTxHash)
				run.lastTxHash = newTxHash
			},
			func() {
				cancelled = true
			},
		)
		if cancelled {
			return ErrTxCancelled
		}
		if err != nil {
			return fmt.Errorf("failed waiting for receipt of %s: %w", run.lastTxHash, err)
		}
	}

	return nil
}

// checkGas re-verifies the gas balance right before broadcast. The quoted
// gas fee may have gone stale while the user signed preceding steps.
func (e *Executor) checkGas(ctx context.Context, final *quote.Quote, address string) error {
	fee := final.FeesGas.AmountWei
	if fee == nil || fee.Int == nil {
		return nil
	}

	balance, err := e.balances.GasBalance(ctx, final.OriginChainID, address)
	if err != nil {
		log.Warn().Msgf("Failed to fetch gas balance on chain %d: %s", final.OriginChainID, err)
		return nil
	}

	if balance.Cmp(fee.Int) < 0 {
		return ErrInsufficientGas
	}
	return nil
}

// run tracks per-execution state shared between steps.
type run struct {
	executor   *Executor
	txnID      string
	lastTxHash string
	reported   bool
}

// fail reports the failure to the backend at most once and passes the
// original error through.
func (r *run) fail(ctx context.Context, err error) error {
	if r.txnID != "" && !r.reported {
		r.reported = true
		if reportErr := r.executor.backend.ReportFailed(ctx, r.txnID); reportErr != nil {
			log.Warn().Msgf("Failed to report failed swap %s: %s", r.txnID, reportErr)
		}
	}
	return err
}
