package session

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/glyphwallet/swap-engine/config"
	"github.com/glyphwallet/swap-engine/execution"
	"github.com/glyphwallet/swap-engine/fees"
	"github.com/glyphwallet/swap-engine/intent"
	"github.com/glyphwallet/swap-engine/quote"
)

type State string

const (
	// StateStart is the entry screen: tokens and amounts editable, quoting
	// active.
	StateStart State = "START"
	// StateWait covers execution and settlement tracking: inputs frozen,
	// quoting suspended.
	StateWait State = "WAIT"
	// StateEnd shows the terminal outcome until dismissed.
	StateEnd State = "END"
)

// Result is the terminal outcome of one swap attempt.
type Result struct {
	Failed       bool
	Message      string
	ExplorerLink string
	TxHash       string
}

// Event is pushed on every observable session change.
type Event struct {
	State  State
	Result *Result
	Intent *intent.Update
}

// Session is the state machine behind one swap view. It owns the live
// request and coordinates quoting, execution and settlement tracking so the
// view only ever renders session state.
type Session struct {
	watcher  *quote.Watcher
	executor *execution.Executor
	backend  execution.Backend
	poller   *intent.Poller
	fees     *fees.Calculator
	balances execution.GasBalancer
	vmTypes  map[uint64]config.VmType

	mu     sync.Mutex
	state  State
	req    *quote.SwapRequest
	addrs  quote.Addresses
	result *Result

	events chan Event
}

func NewSession(
	watcher *quote.Watcher,
	executor *execution.Executor,
	backend execution.Backend,
	poller *intent.Poller,
	feeCalculator *fees.Calculator,
	balances execution.GasBalancer,
	vmTypes map[uint64]config.VmType,
) *Session {
	return &Session{
		watcher:  watcher,
		executor: executor,
		backend:  backend,
		poller:   poller,
		fees:     feeCalculator,
		balances: balances,
		vmTypes:  vmTypes,
		state:    StateStart,
		events:   make(chan Event, 16),
	}
}

func (s *Session) Events() <-chan Event {
	return s.events
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

func (s *Session) Quote() *quote.Quote {
	return s.watcher.Quote()
}

// SetRequest updates the live request. Ignored outside the entry state,
// where inputs are frozen.
func (s *Session) SetRequest(req *quote.SwapRequest, addrs quote.Addresses) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateStart {
		return fmt.Errorf("cannot change the request in state %s", s.state)
	}

	s.req = req
	s.addrs = addrs
	s.watcher.SetRequest(req, addrs)
	return nil
}

// Swap executes the currently quoted request. It returns once the swap is
// handed off for settlement tracking or has failed synchronously; tracking
// continues in the background and surfaces through Events.
func (s *Session) Swap(ctx context.Context, adapter execution.WalletAdapter) error {
	s.mu.Lock()
	if s.state != StateStart {
		s.mu.Unlock()
		return fmt.Errorf("cannot swap in state %s", s.state)
	}
	q := s.watcher.Quote()
	if q == nil {
		s.mu.Unlock()
		return errors.New("no valid quote to execute")
	}
	s.mu.Unlock()

	outcome, err := s.executor.Execute(ctx, q, adapter, s.onExecutionStart)
	if err != nil {
		s.finish(&Result{Failed: true, Message: execution.UserMessage(err)})
		return err
	}

	go s.track(ctx, outcome)
	return nil
}

// Dismiss acknowledges the terminal outcome and returns to the entry state.
// Amounts are cleared so a stale figure is never re-executed, but the token
// selection survives for the next attempt.
func (s *Session) Dismiss() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateEnd {
		return fmt.Errorf("cannot dismiss in state %s", s.state)
	}

	s.state = StateStart
	s.result = nil
	if s.req != nil {
		s.req.ClearAmounts()
	}
	s.watcher.Resume()
	s.watcher.SetRequest(s.req, s.addrs)
	s.push(Event{State: StateStart})
	return nil
}

// MaxAmount computes the maximum spendable native balance for the request's
// origin chain. Unavailable while an execution is in flight, as the gas
// buffer would be computed against a balance the pending swap is about to
// change.
func (s *Session) MaxAmount(ctx context.Context, chainID uint64, balanceWei *big.Int) (*big.Int, error) {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()

	if state == StateWait {
		return nil, errors.New("max amount unavailable while a swap is in flight")
	}

	vmType, ok := s.vmTypes[chainID]
	if !ok {
		return nil, fmt.Errorf("no vm type configured for chain %d", chainID)
	}

	return s.fees.MaxTransferable(ctx, chainID, vmType, balanceWei), nil
}

// RecommendTopUp reports whether the user should be offered a destination
// gas top-up: the destination token is not the chain's native one and the
// destination wallet holds no gas to move it afterwards.
func (s *Session) RecommendTopUp(ctx context.Context) bool {
	s.mu.Lock()
	req, addrs := s.req, s.addrs
	s.mu.Unlock()

	if s.watcher.Quote() == nil || req == nil || req.ToToken == nil {
		return false
	}
	if req.ToToken.IsNative {
		return false
	}

	balance, err := s.balances.GasBalance(ctx, req.ToToken.ChainID, addrs.Destination)
	if err != nil {
		log.Warn().Msgf("Failed to fetch destination gas balance on chain %d: %s", req.ToToken.ChainID, err)
		return false
	}
	return balance.Sign() == 0
}

// onExecutionStart freezes the session once the backend has accepted the
// submission.
func (s *Session) onExecutionStart() {
	s.mu.Lock()
	s.state = StateWait
	s.mu.Unlock()

	s.watcher.Pause()
	s.push(Event{State: StateWait})
}

func (s *Session) track(ctx context.Context, outcome *execution.Outcome) {
	onFailure := func(ctx context.Context) {
		if err := s.backend.ReportFailed(ctx, outcome.TxnID); err != nil {
			log.Warn().Msgf("Failed to report failed swap %s: %s", outcome.TxnID, err)
		}
	}

	for update := range s.poller.Watch(ctx, outcome.RequestID, onFailure) {
		if !update.Terminal {
			u := update
			s.push(Event{State: StateWait, Intent: &u})
			continue
		}

		result := &Result{
			Failed:       update.Failed,
			Message:      update.Message,
			ExplorerLink: s.poller.ExplorerLink(outcome.RequestID),
			TxHash:       outcome.LastTxHash,
		}
		if update.Err != nil {
			result.Message = execution.UserMessage(fmt.Errorf("status tracking stopped: %w", update.Err))
		}
		s.finish(result)
		return
	}

	// channel closed without a terminal update means the watch context was
	// cancelled, leave the session where it is
}

func (s *Session) finish(result *Result) {
	s.mu.Lock()
	s.state = StateEnd
	s.result = result
	s.mu.Unlock()

	s.push(Event{State: StateEnd, Result: result})
}

func (s *Session) push(e Event) {
	select {
	case s.events <- e:
	default:
		log.Warn().Msg("Session event dropped, consumer lagging")
	}
}
