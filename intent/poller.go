package intent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	PollInterval = time.Second * 5

	// consecutive unknown statuses tolerated before the intent is declared
	// untrackable
	unknownStatusLimit = 3

	refundMessage = "The swap could not be completed and the funds will be refunded to your wallet."
)

// ErrIntentNotFound is raised when the settlement service repeatedly fails
// to recognize the intent.
var ErrIntentNotFound = errors.New("intent not found on settlement service")

type StatusSource interface {
	GetStatus(ctx context.Context, requestID string) (*IntentStatus, error)
}

type BalanceRefresher interface {
	Refresh(force bool)
}

// Update is one observation of a watched intent. Terminal updates are the
// last on the channel; Failed terminal updates carry a displayable Message.
type Update struct {
	Status   *IntentStatus
	Terminal bool
	Failed   bool
	Message  string
	Err      error
}

// Poller tracks submitted intents against the settlement service until they
// settle one way or the other.
type Poller struct {
	client      StatusSource
	balances    BalanceRefresher
	explorerURL string

	// Interval between polls, PollInterval unless overridden
	Interval time.Duration
}

func NewPoller(client StatusSource, balances BalanceRefresher, explorerURL string) *Poller {
	return &Poller{
		client:      client,
		balances:    balances,
		explorerURL: explorerURL,
		Interval:    PollInterval,
	}
}

// ExplorerLink returns the public explorer page of the intent.
func (p *Poller) ExplorerLink(requestID string) string {
	return fmt.Sprintf("%s/transaction/%s", p.explorerURL, requestID)
}

// Watch polls the intent until it reaches a terminal status, the tracking
// breaks down, or ctx is cancelled. onFailure is invoked before the terminal
// update when settlement ends in failure or refund, so the caller can release
// its backend record. The returned channel closes after the terminal update.
func (p *Poller) Watch(ctx context.Context, requestID string, onFailure func(context.Context)) <-chan Update {
	updates := make(chan Update, 16)
	go p.watch(ctx, requestID, onFailure, updates)
	return updates
}

func (p *Poller) watch(ctx context.Context, requestID string, onFailure func(context.Context), updates chan<- Update) {
	defer close(updates)

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	unknownCount := 0
	refreshed := false
	// a settled intent moved funds, so wallet balances are stale; refresh
	// them once regardless of which terminal status was reached
	refresh := func() {
		if refreshed {
			return
		}
		refreshed = true
		p.balances.Refresh(true)
	}

	for {
		status, err := p.client.GetStatus(ctx, requestID)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn().Msgf("Failed to fetch status of intent %s: %s", requestID, err)
			updates <- Update{Terminal: true, Failed: true, Err: err}
			return
		}

		switch status.Status {
		case StatusSuccess:
			refresh()
			updates <- Update{Status: status, Terminal: true}
			return
		case StatusRefund:
			refresh()
			// a refund still ends the swap unsuccessfully, so the backend
			// record has to be released like any other failure
			if onFailure != nil {
				onFailure(ctx)
			}
			updates <- Update{Status: status, Terminal: true, Failed: true, Message: refundMessage}
			return
		case StatusFailure:
			refresh()
			if onFailure != nil {
				onFailure(ctx)
			}
			message := status.Details
			if message == "" {
				message = "The swap failed."
			}
			updates <- Update{Status: status, Terminal: true, Failed: true, Message: message}
			return
		case StatusUnknown:
			unknownCount++
			if unknownCount >= unknownStatusLimit {
				updates <- Update{Terminal: true, Failed: true, Err: ErrIntentNotFound}
				return
			}
		default:
			unknownCount = 0
			updates <- Update{Status: status}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
