package execution

import (
	"errors"
	"fmt"
)

var (
	// ErrNotImplemented marks execution attempts on chains whose vm type has
	// no wallet adapter support.
	ErrNotImplemented = errors.New("execution not implemented for this chain type")

	// ErrInsufficientGas is raised by the pre-broadcast balance check so the
	// caller can distinguish it from generic transaction failures.
	ErrInsufficientGas = errors.New("insufficient gas balance for transaction")

	// ErrStatusCheckFailed marks submissions whose transactions went out but
	// whose outcome can no longer be tracked.
	ErrStatusCheckFailed = errors.New("transaction status could not be determined")

	// ErrTxCancelled marks a transaction replaced by a cancellation in the
	// user's wallet.
	ErrTxCancelled = errors.New("transaction was cancelled")
)

const maxUserMessageLen = 300

// UserMessage renders an execution error for display. Known failures get a
// stable message; anything else is passed through truncated, as provider
// errors can embed entire response bodies.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInsufficientGas):
		return "You do not have enough gas to submit this transaction."
	case errors.Is(err, ErrNotImplemented):
		return "Swapping is not supported for this network yet."
	case errors.Is(err, ErrTxCancelled):
		return "The transaction was cancelled."
	case errors.Is(err, ErrStatusCheckFailed):
		return "The swap was submitted but its status could not be confirmed."
	}

	msg := fmt.Sprintf("Swap failed: %s", err)
	if len(msg) > maxUserMessageLen {
		msg = msg[:maxUserMessageLen]
	}
	return msg
}
