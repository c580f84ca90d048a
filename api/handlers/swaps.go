package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/glyphwallet/swap-engine/quote"
)

type QuoteSubmitter interface {
	SubmitQuote(ctx context.Context, raw json.RawMessage) (*quote.Submission, error)
}

type SwapMetrics interface {
	StartSwap(requestID string)
}

type SwapsHandler struct {
	backend QuoteSubmitter
	metrics SwapMetrics
}

func NewSwapsHandler(backend QuoteSubmitter, metrics SwapMetrics) *SwapsHandler {
	return &SwapsHandler{
		backend: backend,
		metrics: metrics,
	}
}

// HandleSubmit forwards the raw quote request to the backend ledger and
// returns the record id together with the executable final quote
func (h *SwapsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}
	if !json.Valid(raw) {
		JSONError(w, fmt.Errorf("invalid request body: not valid JSON"), http.StatusBadRequest)
		return
	}

	submission, err := h.backend.SubmitQuote(r.Context(), raw)
	if err != nil {
		JSONError(w, fmt.Errorf("failed to submit quote: %s", err), http.StatusInternalServerError)
		return
	}

	if submission.FinalQuote != nil {
		h.metrics.StartSwap(submission.FinalQuote.RequestID)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(submission)
}
