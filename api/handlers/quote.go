package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/glyphwallet/swap-engine/quote"
)

type QuoteBody struct {
	quote.SwapRequest
	User      string `json:"user"`
	Recipient string `json:"recipient"`
}

type Quoter interface {
	QuoteOnce(ctx context.Context, req *quote.SwapRequest, addrs quote.Addresses) (*quote.Quote, error)
}

type QuoteHandler struct {
	quoter Quoter
	chains map[uint64]struct{}
}

func NewQuoteHandler(quoter Quoter, chains map[uint64]struct{}) *QuoteHandler {
	return &QuoteHandler{
		quoter: quoter,
		chains: chains,
	}
}

// HandleQuote prices a conversion request and returns the quote
func (h *QuoteHandler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	b := &QuoteBody{}
	d := json.NewDecoder(r.Body)
	err := d.Decode(b)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}

	err = h.validate(b)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}

	q, err := h.quoter.QuoteOnce(r.Context(), &b.SwapRequest, quote.Addresses{
		Origin:      b.User,
		Destination: b.Recipient,
	})
	if err != nil {
		if errors.Is(err, quote.ErrNoRoutes) {
			JSONError(w, err, http.StatusNotFound)
			return
		}
		JSONError(w, fmt.Errorf("failed to fetch quote: %s", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(q)
}

func (h *QuoteHandler) validate(b *QuoteBody) error {
	if b.User == "" {
		return fmt.Errorf("missing field 'user'")
	}

	if b.Recipient == "" {
		return fmt.Errorf("missing field 'recipient'")
	}

	if err := b.SwapRequest.Validate(); err != nil {
		return err
	}

	_, ok := h.chains[b.FromToken.ChainID]
	if !ok {
		return fmt.Errorf("chain '%d' not supported", b.FromToken.ChainID)
	}

	return nil
}
