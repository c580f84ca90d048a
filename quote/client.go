package quote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// server-defined quote lifetime, applied when the response omits an
	// explicit expiry
	QUOTE_TTL = time.Second * 30
)

// ErrNoRoutes is returned when the routing service cannot find a route for
// the requested pair.
var ErrNoRoutes = errors.New("no routes found for requested pair")

type Params struct {
	User                string    `json:"user"`
	Recipient           string    `json:"recipient"`
	OriginChainID       uint64    `json:"originChainId"`
	DestinationChainID  uint64    `json:"destinationChainId"`
	OriginCurrency      string    `json:"originCurrency"`
	DestinationCurrency string    `json:"destinationCurrency"`
	TradeType           TradeType `json:"tradeType"`
	Amount              *BigInt   `json:"amount"`
	TopUpGas            bool      `json:"topupGas,omitempty"`
	TopUpGasAmount      *BigInt   `json:"topupGasAmount,omitempty"`
	ExcludeAppFees      bool      `json:"excludeAppFees,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// API is the JSON-over-HTTP client of the swap-routing service and its
// execution ledger.
type API struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewAPI(url string) *API {
	return &API{
		BaseURL: url,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetQuote prices the requested conversion. The returned quote carries the
// raw request payload so it can later be submitted to the backend ledger
// unchanged.
func (c *API) GetQuote(ctx context.Context, params Params) (*Quote, error) {
	payload, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	body, err := c.post(ctx, fmt.Sprintf("%s/v1/quote", c.BaseURL), payload)
	if err != nil {
		return nil, err
	}

	q := new(Quote)
	if err := json.Unmarshal(body, q); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	q.Raw = payload
	if q.ExpiresAt.IsZero() {
		q.ExpiresAt = time.Now().Add(QUOTE_TTL)
	}
	return q, nil
}

// SubmitQuote posts the raw quote request to the backend ledger and returns
// the ledger record id together with the executable final quote.
func (c *API) SubmitQuote(ctx context.Context, raw json.RawMessage) (*Submission, error) {
	body, err := c.post(ctx, fmt.Sprintf("%s/v1/swaps", c.BaseURL), raw)
	if err != nil {
		return nil, err
	}

	s := new(Submission)
	if err := json.Unmarshal(body, s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return s, nil
}

// SubmitStepSignature returns a protocol step's raw signature to the ledger.
func (c *API) SubmitStepSignature(ctx context.Context, txnID string, stepID string, signature []byte) error {
	payload, err := json.Marshal(map[string]string{
		"stepId":    stepID,
		"signature": fmt.Sprintf("0x%x", signature),
	})
	if err != nil {
		return err
	}

	_, err = c.post(ctx, fmt.Sprintf("%s/v1/swaps/%s/signatures", c.BaseURL, txnID), payload)
	return err
}

// ReportFailed marks the ledger record failed so no in-flight record is
// left dangling after an execution outcome.
func (c *API) ReportFailed(ctx context.Context, txnID string) error {
	_, err := c.post(ctx, fmt.Sprintf("%s/v1/swaps/%s/failed", c.BaseURL, txnID), []byte("{}"))
	return err
}

func (c *API) post(ctx context.Context, url string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
			if apiErr.Code == "NO_ROUTES" {
				return nil, ErrNoRoutes
			}
			return nil, fmt.Errorf("api error (status %d): %s", resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("unexpected status code: %d, %s", resp.StatusCode, url)
	}

	return body, nil
}
