package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusRefund  Status = "refund"
	StatusFailure Status = "failure"
	StatusUnknown Status = "unknown"
)

// IntentStatus is the settlement service's view of one cross-chain intent.
type IntentStatus struct {
	Status             Status   `json:"status"`
	InTxHashes         []string `json:"inTxHashes"`
	OutTxHashes        []string `json:"txHashes"`
	OriginChainID      uint64   `json:"originChainId"`
	DestinationChainID uint64   `json:"destinationChainId"`
	Details            string   `json:"details"`
}

type rawStatus struct {
	Status             string   `json:"status"`
	InTxHashes         []string `json:"inTxHashes"`
	OutTxHashes        []string `json:"txHashes"`
	OriginChainID      uint64   `json:"originChainId"`
	DestinationChainID uint64   `json:"destinationChainId"`
	Details            string   `json:"details"`
}

// API is the HTTP client of the settlement status service.
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

// GetStatus fetches the current settlement status of the intent identified
// by requestID. Service statuses outside the known set map to StatusUnknown
// rather than failing, as new statuses appear without notice.
func (c *API) GetStatus(ctx context.Context, requestID string) (*IntentStatus, error) {
	url := fmt.Sprintf("%s/intents/status?requestId=%s", c.BaseURL, requestID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d, %s", resp.StatusCode, url)
	}

	var raw rawStatus
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return &IntentStatus{
		Status:             mapStatus(raw.Status),
		InTxHashes:         raw.InTxHashes,
		OutTxHashes:        raw.OutTxHashes,
		OriginChainID:      raw.OriginChainID,
		DestinationChainID: raw.DestinationChainID,
		Details:            raw.Details,
	}, nil
}

func mapStatus(status string) Status {
	switch status {
	case "success":
		return StatusSuccess
	case "refund":
		return StatusRefund
	case "failure":
		return StatusFailure
	case "waiting", "pending", "delayed":
		return StatusPending
	default:
		return StatusUnknown
	}
}
