package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/mux"

	"github.com/glyphwallet/swap-engine/intent"
)

type IntentWatcher interface {
	Watch(ctx context.Context, requestID string, onFailure func(context.Context)) <-chan intent.Update
}

type PollerMetrics interface {
	TrackPollerCount(count int64)
	EndSwap(requestID string)
}

type StatusHandler struct {
	poller  IntentWatcher
	metrics PollerMetrics

	activeWatches atomic.Int64
}

func NewStatusHandler(poller IntentWatcher, metrics PollerMetrics) *StatusHandler {
	return &StatusHandler{
		poller:  poller,
		metrics: metrics,
	}
}

type statusEvent struct {
	Status   *intent.IntentStatus `json:"status,omitempty"`
	Terminal bool                 `json:"terminal"`
	Failed   bool                 `json:"failed"`
	Message  string               `json:"message,omitempty"`
	Error    string               `json:"error,omitempty"`
}

// HandleRequest is an sse handler that streams settlement status updates of
// an intent until it reaches a terminal status
func (h *StatusHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID, ok := vars["requestId"]
	if !ok || requestID == "" {
		JSONError(w, fmt.Errorf("missing 'requestId'"), http.StatusBadRequest)
		return
	}

	h.setheaders(w)

	h.metrics.TrackPollerCount(h.activeWatches.Add(1))
	defer func() {
		h.metrics.TrackPollerCount(h.activeWatches.Add(-1))
	}()

	for update := range h.poller.Watch(r.Context(), requestID, nil) {
		event := statusEvent{
			Status:   update.Status,
			Terminal: update.Terminal,
			Failed:   update.Failed,
			Message:  update.Message,
		}
		if update.Err != nil {
			event.Error = update.Err.Error()
		}

		data, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		w.(http.Flusher).Flush()

		if update.Terminal {
			h.metrics.EndSwap(requestID)
		}
	}
}

func (h *StatusHandler) setheaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}
