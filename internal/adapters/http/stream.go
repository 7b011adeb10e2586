package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/cadence/pkg/domain"
)

// StreamManager fans live run events out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // RunID -> Set of Channels
	logger      *slog.Logger
}

// NewStreamManager creates a manager logging dropped messages to logger.
// A nil logger discards them.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a subscriber for the run. The returned function
// unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(runID string) (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 64)
	if _, ok := sm.subscribers[runID]; !ok {
		sm.subscribers[runID] = make(map[chan<- string]struct{})
	}
	sm.subscribers[runID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[runID]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, runID)
			}
		}
	}
}

// Broadcast sends msg to every subscriber of the run without blocking.
func (sm *StreamManager) Broadcast(runID string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[runID] {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: Client buffer full, dropping message", "run_id", runID)
		}
	}
}

// Hooks returns lifecycle hooks broadcasting every event as JSON to the
// subscribers of runID.
func (sm *StreamManager) Hooks(runID string) domain.LifecycleHooks {
	send := func(v any) {
		data, err := json.Marshal(v)
		if err != nil {
			sm.logger.Error("SSE: event encode failed", "run_id", runID, "error", err)
			return
		}
		sm.Broadcast(runID, string(data))
	}
	return domain.LifecycleHooks{
		OnTrialStart: func(_ context.Context, e *domain.TrialEvent) { send(e) },
		OnTrialEnd:   func(_ context.Context, e *domain.TrialEvent) { send(e) },
		OnPhaseEnter: func(_ context.Context, e *domain.PhaseEvent) { send(e) },
		OnPhaseLeave: func(_ context.Context, e *domain.PhaseEvent) { send(e) },
		OnKey:        func(_ context.Context, e *domain.KeyEvent) { send(e) },
	}
}

// SubscribeEvents handles GET /events?run_id=... (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}
	runID := r.URL.Query().Get("run_id")
	if runID == "" {
		http.Error(w, "run_id is required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(runID)
	defer cancel()
	s.Logger.Info("SSE: client subscribed", "run_id", runID)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE: client disconnected", "run_id", runID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
