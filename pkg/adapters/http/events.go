package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/waypoint/internal/logging"
)

// StreamManager fans router outputs out to SSE clients.
// Subscribers keyed by "" receive every section.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan string]struct{}
	logger      *slog.Logger
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan string]struct{}),
		logger:      logging.NewNop(),
	}
}

// Subscribe registers a client for section ("" for all).
func (sm *StreamManager) Subscribe(section string) (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 16)
	if _, ok := sm.subscribers[section]; !ok {
		sm.subscribers[section] = make(map[chan string]struct{})
	}
	sm.subscribers[section][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			subs := sm.subscribers[section]
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, section)
			}
		})
	}
}

// Len returns the number of connected clients.
func (sm *StreamManager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	n := 0
	for _, subs := range sm.subscribers {
		n += len(subs)
	}
	return n
}

// Broadcast sends v as JSON to the clients of section and to catch-all clients.
// Slow clients lose messages instead of blocking the caller.
func (sm *StreamManager) Broadcast(section string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		sm.logger.Error("sse encode failed", "section", section, "err", err)
		return
	}
	msg := string(data)

	sm.mu.RLock()
	defer sm.mu.RUnlock()
	for _, key := range []string{section, ""} {
		for ch := range sm.subscribers[key] {
			select {
			case ch <- msg:
			default:
				sm.logger.Warn("sse client buffer full, dropping message", "section", section)
			}
		}
		if section == "" {
			break
		}
	}
}

// SubscribeEvents handles GET /events (SSE). ?section= narrows the stream.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("streaming not supported"))
		return
	}

	section := r.URL.Query().Get("section")
	ch, cancel := s.Streams.Subscribe(section)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.logger.Info("sse client connected", "section", section)

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("sse client disconnected", "section", section)
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
