package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/deepwarren/deepwarren/internal/domain"
)

// subscriberBuffer bounds how many unsent events a slow SSE client can
// fall behind before further events to it are discarded rather than
// blocking the broadcaster. The client itself stays subscribed.
const subscriberBuffer = 32

// EventHub fans out GameEvents produced by the CLI session runner's Intent
// dispatch to any connected Server-Sent-Events client. There is no
// equivalent teacher file for this (the referenced EarningsHub lives
// outside the retrieved pack — see DESIGN.md); the broadcaster shape
// itself follows the same "register channel, fan out under a mutex,
// skip events a slow reader has no room for" idiom as the teacher's gossip fan-out.
type EventHub struct {
	mu   sync.Mutex
	subs map[chan domain.GameEvent]struct{}
}

func NewEventHub() *EventHub {
	return &EventHub{subs: make(map[chan domain.GameEvent]struct{})}
}

// Broadcast delivers events to every connected subscriber. A subscriber
// whose buffer is full is skipped for this event rather than blocking
// the caller (typically the session runner, mid-turn).
func (h *EventHub) Broadcast(events []domain.GameEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		for _, e := range events {
			select {
			case ch <- e:
			default:
			}
		}
	}
}

func (h *EventHub) subscribe() chan domain.GameEvent {
	ch := make(chan domain.GameEvent, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *EventHub) unsubscribe(ch chan domain.GameEvent) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
	close(ch)
}

// handleEventStream streams broadcast GameEvents to the client as
// Server-Sent Events, one JSON object per event, until the client
// disconnects.
func (s *Server) handleEventStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := s.hub.subscribe()
	defer s.hub.unsubscribe(ch)

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-ch:
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			w.Write([]byte("data: "))
			w.Write(payload)
			w.Write([]byte("\n\n"))
			flusher.Flush()
		}
	}
}
