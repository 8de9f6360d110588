// Package notify fans out "group changed" signals to in-process subscribers.
package notify

import "sync"

// Hub delivers change notifications per group.
// Notifications carry no payload; subscribers re-read whatever they need.
// A slow subscriber never blocks Publish: pending signals coalesce into one.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan struct{}]struct{})}
}

// Subscribe registers interest in groupID. The returned cancel func must be
// called to release the subscription; it is safe to call more than once.
func (h *Hub) Subscribe(groupID string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	if h.subs[groupID] == nil {
		h.subs[groupID] = make(map[chan struct{}]struct{})
	}
	h.subs[groupID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[groupID], ch)
			if len(h.subs[groupID]) == 0 {
				delete(h.subs, groupID)
			}
		})
	}
	return ch, cancel
}

// Publish signals every subscriber of groupID.
func (h *Hub) Publish(groupID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[groupID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribers returns the number of active subscriptions for groupID.
func (h *Hub) Subscribers(groupID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[groupID])
}
