package sse

import (
	"sync"
)

// Event represents an SSE event to be sent to subscribers
type Event struct {
	RecipientID string
	Event       string
	Data        interface{}
}

// Hub manages SSE subscribers and event broadcasting
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber for an employee and returns the event channel and cleanup function
func (h *Hub) Subscribe(recipientID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[recipientID] == nil {
		h.subscribers[recipientID] = make(map[chan Event]struct{})
	}
	h.subscribers[recipientID][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[recipientID], ch)
			close(ch)
			if len(h.subscribers[recipientID]) == 0 {
				delete(h.subscribers, recipientID)
			}
		})
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of one employee
func (h *Hub) Publish(recipientID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.RecipientID = recipientID
	for ch := range h.subscribers[recipientID] {
		select {
		case ch <- event:
		default:
			// Slow subscriber; drop rather than block the publisher
		}
	}
}

// PublishToMany sends an event to multiple employees
func (h *Hub) PublishToMany(recipientIDs []string, event Event) {
	for _, id := range recipientIDs {
		h.Publish(id, event)
	}
}

// SubscriberCount returns the number of active subscribers for an employee
func (h *Hub) SubscriberCount(recipientID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[recipientID])
}
