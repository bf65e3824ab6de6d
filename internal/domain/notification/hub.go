package notification

import "sync"

// CountHub streams the unread counter to subscribed users. The feed is
// latest-value: if the consumer lags, intermediate counts are replaced, not
// queued, so a reader always catches up to the current value in one receive.
type CountHub struct {
	mu   sync.RWMutex
	subs map[string]map[*countSub]struct{}
}

func NewCountHub() *CountHub {
	return &CountHub{subs: make(map[string]map[*countSub]struct{})}
}

// CountSubscription delivers unread counts until cancelled. C is closed
// after Cancel. Cancelling twice is safe.
type CountSubscription struct {
	C   <-chan int64
	sub *countSub
}

func (s *CountSubscription) Cancel() {
	s.sub.close()
}

type countSub struct {
	hub    *CountHub
	userID string

	mu     sync.Mutex
	closed bool
	ch     chan int64
}

// Subscribe registers a counter feed for userID. The caller should push the
// current count through Publish right after subscribing so the consumer sees
// an initial value.
func (h *CountHub) Subscribe(userID string) *CountSubscription {
	s := &countSub{hub: h, userID: userID, ch: make(chan int64, 1)}

	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[userID]
	if !ok {
		set = make(map[*countSub]struct{})
		h.subs[userID] = set
	}
	set[s] = struct{}{}
	return &CountSubscription{C: s.ch, sub: s}
}

// Publish pushes the current unread count to every subscriber of userID.
func (h *CountHub) Publish(userID string, count int64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs[userID] {
		s.push(count)
	}
}

// push replaces any undelivered value with the newest one.
func (s *countSub) push(count int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case <-s.ch:
	default:
	}
	s.ch <- count
}

func (s *countSub) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.ch)
	s.mu.Unlock()

	s.hub.mu.Lock()
	if set, ok := s.hub.subs[s.userID]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(s.hub.subs, s.userID)
		}
	}
	s.hub.mu.Unlock()
}
