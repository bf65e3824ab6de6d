package conversation

import "sync"

// Hub fans appended messages out to live subscribers per conversation.
// A subscription is an explicit resource: acquire with Subscribe via the
// service, release with Cancel. Each subscriber owns a mailbox goroutine so
// a slow consumer never blocks the writer and no message is dropped.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*subscriber]struct{})}
}

// Subscription delivers messages in send order until cancelled. C is closed
// after Cancel. Cancelling twice is safe.
type Subscription struct {
	C   <-chan *Message
	sub *subscriber
}

func (s *Subscription) Cancel() {
	s.sub.close()
}

type subscriber struct {
	hub    *Hub
	convID string

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []*Message
	started bool
	closed  bool

	out  chan *Message
	quit chan struct{}
}

// subscribe registers a buffering subscriber. Messages published between now
// and start() are queued, so none can be missed while the backlog loads.
func (h *Hub) subscribe(convID string) *subscriber {
	s := &subscriber{
		hub:    h,
		convID: convID,
		out:    make(chan *Message),
		quit:   make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)

	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[convID]
	if !ok {
		set = make(map[*subscriber]struct{})
		h.subs[convID] = set
	}
	set[s] = struct{}{}
	return s
}

// Publish hands a freshly committed message to every live subscriber.
func (h *Hub) Publish(msg *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs[msg.ConversationID] {
		s.deliver(msg)
	}
}

func (s *subscriber) deliver(msg *Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.queue = append(s.queue, msg)
	s.cond.Signal()
}

// start replays the backlog ahead of anything queued since subscribe,
// dropping queued messages that the backlog already contains, then begins
// pumping. Guarantees: every stored message once, every later append once,
// all in send order.
func (s *subscriber) start(backlog []*Message) {
	s.mu.Lock()
	seen := make(map[string]bool, len(backlog))
	for _, m := range backlog {
		seen[m.ID] = true
	}
	var pending []*Message
	for _, m := range s.queue {
		if !seen[m.ID] {
			pending = append(pending, m)
		}
	}
	s.queue = append(append([]*Message{}, backlog...), pending...)
	s.started = true
	s.mu.Unlock()

	go s.pump()
}

// pump moves queued messages to the consumer channel. It is the only
// goroutine that closes out once started.
func (s *subscriber) pump() {
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if s.closed {
			s.mu.Unlock()
			close(s.out)
			return
		}
		msg := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.out <- msg:
		case <-s.quit:
			close(s.out)
			return
		}
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	started := s.started
	close(s.quit)
	s.cond.Broadcast()
	s.mu.Unlock()

	if !started {
		// No pump goroutine exists yet, so close the channel here
		close(s.out)
	}

	s.hub.mu.Lock()
	if set, ok := s.hub.subs[s.convID]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(s.hub.subs, s.convID)
		}
	}
	s.hub.mu.Unlock()
}
