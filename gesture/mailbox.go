package gesture

import (
	"sync"
	"time"
)

// Mailbox is a single-slot, last-value-wins handoff between a gesture producer
// and the tick loop. It is safe for concurrent use.
type Mailbox struct {
	mu         sync.Mutex
	sig        Signal
	posted     time.Time
	has        bool
	staleAfter time.Duration
	now        func() time.Time
}

// NewMailbox creates a mailbox whose readings expire after staleAfter.
// A zero staleAfter keeps the last reading forever.
func NewMailbox(staleAfter time.Duration) *Mailbox {
	return &Mailbox{staleAfter: staleAfter, now: time.Now}
}

// Post replaces the held reading.
func (m *Mailbox) Post(sig Signal) {
	m.mu.Lock()
	m.sig = sig
	m.posted = m.now()
	m.has = true
	m.mu.Unlock()
}

// Latest returns the most recent reading, or Idle if none has been posted or
// the last one has gone stale. Reading does not consume the value.
func (m *Mailbox) Latest() Signal {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.has {
		return Idle
	}
	if m.staleAfter > 0 && m.now().Sub(m.posted) > m.staleAfter {
		return Idle
	}
	return m.sig
}

// Reset drops the held reading.
func (m *Mailbox) Reset() {
	m.mu.Lock()
	m.has = false
	m.sig = Idle
	m.mu.Unlock()
}
