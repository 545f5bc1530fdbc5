package listeners

import (
	"sync"

	"txevents/pkg/types"
)

const defaultMemoryCapacity = 256

// MemoryListener keeps the most recent events in memory.
type MemoryListener struct {
	mu     sync.Mutex
	limit  int
	events []types.Event
}

// NewMemoryListener keeps at most capacity events; capacity <= 0 means unbounded.
func NewMemoryListener(capacity int) *MemoryListener {
	return &MemoryListener{limit: capacity}
}

func (*MemoryListener) Name() string { return "memory" }

func (m *MemoryListener) Receive(e types.Event) error {
	m.mu.Lock()
	m.events = append(m.events, e)
	if m.limit > 0 && len(m.events) > m.limit {
		m.events = append(m.events[:0:0], m.events[len(m.events)-m.limit:]...)
	}
	m.mu.Unlock()
	return nil
}

// Events returns the retained events, oldest first.
func (m *MemoryListener) Events() []types.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.Event, len(m.events))
	copy(out, m.events)
	return out
}

// Reset drops all retained events.
func (m *MemoryListener) Reset() {
	m.mu.Lock()
	m.events = nil
	m.mu.Unlock()
}
