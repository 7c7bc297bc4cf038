package slot

import (
	"context"
	"sync"
)

// MemoryOpener hands out in-process slots. Useful for tests and for hosts
// that embed the engine without any persistence.
type MemoryOpener struct {
	mu    sync.Mutex
	slots map[string]*memorySlot
}

// NewMemoryOpener creates a new in-memory slot backend.
func NewMemoryOpener() *MemoryOpener {
	return &MemoryOpener{slots: make(map[string]*memorySlot)}
}

// Open returns the named slot, creating it on first use. Opening the same
// name twice returns the same slot.
func (o *MemoryOpener) Open(name string) (Slot, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	s, ok := o.slots[name]
	if !ok {
		s = &memorySlot{}
		o.slots[name] = s
	}
	return s, nil
}

type memorySlot struct {
	mu   sync.Mutex
	data []byte
	set  bool
}

func (s *memorySlot) Read(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.set {
		return nil, ErrEmpty
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

func (s *memorySlot) Write(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make([]byte, len(data))
	copy(s.data, data)
	s.set = true
	return nil
}

func (s *memorySlot) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = nil
	s.set = false
	return nil
}
