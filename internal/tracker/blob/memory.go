package blob

import (
	"context"
	"sync"
)

// Memory keeps the blob in process. It backs tests and storage.backend=memory.
type Memory struct {
	mu      sync.Mutex
	data    []byte
	present bool
	writes  int
}

func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryWith returns a Memory already holding data.
func NewMemoryWith(data []byte) *Memory {
	m := &Memory{}
	m.data = append([]byte(nil), data...)
	m.present = true
	return m
}

func (m *Memory) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.present {
		return nil, ErrNotFound
	}
	return append([]byte(nil), m.data...), nil
}

func (m *Memory) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.present = true
	m.writes++
	return nil
}

func (m *Memory) Backend() string { return "memory" }

// Writes reports how many times Write succeeded.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
