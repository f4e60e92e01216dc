package kv

import (
	"context"
	"sync"
)

// MemorySlot is an in-process Slot for tests and zero-config runs.
type MemorySlot struct {
	mu      sync.Mutex
	value   []byte
	present bool
}

// NewMemorySlot returns an empty in-memory slot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Get(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.present {
		return nil, ErrNotFound
	}
	return append([]byte(nil), s.value...), nil
}

func (s *MemorySlot) Set(_ context.Context, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = append([]byte(nil), value...)
	s.present = true
	return nil
}

func (s *MemorySlot) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = nil
	s.present = false
	return nil
}
