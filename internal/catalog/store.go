package catalog

import (
	"sync"
)

// Store provides access to the boxes the matcher ranks.
type Store interface {
	GetBoxes() ([]Box, error)
	SetBoxes(boxes []Box) error
}

// MemoryStore keeps the catalog in-memory and guards access with a RWMutex.
type MemoryStore struct {
	mu    sync.RWMutex
	boxes []Box
}

// NewMemoryStore validates boxes and returns a store seeded with a copy of them.
func NewMemoryStore(boxes []Box) (*MemoryStore, error) {
	s := &MemoryStore{}
	if err := s.SetBoxes(boxes); err != nil {
		return nil, err
	}
	return s, nil
}

// GetBoxes returns a copy of the current catalog.
func (s *MemoryStore) GetBoxes() ([]Box, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clone(s.boxes), nil
}

// SetBoxes validates and replaces the whole catalog.
func (s *MemoryStore) SetBoxes(boxes []Box) error {
	if len(boxes) == 0 {
		return ErrEmptyCatalog
	}
	for _, b := range boxes {
		if err := b.Validate(); err != nil {
			return err
		}
	}

	next := clone(boxes)

	s.mu.Lock()
	s.boxes = next
	s.mu.Unlock()

	return nil
}

func clone(src []Box) []Box {
	if len(src) == 0 {
		return []Box{}
	}

	out := make([]Box, len(src))
	copy(out, src)
	return out
}
