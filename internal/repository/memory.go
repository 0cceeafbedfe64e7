package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/DeafMist/noble-deeds/backend/internal/models"
)

// ErrDuplicateID is returned when a deed with the same id is already stored.
var ErrDuplicateID = errors.New("deed id already exists")

// Memory keeps deeds in process memory. Submitted deeds are listed before the seed set.
type Memory struct {
	mu    sync.RWMutex
	deeds []models.Deed
	ids   map[string]struct{}
}

// NewMemory creates a store seeded with the given deeds.
func NewMemory(seed []models.Deed) *Memory {
	m := &Memory{
		deeds: cloneDeeds(seed),
		ids:   make(map[string]struct{}, len(seed)),
	}
	for _, d := range m.deeds {
		m.ids[d.ID] = struct{}{}
	}
	return m
}

// List returns a snapshot of the stored deeds.
func (m *Memory) List(_ context.Context) ([]models.Deed, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneDeeds(m.deeds), nil
}

// Add stores a deed at the head of the feed.
func (m *Memory) Add(_ context.Context, deed models.Deed) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.ids[deed.ID]; ok {
		return ErrDuplicateID
	}
	m.ids[deed.ID] = struct{}{}
	m.deeds = append([]models.Deed{deed}, m.deeds...)
	return nil
}

// Len returns the number of stored deeds.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.deeds)
}
