package threads

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"
)

type memory struct {
	mu      sync.RWMutex
	threads map[string]Thread
	logger  *slog.Logger
}

// NewMemory creates an in-process thread System.
func NewMemory(logger *slog.Logger) System {
	return &memory{
		threads: make(map[string]Thread),
		logger:  logger.With("system", "threads"),
	}
}

func (m *memory) Find(_ context.Context, ownerID int64, id string) (*Thread, error) {
	if !ValidID(id) {
		return nil, ErrInvalidID
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.threads[id]
	if !ok || t.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	t.Messages = slices.Clone(t.Messages)
	return &t, nil
}

func (m *memory) Save(_ context.Context, t *Thread) (*Thread, error) {
	if !ValidID(t.ID) {
		return nil, ErrInvalidID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	saved := *t
	saved.Messages = slices.Clone(t.Messages)
	saved.UpdatedAt = now

	if existing, ok := m.threads[t.ID]; ok {
		if existing.OwnerID != t.OwnerID {
			return nil, ErrNotFound
		}
		saved.CreatedAt = existing.CreatedAt
	} else {
		saved.CreatedAt = now
	}

	m.threads[t.ID] = saved

	out := saved
	out.Messages = slices.Clone(saved.Messages)
	return &out, nil
}

func (m *memory) Delete(_ context.Context, ownerID int64, id string) error {
	if !ValidID(id) {
		return ErrInvalidID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.threads[id]
	if !ok || t.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(m.threads, id)
	return nil
}
