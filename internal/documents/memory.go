package documents

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/JaimeStill/neurocore/pkg/pagination"
)

type memory struct {
	mu         sync.RWMutex
	docs       map[int64]Document
	nextID     int64
	logger     *slog.Logger
	maxContent int64
	now        func() time.Time
}

// NewMemory creates a System held in process memory.
// It serves local development and tests where no database is configured.
func NewMemory(logger *slog.Logger, maxContent int64) System {
	return &memory{
		docs:       make(map[int64]Document),
		logger:     logger.With("system", "documents", "store", "memory"),
		maxContent: maxContent,
		now:        time.Now,
	}
}

func (m *memory) List(ctx context.Context, ownerID int64, req pagination.Request) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var term string
	if req.Search != nil {
		term = strings.ToLower(*req.Search)
	}

	out := make([]Document, 0)
	for _, d := range m.docs {
		if d.OwnerID != ownerID || !d.Active {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(d.Title), term) &&
			!strings.Contains(strings.ToLower(d.Content), term) {
			continue
		}
		out = append(out, d)
	}

	slices.SortFunc(out, func(a, b Document) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	if req.Limit > 0 && len(out) > req.Limit {
		out = out[:req.Limit]
	}
	return out, nil
}

func (m *memory) Find(ctx context.Context, ownerID, id int64) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.owned(ownerID, id)
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (m *memory) Create(ctx context.Context, ownerID int64, cmd CreateCommand) (*Document, error) {
	if err := cmd.Validate(m.maxContent); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	now := m.now().UTC()
	d := Document{
		ID:        m.nextID,
		Title:     cmd.Title,
		Content:   cmd.Content,
		OwnerID:   ownerID,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.docs[d.ID] = d

	m.logger.Info("document created", "id", d.ID, "owner_id", ownerID)
	return &d, nil
}

func (m *memory) Update(ctx context.Context, ownerID, id int64, cmd UpdateCommand) (*Document, error) {
	if cmd.Empty() {
		return m.Find(ctx, ownerID, id)
	}
	if err := cmd.Validate(m.maxContent); err != nil {
		return nil, err
	}
	cmd = cmd.normalized()

	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.owned(ownerID, id)
	if !ok {
		return nil, ErrNotFound
	}

	if cmd.Title != nil {
		d.Title = *cmd.Title
	}
	if cmd.Content != nil {
		d.Content = *cmd.Content
	}
	d.UpdatedAt = m.now().UTC()
	m.docs[id] = d

	m.logger.Info("document updated", "id", id, "owner_id", ownerID)
	return &d, nil
}

func (m *memory) Delete(ctx context.Context, ownerID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.owned(ownerID, id); !ok {
		return ErrNotFound
	}
	delete(m.docs, id)

	m.logger.Info("document deleted", "id", id, "owner_id", ownerID)
	return nil
}

func (m *memory) owned(ownerID, id int64) (Document, bool) {
	d, ok := m.docs[id]
	if !ok || d.OwnerID != ownerID || !d.Active {
		return Document{}, false
	}
	return d, true
}
