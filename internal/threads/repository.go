package threads

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/neurocore/internal/llm"
	"github.com/JaimeStill/neurocore/pkg/repository"
)

const columns = "id, owner_id, agent, messages, created_at, updated_at"

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a PostgreSQL-backed thread System.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "threads"),
	}
}

func scanThread(s repository.Scanner) (Thread, error) {
	var (
		t   Thread
		raw []byte
	)
	if err := s.Scan(&t.ID, &t.OwnerID, &t.Agent, &raw, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return t, err
	}
	if err := json.Unmarshal(raw, &t.Messages); err != nil {
		return t, fmt.Errorf("decode messages: %w", err)
	}
	return t, nil
}

func (r *repo) Find(ctx context.Context, ownerID int64, id string) (*Thread, error) {
	if !ValidID(id) {
		return nil, ErrInvalidID
	}

	q := `SELECT ` + columns + ` FROM threads WHERE id = $1 AND owner_id = $2`

	t, err := repository.QueryOne(ctx, r.db, q, []any{id, ownerID}, scanThread)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &t, nil
}

// Save upserts t. A thread id owned by another user is reported as not found.
func (r *repo) Save(ctx context.Context, t *Thread) (*Thread, error) {
	if !ValidID(t.ID) {
		return nil, ErrInvalidID
	}

	messages := t.Messages
	if messages == nil {
		messages = []llm.Message{}
	}
	raw, err := json.Marshal(messages)
	if err != nil {
		return nil, fmt.Errorf("encode messages: %w", err)
	}

	q := `INSERT INTO threads (id, owner_id, agent, messages)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			agent = EXCLUDED.agent,
			messages = EXCLUDED.messages,
			updated_at = NOW()
		WHERE threads.owner_id = EXCLUDED.owner_id
		RETURNING ` + columns

	saved, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Thread, error) {
		return repository.QueryOne(ctx, tx, q, []any{t.ID, t.OwnerID, t.Agent, raw}, scanThread)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	r.logger.Debug("thread saved", "id", saved.ID, "owner_id", saved.OwnerID, "messages", len(saved.Messages))
	return &saved, nil
}

func (r *repo) Delete(ctx context.Context, ownerID int64, id string) error {
	if !ValidID(id) {
		return ErrInvalidID
	}

	err := repository.ExecExpectOne(ctx, r.db, `DELETE FROM threads WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	r.logger.Info("thread deleted", "id", id, "owner_id", ownerID)
	return nil
}
