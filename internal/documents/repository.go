package documents

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/neurocore/pkg/pagination"
	"github.com/JaimeStill/neurocore/pkg/query"
	"github.com/JaimeStill/neurocore/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	maxContent int64
}

// New creates a PostgreSQL-backed document System.
// maxContent bounds content size in bytes; zero disables the check.
func New(db *sql.DB, logger *slog.Logger, maxContent int64) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "documents"),
		maxContent: maxContent,
	}
}

func (r *repo) List(ctx context.Context, ownerID int64, req pagination.Request) ([]Document, error) {
	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("OwnerId", ownerID).
		WhereEquals("Active", true).
		WhereSearch(req.Search, "Title", "Content").
		OrderByFields(sortFields(req.Sort))

	q, args := qb.BuildPage(1, req.Limit)
	docs, err := repository.QueryMany(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	return docs, nil
}

func (r *repo) Find(ctx context.Context, ownerID, id int64) (*Document, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("Id", id).
		WhereEquals("OwnerId", ownerID).
		WhereEquals("Active", true).
		BuildOne()

	doc, err := repository.QueryOne(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &doc, nil
}

func (r *repo) Create(ctx context.Context, ownerID int64, cmd CreateCommand) (*Document, error) {
	if err := cmd.Validate(r.maxContent); err != nil {
		return nil, err
	}

	q := `INSERT INTO documents(title, content, owner_id, active)
		VALUES($1, $2, $3, TRUE)
		RETURNING ` + returning

	doc, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.Title, cmd.Content, ownerID}, scanDocument)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document created", "id", doc.ID, "owner_id", ownerID)
	return &doc, nil
}

func (r *repo) Update(ctx context.Context, ownerID, id int64, cmd UpdateCommand) (*Document, error) {
	if cmd.Empty() {
		return r.Find(ctx, ownerID, id)
	}
	if err := cmd.Validate(r.maxContent); err != nil {
		return nil, err
	}
	cmd = cmd.normalized()

	q := `UPDATE documents
		SET title = COALESCE($1, title), content = COALESCE($2, content), updated_at = NOW()
		WHERE id = $3 AND owner_id = $4 AND active = TRUE
		RETURNING ` + returning

	doc, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.Title, cmd.Content, id, ownerID}, scanDocument)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document updated", "id", doc.ID, "owner_id", ownerID)
	return &doc, nil
}

func (r *repo) Delete(ctx context.Context, ownerID, id int64) error {
	q := `DELETE FROM documents WHERE id = $1 AND owner_id = $2 AND active = TRUE`

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, id, ownerID)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document deleted", "id", id, "owner_id", ownerID)
	return nil
}
