package agents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/neurocore/pkg/repository"
)

// ErrCheckpointNotFound is returned by Load for an unknown run id.
var ErrCheckpointNotFound = errors.New("checkpoint not found")

// PostgresCheckpoints is a state.CheckpointStore backed by the checkpoints table.
// State is stored as JSON, so values read back by Load are JSON-decoded.
type PostgresCheckpoints struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresCheckpoints creates a checkpoint store over db.
func NewPostgresCheckpoints(db *sql.DB, logger *slog.Logger) *PostgresCheckpoints {
	return &PostgresCheckpoints{
		db:     db,
		logger: logger.With("system", "checkpoints"),
	}
}

// Save upserts the state for its run id.
func (s *PostgresCheckpoints) Save(st state.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	const q = `
		INSERT INTO checkpoints (run_id, checkpoint_node, state_data)
		VALUES ($1, $2, $3)
		ON CONFLICT (run_id) DO UPDATE SET
			checkpoint_node = EXCLUDED.checkpoint_node,
			state_data = EXCLUDED.state_data,
			updated_at = NOW()`

	if _, err := s.db.ExecContext(context.Background(), q, st.RunID, st.CheckpointNode, data); err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}

	s.logger.Debug("checkpoint saved", "run_id", st.RunID, "node", st.CheckpointNode)
	return nil
}

func (s *PostgresCheckpoints) Load(runID string) (state.State, error) {
	const q = `SELECT state_data FROM checkpoints WHERE run_id = $1`

	data, err := repository.QueryOne(context.Background(), s.db, q, []any{runID}, func(sc repository.Scanner) ([]byte, error) {
		var b []byte
		err := sc.Scan(&b)
		return b, err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return state.State{}, fmt.Errorf("%w: %s", ErrCheckpointNotFound, runID)
		}
		return state.State{}, fmt.Errorf("load checkpoint: %w", err)
	}

	var st state.State
	if err := json.Unmarshal(data, &st); err != nil {
		return state.State{}, fmt.Errorf("unmarshal state: %w", err)
	}
	return st, nil
}

func (s *PostgresCheckpoints) Delete(runID string) error {
	const q = `DELETE FROM checkpoints WHERE run_id = $1`

	if _, err := s.db.ExecContext(context.Background(), q, runID); err != nil {
		return fmt.Errorf("delete checkpoint: %w", err)
	}

	s.logger.Debug("checkpoint deleted", "run_id", runID)
	return nil
}

// List returns run ids newest first.
func (s *PostgresCheckpoints) List() ([]string, error) {
	const q = `SELECT run_id FROM checkpoints ORDER BY created_at DESC`

	ids, err := repository.QueryMany(context.Background(), s.db, q, nil, func(sc repository.Scanner) (string, error) {
		var id string
		err := sc.Scan(&id)
		return id, err
	})
	if err != nil {
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}
	return ids, nil
}
