package threads_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/neurocore/internal/llm"
	"github.com/JaimeStill/neurocore/internal/threads"
	"github.com/JaimeStill/neurocore/pkg/logging"
)

const threadID = "6f1c2a9e-3b7d-4c1e-9a55-2d8e4f7b0c11"

var rowColumns = []string{"id", "owner_id", "agent", "messages", "created_at", "updated_at"}

func newRepo(t *testing.T) (threads.System, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return threads.New(db, logging.Discard()), mock
}

func TestRepo_Find(t *testing.T) {
	sys, mock := newRepo(t)
	now := time.Now()

	q := "SELECT id, owner_id, agent, messages, created_at, updated_at FROM threads WHERE id = $1 AND owner_id = $2"
	mock.ExpectQuery(regexp.QuoteMeta(q)).
		WithArgs(threadID, int64(7)).
		WillReturnRows(sqlmock.NewRows(rowColumns).
			AddRow(threadID, 7, "movie_agent", []byte(`[{"role":"user","content":"find Alien"}]`), now, now))

	th, err := sys.Find(context.Background(), 7, threadID)
	require.NoError(t, err)

	assert.Equal(t, "movie_agent", th.Agent)
	require.Len(t, th.Messages, 1)
	assert.Equal(t, llm.RoleUser, th.Messages[0].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Find_NotFound(t *testing.T) {
	sys, mock := newRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM threads").
		WithArgs(threadID, int64(8)).
		WillReturnRows(sqlmock.NewRows(rowColumns))

	_, err := sys.Find(context.Background(), 8, threadID)

	assert.ErrorIs(t, err, threads.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Find_InvalidID(t *testing.T) {
	sys, mock := newRepo(t)

	_, err := sys.Find(context.Background(), 7, "not-a-uuid")

	assert.ErrorIs(t, err, threads.ErrInvalidID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Save_Upserts(t *testing.T) {
	sys, mock := newRepo(t)
	now := time.Now()
	messages := `[{"role":"user","content":"hi"},{"role":"assistant","content":"hello"}]`

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO threads (.+) ON CONFLICT \(id\) DO UPDATE SET (.+) WHERE threads.owner_id = EXCLUDED.owner_id`).
		WithArgs(threadID, int64(7), "supervisor", []byte(messages)).
		WillReturnRows(sqlmock.NewRows(rowColumns).AddRow(threadID, 7, "supervisor", []byte(messages), now, now))
	mock.ExpectCommit()

	saved, err := sys.Save(context.Background(), &threads.Thread{
		ID:       threadID,
		OwnerID:  7,
		Agent:    "supervisor",
		Messages: []llm.Message{llm.UserMessage("hi"), llm.AssistantMessage("hello")},
	})
	require.NoError(t, err)

	assert.Len(t, saved.Messages, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Save_ForeignOwner(t *testing.T) {
	sys, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO threads").
		WillReturnRows(sqlmock.NewRows(rowColumns))
	mock.ExpectRollback()

	_, err := sys.Save(context.Background(), &threads.Thread{ID: threadID, OwnerID: 9})

	assert.ErrorIs(t, err, threads.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Delete(t *testing.T) {
	sys, mock := newRepo(t)

	q := "DELETE FROM threads WHERE id = $1 AND owner_id = $2"
	mock.ExpectExec(regexp.QuoteMeta(q)).
		WithArgs(threadID, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(q)).
		WithArgs(threadID, int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, sys.Delete(context.Background(), 7, threadID))
	assert.ErrorIs(t, sys.Delete(context.Background(), 8, threadID), threads.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
