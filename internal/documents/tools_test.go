package documents_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/neurocore/internal/documents"
	"github.com/JaimeStill/neurocore/internal/tools"
	"github.com/JaimeStill/neurocore/pkg/logging"
	"github.com/JaimeStill/neurocore/pkg/pagination"
)

type fixture struct {
	sys documents.System
	set *tools.Set
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	sys := documents.NewMemory(logging.Discard(), 0)
	return &fixture{
		sys: sys,
		set: tools.NewSet(documents.Tools(sys, pagination.Default())...),
	}
}

func (f *fixture) seed(t *testing.T, owner int64, n int, title string) []int64 {
	t.Helper()
	ids := make([]int64, n)
	for i := range n {
		doc, err := f.sys.Create(context.Background(), owner, documents.CreateCommand{
			Title:   fmt.Sprintf("%s %d", title, i+1),
			Content: fmt.Sprintf("content for %s %d", title, i+1),
		})
		require.NoError(t, err)
		ids[i] = doc.ID
	}
	return ids
}

func (f *fixture) call(owner int64, name, args string) (string, error) {
	ctx := context.Background()
	if owner != 0 {
		ctx = tools.WithCaller(ctx, tools.Caller{UserID: owner})
	}
	return f.set.Invoke(ctx, name, json.RawMessage(args))
}

func TestTools_Names(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []string{
		"search_query_documents",
		"list_documents",
		"get_document",
		"create_document",
		"update_document",
		"delete_document",
	}, f.set.Names())
}

func TestTools_RequireIdentity(t *testing.T) {
	f := newFixture(t)

	for _, name := range f.set.Names() {
		t.Run(name, func(t *testing.T) {
			_, err := f.call(0, name, `{"document_id":1,"title":"t","content":"c","query":"q"}`)
			assert.ErrorIs(t, err, tools.ErrMissingIdentity)
		})
	}
}

func TestListDocuments_Empty(t *testing.T) {
	f := newFixture(t)

	out, err := f.call(7, documents.ToolList, `{}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"No active documents found for this user."}`, out)
}

func TestListDocuments_DefaultLimitAndOrder(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 7, 8, "Doc")
	f.seed(t, 8, 2, "Other")

	out, err := f.call(7, documents.ToolList, `{}`)
	require.NoError(t, err)

	var result documents.ListResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	assert.Equal(t, 5, result.Count)
	assert.Equal(t, []string{"Doc 8", "Doc 7", "Doc 6", "Doc 5", "Doc 4"}, result.Titles)
}

func TestListDocuments_LimitCapped(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 7, 30, "Doc")

	out, err := f.call(7, documents.ToolList, `{"limit":100}`)
	require.NoError(t, err)

	var result documents.ListResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 25, result.Count)
}

func TestSearchQueryDocuments(t *testing.T) {
	f := newFixture(t)
	mine := f.seed(t, 7, 3, "Recipe")
	f.seed(t, 7, 2, "Travel")
	theirs := f.seed(t, 8, 3, "Recipe")

	out, err := f.call(7, documents.ToolSearch, `{"query":"RECIPE","limit":2}`)
	require.NoError(t, err)

	var results []documents.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Contains(t, r.Title, "Recipe")
		assert.Contains(t, mine, r.ID)
	}

	out, err = f.call(7, documents.ToolSearch, `{"query":"recipe","limit":25}`)
	require.NoError(t, err)
	results = nil
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, len(mine))
	for _, r := range results {
		assert.Contains(t, mine, r.ID)
		assert.NotContains(t, theirs, r.ID)
	}

	out, err = f.call(7, documents.ToolSearch, `{"query":"content for travel"}`)
	require.NoError(t, err)
	results = nil
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Len(t, results, 2)
}

func TestGetDocument(t *testing.T) {
	f := newFixture(t)
	ids := f.seed(t, 7, 1, "Mine")
	others := f.seed(t, 8, 1, "Theirs")

	out, err := f.call(7, documents.ToolGet, fmt.Sprintf(`{"document_id":%d}`, ids[0]))
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "Mine 1", rec["title"])
	assert.Equal(t, "content for Mine 1", rec["content"])
	assert.Contains(t, rec, "created_at")
	assert.NotContains(t, rec, "owner_id")

	_, err = f.call(7, documents.ToolGet, fmt.Sprintf(`{"document_id":%d}`, others[0]))
	assert.ErrorIs(t, err, documents.ErrNotFound)
	assert.EqualError(t, err, "document not found, try again")
}

func TestCreateDocument(t *testing.T) {
	f := newFixture(t)

	out, err := f.call(7, documents.ToolCreate, `{"title":"Groceries","content":"eggs"}`)
	require.NoError(t, err)

	var created documents.Record
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.NotZero(t, created.ID)

	out, err = f.call(7, documents.ToolGet, fmt.Sprintf(`{"document_id":%d}`, created.ID))
	require.NoError(t, err)

	var fetched documents.Record
	require.NoError(t, json.Unmarshal([]byte(out), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Groceries", fetched.Title)
	assert.Equal(t, "eggs", fetched.Content)

	doc, err := f.sys.Find(context.Background(), 7, created.ID)
	require.NoError(t, err)
	assert.True(t, doc.Active)
	assert.Equal(t, int64(7), doc.OwnerID)

	_, err = f.call(7, documents.ToolCreate, fmt.Sprintf(`{"title":"%0121d","content":""}`, 0))
	assert.ErrorIs(t, err, documents.ErrInvalidDocument)
}

func TestUpdateDocument(t *testing.T) {
	f := newFixture(t)
	ids := f.seed(t, 7, 1, "Draft")
	before, err := f.sys.Find(context.Background(), 7, ids[0])
	require.NoError(t, err)

	out, err := f.call(7, documents.ToolUpdate, fmt.Sprintf(`{"document_id":"%d","content":"revised"}`, ids[0]))
	require.NoError(t, err)

	var rec documents.Record
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "Draft 1", rec.Title)
	assert.Equal(t, "revised", rec.Content)

	noop, err := f.call(7, documents.ToolUpdate, fmt.Sprintf(`{"document_id":%d}`, ids[0]))
	require.NoError(t, err)
	assert.Contains(t, noop, "revised")

	after, err := f.sys.Find(context.Background(), 7, ids[0])
	require.NoError(t, err)
	assert.True(t, !after.UpdatedAt.Before(before.UpdatedAt))

	_, err = f.call(8, documents.ToolUpdate, fmt.Sprintf(`{"document_id":%d,"title":"stolen"}`, ids[0]))
	assert.ErrorIs(t, err, documents.ErrNotFound)
}

func TestUpdateDocument_TitleOnlyKeepsContent(t *testing.T) {
	f := newFixture(t)
	ids := f.seed(t, 7, 1, "Draft")

	_, err := f.call(7, documents.ToolUpdate, fmt.Sprintf(`{"document_id":%d,"title":"Final"}`, ids[0]))
	require.NoError(t, err)

	out, err := f.call(7, documents.ToolGet, fmt.Sprintf(`{"document_id":%d}`, ids[0]))
	require.NoError(t, err)

	var rec documents.Record
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "Final", rec.Title)
	assert.Equal(t, "content for Draft 1", rec.Content)
}

func TestDeleteDocument(t *testing.T) {
	f := newFixture(t)
	ids := f.seed(t, 7, 1, "Old")

	_, err := f.call(8, documents.ToolDelete, fmt.Sprintf(`{"document_id":%d}`, ids[0]))
	assert.ErrorIs(t, err, documents.ErrNotFound)

	out, err := f.call(7, documents.ToolDelete, fmt.Sprintf(`{"document_id":%d}`, ids[0]))
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Successfully deleted"}`, out)

	_, err = f.call(7, documents.ToolGet, fmt.Sprintf(`{"document_id":%d}`, ids[0]))
	assert.ErrorIs(t, err, documents.ErrNotFound)
}

func TestTools_MalformedArguments(t *testing.T) {
	f := newFixture(t)

	_, err := f.call(7, documents.ToolGet, `{"document_id":"abc"}`)
	assert.ErrorIs(t, err, tools.ErrInvalidArguments)
}
