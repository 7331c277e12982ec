package documents

import (
	"context"
	"encoding/json"

	"github.com/JaimeStill/neurocore/internal/tools"
	"github.com/JaimeStill/neurocore/pkg/pagination"
)

// Tool names exposed to the document agent.
const (
	ToolSearch = "search_query_documents"
	ToolList   = "list_documents"
	ToolGet    = "get_document"
	ToolCreate = "create_document"
	ToolUpdate = "update_document"
	ToolDelete = "delete_document"
)

// NoDocumentsMessage is returned by list_documents when the caller has no active documents.
const NoDocumentsMessage = "No active documents found for this user."

// ListResult is the list_documents payload when documents exist.
type ListResult struct {
	Count  int      `json:"count"`
	Titles []string `json:"titles"`
}

// Message is a single-field status payload.
type Message struct {
	Message string `json:"message"`
}

type toolset struct {
	sys    System
	limits pagination.Config
}

// Tools returns the six document tools backed by sys.
// Result limits are clamped by limits.
func Tools(sys System, limits pagination.Config) []tools.Tool {
	ts := &toolset{sys: sys, limits: limits}

	limit := tools.Integer("maximum number of results to return (default 5, max 25)")
	documentID := tools.Integer("id of the document")

	return []tools.Tool{
		{
			Name:        ToolSearch,
			Description: "Search the current user's most recent documents by a case-insensitive match on title or content.",
			Parameters: tools.Object(map[string]any{
				"query": tools.String("text to look up across document title or content"),
				"limit": limit,
			}, "query"),
			Handler: ts.search,
		},
		{
			Name: ToolList,
			Description: "List the most recent active documents for the current user. " +
				"Use this whenever the user asks what documents they have, wants to see available files, or asks for document titles.",
			Parameters: tools.Object(map[string]any{"limit": limit}),
			Handler:    ts.list,
		},
		{
			Name:        ToolGet,
			Description: "Get a document by its ID for the current user.",
			Parameters:  tools.Object(map[string]any{"document_id": documentID}, "document_id"),
			Handler:     ts.get,
		},
		{
			Name:        ToolCreate,
			Description: "Create a new document to store for the user. The title is at most 120 characters; content is long form text.",
			Parameters: tools.Object(map[string]any{
				"title":   tools.String("document title, max 120 characters"),
				"content": tools.String("long form document text"),
			}, "title", "content"),
			Handler: ts.create,
		},
		{
			Name:        ToolUpdate,
			Description: "Update the title and/or content of an existing document for the current user.",
			Parameters: tools.Object(map[string]any{
				"document_id": documentID,
				"title":       tools.String("new title, omit to keep the current one"),
				"content":     tools.String("new content, omit to keep the current one"),
			}, "document_id"),
			Handler: ts.update,
		},
		{
			Name:        ToolDelete,
			Description: "Delete a document for the current user.",
			Parameters:  tools.Object(map[string]any{"document_id": documentID}, "document_id"),
			Handler:     ts.delete,
		},
	}
}

type idArgs struct {
	DocumentID tools.Int `json:"document_id"`
}

func (ts *toolset) search(ctx context.Context, raw json.RawMessage) (any, error) {
	caller, err := tools.RequireCaller(ctx)
	if err != nil {
		return nil, err
	}

	args, err := tools.Decode[struct {
		Query string    `json:"query"`
		Limit tools.Int `json:"limit"`
	}](raw)
	if err != nil {
		return nil, err
	}

	docs, err := ts.sys.List(ctx, caller.UserID, pagination.Request{
		Limit:  ts.limits.Clamp(int(args.Limit)),
		Search: &args.Query,
	})
	if err != nil {
		return nil, err
	}

	results := make([]Summary, len(docs))
	for i, d := range docs {
		results[i] = d.Summary()
	}
	return results, nil
}

func (ts *toolset) list(ctx context.Context, raw json.RawMessage) (any, error) {
	caller, err := tools.RequireCaller(ctx)
	if err != nil {
		return nil, err
	}

	args, err := tools.Decode[struct {
		Limit tools.Int `json:"limit"`
	}](raw)
	if err != nil {
		return nil, err
	}

	docs, err := ts.sys.List(ctx, caller.UserID, pagination.Request{
		Limit: ts.limits.Clamp(int(args.Limit)),
	})
	if err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		return Message{Message: NoDocumentsMessage}, nil
	}

	titles := make([]string, len(docs))
	for i, d := range docs {
		titles[i] = d.Title
	}
	return ListResult{Count: len(titles), Titles: titles}, nil
}

func (ts *toolset) get(ctx context.Context, raw json.RawMessage) (any, error) {
	caller, err := tools.RequireCaller(ctx)
	if err != nil {
		return nil, err
	}

	args, err := tools.Decode[idArgs](raw)
	if err != nil {
		return nil, err
	}

	doc, err := ts.sys.Find(ctx, caller.UserID, int64(args.DocumentID))
	if err != nil {
		return nil, err
	}
	return doc.Record(), nil
}

func (ts *toolset) create(ctx context.Context, raw json.RawMessage) (any, error) {
	caller, err := tools.RequireCaller(ctx)
	if err != nil {
		return nil, err
	}

	cmd, err := tools.Decode[CreateCommand](raw)
	if err != nil {
		return nil, err
	}

	doc, err := ts.sys.Create(ctx, caller.UserID, cmd)
	if err != nil {
		return nil, err
	}
	return doc.Record(), nil
}

func (ts *toolset) update(ctx context.Context, raw json.RawMessage) (any, error) {
	caller, err := tools.RequireCaller(ctx)
	if err != nil {
		return nil, err
	}

	args, err := tools.Decode[struct {
		idArgs
		UpdateCommand
	}](raw)
	if err != nil {
		return nil, err
	}

	doc, err := ts.sys.Update(ctx, caller.UserID, int64(args.DocumentID), args.UpdateCommand)
	if err != nil {
		return nil, err
	}
	return doc.Record(), nil
}

func (ts *toolset) delete(ctx context.Context, raw json.RawMessage) (any, error) {
	caller, err := tools.RequireCaller(ctx)
	if err != nil {
		return nil, err
	}

	args, err := tools.Decode[idArgs](raw)
	if err != nil {
		return nil, err
	}

	if err := ts.sys.Delete(ctx, caller.UserID, int64(args.DocumentID)); err != nil {
		return nil, err
	}
	return Message{Message: "Successfully deleted"}, nil
}
