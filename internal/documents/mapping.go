package documents

import (
	"github.com/JaimeStill/neurocore/pkg/query"
	"github.com/JaimeStill/neurocore/pkg/repository"
)

var projection = query.NewProjectionMap("public", "documents", "d").
	Project("id", "Id").
	Project("title", "Title").
	Project("content", "Content").
	Project("owner_id", "OwnerId").
	Project("active", "Active").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

const returning = "id, title, content, owner_id, active, created_at, updated_at"

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

// sortable limits client sort fields to known columns.
var sortable = map[string]string{
	"id":         "Id",
	"title":      "Title",
	"created_at": "CreatedAt",
	"updated_at": "UpdatedAt",
}

func sortFields(fields []query.SortField) []query.SortField {
	out := make([]query.SortField, 0, len(fields))
	for _, f := range fields {
		if col, ok := sortable[f.Field]; ok {
			out = append(out, query.SortField{Field: col, Descending: f.Descending})
		}
	}
	return out
}

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.Title,
		&d.Content,
		&d.OwnerID,
		&d.Active,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}
