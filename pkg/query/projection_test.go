package query_test

import (
	"reflect"
	"testing"

	"github.com/JaimeStill/neurocore/pkg/query"
)

func TestProjectionMap(t *testing.T) {
	pm := newTestProjection()

	if got := pm.Table(); got != "public.documents d" {
		t.Errorf("Table() = %q", got)
	}
	if got := pm.Columns(); got != "d.id, d.title, d.content, d.owner_id" {
		t.Errorf("Columns() = %q", got)
	}
	if got := pm.Column("OwnerId"); got != "d.owner_id" {
		t.Errorf("Column(OwnerId) = %q", got)
	}
	if got := pm.Column("unknown"); got != "unknown" {
		t.Errorf("Column(unknown) = %q, want passthrough", got)
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty", "", nil},
		{"single ascending", "title", []query.SortField{{Field: "title"}}},
		{"single descending", "-created_at", []query.SortField{{Field: "created_at", Descending: true}}},
		{
			"mixed with spaces",
			"-created_at, title",
			[]query.SortField{{Field: "created_at", Descending: true}, {Field: "title"}},
		},
		{"only separators", " , ,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSortFields(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
