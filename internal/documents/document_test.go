package documents_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/JaimeStill/neurocore/internal/documents"
)

func ptr(s string) *string { return &s }

func TestCreateCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     documents.CreateCommand
		max     int64
		wantErr error
	}{
		{"valid", documents.CreateCommand{Title: "Notes", Content: "body"}, 0, nil},
		{"blank title", documents.CreateCommand{Title: "  ", Content: "body"}, 0, documents.ErrInvalidDocument},
		{"title at limit", documents.CreateCommand{Title: strings.Repeat("a", 120)}, 0, nil},
		{"title too long", documents.CreateCommand{Title: strings.Repeat("a", 121)}, 0, documents.ErrInvalidDocument},
		{"multibyte title at limit", documents.CreateCommand{Title: strings.Repeat("é", 120)}, 0, nil},
		{"content too large", documents.CreateCommand{Title: "t", Content: "12345"}, 4, documents.ErrContentTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate(tt.max)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateCommand_Empty(t *testing.T) {
	tests := []struct {
		name string
		cmd  documents.UpdateCommand
		want bool
	}{
		{"nothing", documents.UpdateCommand{}, true},
		{"empty strings", documents.UpdateCommand{Title: ptr(""), Content: ptr("")}, true},
		{"title", documents.UpdateCommand{Title: ptr("new")}, false},
		{"content", documents.UpdateCommand{Content: ptr("new")}, false},
	}

	for _, tt := range tests {
		if got := tt.cmd.Empty(); got != tt.want {
			t.Errorf("%s: Empty() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{documents.ErrNotFound, 404},
		{documents.ErrInvalidDocument, 400},
		{documents.ErrContentTooLarge, 413},
		{errors.New("boom"), 500},
	}

	for _, tt := range tests {
		if got := documents.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
