package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/neurocore/pkg/handlers"
)

func TestRespondError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := httptest.NewRecorder()

	handlers.RespondError(w, logger, http.StatusNotFound, errors.New("document not found, try again"))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "document not found, try again" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
	}

	tests := []struct {
		name    string
		body    string
		max     int64
		wantErr bool
	}{
		{"valid", `{"title":"notes"}`, 1024, false},
		{"unknown field", `{"title":"notes","owner_id":9}`, 1024, true},
		{"too large", `{"title":"` + strings.Repeat("x", 64) + `"}`, 16, true},
		{"malformed", `{"title":`, 1024, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			got, err := handlers.DecodeJSON[payload](httptest.NewRecorder(), r, tt.max)

			if tt.wantErr {
				if !errors.Is(err, handlers.ErrInvalidBody) {
					t.Errorf("error = %v, want ErrInvalidBody", err)
				}
				return
			}
			if err != nil || got.Title != "notes" {
				t.Errorf("DecodeJSON() = %+v, %v", got, err)
			}
		})
	}
}
