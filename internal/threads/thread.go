// Package threads persists conversation transcripts keyed by thread id.
package threads

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/neurocore/internal/llm"
	"github.com/JaimeStill/neurocore/internal/tools"
)

var (
	ErrNotFound  = errors.New("thread not found")
	ErrInvalidID = errors.New("invalid thread id")
)

// Thread is one conversation owned by a single user.
type Thread struct {
	ID        string        `json:"thread_id"`
	OwnerID   int64         `json:"owner_id"`
	Agent     string        `json:"agent"`
	Messages  []llm.Message `json:"messages"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// System stores threads. Every operation is scoped to the owner.
type System interface {
	Find(ctx context.Context, ownerID int64, id string) (*Thread, error)
	Save(ctx context.Context, t *Thread) (*Thread, error)
	Delete(ctx context.Context, ownerID int64, id string) error
}

// NewID returns a fresh thread id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id is a well-formed thread id.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, tools.ErrMissingIdentity):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
