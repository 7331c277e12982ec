// Package documents provides owner-scoped storage for user text documents
// and the LLM tools that manage them.
package documents

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleLength is the maximum number of characters in a document title.
const MaxTitleLength = 120

// Document is a titled block of text owned by a single user.
type Document struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	OwnerID   int64     `json:"owner_id"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary is the id and title pair returned by search.
type Summary struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Record is the projection of a document returned by the tools.
type Record struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary returns the id and title of d.
func (d Document) Summary() Summary {
	return Summary{ID: d.ID, Title: d.Title}
}

// Record returns the tool-facing projection of d.
func (d Document) Record() Record {
	return Record{ID: d.ID, Title: d.Title, Content: d.Content, CreatedAt: d.CreatedAt}
}

// CreateCommand contains the data required to create a new document.
type CreateCommand struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate checks title length and content size, where maxContent <= 0 disables the size check.
func (c CreateCommand) Validate(maxContent int64) error {
	if err := validateTitle(c.Title); err != nil {
		return err
	}
	return validateContent(c.Content, maxContent)
}

// UpdateCommand carries a partial update. Nil or empty fields are left unchanged.
type UpdateCommand struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// Empty reports whether the command would change nothing.
func (c UpdateCommand) Empty() bool {
	return !present(c.Title) && !present(c.Content)
}

// Validate checks any supplied fields.
func (c UpdateCommand) Validate(maxContent int64) error {
	if present(c.Title) {
		if err := validateTitle(*c.Title); err != nil {
			return err
		}
	}
	if present(c.Content) {
		return validateContent(*c.Content, maxContent)
	}
	return nil
}

// normalized drops fields that would not change the record.
func (c UpdateCommand) normalized() UpdateCommand {
	if !present(c.Title) {
		c.Title = nil
	}
	if !present(c.Content) {
		c.Content = nil
	}
	return c
}

func present(s *string) bool {
	return s != nil && *s != ""
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title required", ErrInvalidDocument)
	}
	if n := utf8.RuneCountInString(title); n > MaxTitleLength {
		return fmt.Errorf("%w: title is %d characters, limit %d", ErrInvalidDocument, n, MaxTitleLength)
	}
	return nil
}

func validateContent(content string, max int64) error {
	if max > 0 && int64(len(content)) > max {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrContentTooLarge, len(content), max)
	}
	return nil
}
