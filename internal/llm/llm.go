// Package llm defines the chat-completion contract used by agents and the
// supervisor, and selects a concrete provider from configuration.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Provider errors.
var (
	ErrMissingAPIKey     = errors.New("llm api key not configured")
	ErrUnknownProvider   = errors.New("unknown llm provider")
	ErrEmptyResponse     = errors.New("llm returned no candidates")
	ErrInvalidTranscript = errors.New("invalid llm transcript")
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a model request to invoke a named tool.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// Message is one transcript entry. Tool messages carry the ToolCallID and
// Name of the call they answer.
type Message struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	Name       string     `json:"name,omitempty"`
}

// UserMessage returns a user message with content.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage returns an assistant message with content.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// ToolResult returns the tool message answering call.
func ToolResult(call ToolCall, content string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: call.ID, Name: call.Name}
}

// ToolSpec declares a tool the model may call.
type ToolSpec struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request is a single completion call.
type Request struct {
	System   string
	Messages []Message
	Tools    []ToolSpec
}

// Reply is the model output: text, tool calls, or both.
type Reply struct {
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// Message converts the reply into an assistant transcript entry.
func (r *Reply) Message() Message {
	return Message{Role: RoleAssistant, Content: r.Content, ToolCalls: r.ToolCalls}
}

// Model is a chat-completion client with tool calling.
type Model interface {
	Name() string
	Complete(ctx context.Context, req Request) (*Reply, error)
}

// New constructs the Model named by cfg.Provider. A missing API key is an error.
func New(ctx context.Context, cfg *Config, logger *slog.Logger) (Model, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	logger = logger.With("system", "llm", "provider", cfg.Provider, "model", cfg.Model)

	var (
		m   Model
		err error
	)
	switch cfg.Provider {
	case ProviderGemini:
		m, err = newGemini(ctx, cfg, logger)
	case ProviderAgents:
		m, err = newAgents(cfg, logger)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return WithTimeout(m, cfg.TimeoutDuration()), nil
}

type timed struct {
	Model
	timeout time.Duration
}

// WithTimeout bounds each Complete call on m. A non-positive timeout returns m unchanged.
func WithTimeout(m Model, timeout time.Duration) Model {
	if timeout <= 0 {
		return m
	}
	return &timed{Model: m, timeout: timeout}
}

func (t *timed) Complete(ctx context.Context, req Request) (*Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Model.Complete(ctx, req)
}

// Close releases resources held by m when its provider keeps any.
func Close(m Model) error {
	if t, ok := m.(*timed); ok {
		m = t.Model
	}
	if c, ok := m.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
