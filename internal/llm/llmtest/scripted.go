// Package llmtest provides a scripted llm.Model for tests.
package llmtest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/JaimeStill/neurocore/internal/llm"
)

// ErrScriptExhausted is returned when Complete is called more times than replies were scripted.
var ErrScriptExhausted = errors.New("llmtest: no scripted reply left")

// Step produces one reply. It may inspect the request.
type Step func(req llm.Request) (*llm.Reply, error)

// Model replays scripted steps in order and records every request.
type Model struct {
	mu       sync.Mutex
	steps    []Step
	requests []llm.Request
}

// New creates a Model that replays steps.
func New(steps ...Step) *Model {
	return &Model{steps: steps}
}

func (m *Model) Name() string { return "scripted" }

func (m *Model) Complete(_ context.Context, req llm.Request) (*llm.Reply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	i := len(m.requests) - 1
	if i >= len(m.steps) {
		return nil, ErrScriptExhausted
	}
	return m.steps[i](req)
}

// Requests returns the recorded requests.
func (m *Model) Requests() []llm.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]llm.Request(nil), m.requests...)
}

// Text replies with content.
func Text(content string) Step {
	return func(llm.Request) (*llm.Reply, error) {
		return &llm.Reply{Content: content}, nil
	}
}

// Call replies with a single tool call. args is JSON encoded.
func Call(name string, args any) Step {
	return func(req llm.Request) (*llm.Reply, error) {
		data, err := json.Marshal(args)
		if err != nil {
			return nil, err
		}
		return &llm.Reply{ToolCalls: []llm.ToolCall{{
			ID:        fmt.Sprintf("call_%d", len(req.Messages)),
			Name:      name,
			Arguments: data,
		}}}, nil
	}
}

// Fail replies with err.
func Fail(err error) Step {
	return func(llm.Request) (*llm.Reply, error) {
		return nil, err
	}
}
