package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

// Set is an ordered, name-indexed collection of tools.
type Set struct {
	tools []Tool
	index map[string]int
}

// NewSet builds a Set. Later tools with a duplicate name replace earlier ones.
func NewSet(tools ...Tool) *Set {
	s := &Set{index: make(map[string]int)}
	for _, t := range tools {
		s.Add(t)
	}
	return s
}

// Add registers t, replacing any tool with the same name.
func (s *Set) Add(t Tool) {
	if i, ok := s.index[t.Name]; ok {
		s.tools[i] = t
		return
	}
	s.index[t.Name] = len(s.tools)
	s.tools = append(s.tools, t)
}

// Get returns the tool registered under name.
func (s *Set) Get(name string) (Tool, bool) {
	i, ok := s.index[name]
	if !ok {
		return Tool{}, false
	}
	return s.tools[i], true
}

// List returns the tools in registration order.
func (s *Set) List() []Tool {
	out := make([]Tool, len(s.tools))
	copy(out, s.tools)
	return out
}

// Names returns the tool names in registration order.
func (s *Set) Names() []string {
	names := make([]string, len(s.tools))
	for i, t := range s.tools {
		names[i] = t.Name
	}
	return names
}

// Len returns the number of tools.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tools)
}

// Invoke runs the named tool and returns its result encoded as JSON.
func (s *Set) Invoke(ctx context.Context, name string, args json.RawMessage) (string, error) {
	t, ok := s.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	result, err := t.Handler(ctx, args)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("encode %s result: %w", name, err)
	}
	return string(data), nil
}
