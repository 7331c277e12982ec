// Package tools declares LLM-callable tools: a name, a description, a JSON
// schema for arguments, and a handler that receives the decoded call.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Tool errors.
var (
	ErrUnknownTool      = errors.New("unknown tool")
	ErrInvalidArguments = errors.New("invalid tool arguments")
)

// Handler executes a tool call with raw JSON arguments.
// The returned value must be JSON serializable.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// Tool is a single function exposed to a language model.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
	Handler     Handler
}

// Decode unmarshals tool arguments into T. Empty arguments decode to the zero value.
func Decode[T any](args json.RawMessage) (T, error) {
	var v T
	if len(args) == 0 || string(args) == "null" {
		return v, nil
	}
	if err := json.Unmarshal(args, &v); err != nil {
		return v, fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}
	return v, nil
}

// Int is an integer argument that also accepts numeric strings and
// integral floats, which some models emit for id parameters.
type Int int64

func (i *Int) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("expected integer, got %s", data)
		}
		n = json.Number(s)
	}

	if v, err := n.Int64(); err == nil {
		*i = Int(v)
		return nil
	}

	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil || f != float64(int64(f)) {
		return fmt.Errorf("expected integer, got %s", data)
	}
	*i = Int(int64(f))
	return nil
}

// Object builds a JSON schema object with the given properties.
func Object(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// String describes a string property.
func String(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

// Integer describes an integer property.
func Integer(description string) map[string]any {
	return map[string]any{"type": "integer", "description": description}
}
