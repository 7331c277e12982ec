package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

type gemini struct {
	client      *genai.Client
	name        string
	temperature float32
	maxTokens   int32
	logger      *slog.Logger
}

func newGemini(ctx context.Context, cfg *Config, logger *slog.Logger) (*gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	return &gemini{
		client:      client,
		name:        cfg.Model,
		temperature: float32(cfg.Temperature),
		maxTokens:   int32(cfg.MaxTokens),
		logger:      logger,
	}, nil
}

func (g *gemini) Name() string { return g.name }

// Close releases the underlying client connection.
func (g *gemini) Close() error {
	return g.client.Close()
}

func (g *gemini) Complete(ctx context.Context, req Request) (*Reply, error) {
	model := g.client.GenerativeModel(g.name)
	model.SetTemperature(g.temperature)
	model.SetMaxOutputTokens(g.maxTokens)

	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}
	if len(req.Tools) > 0 {
		model.Tools = []*genai.Tool{{FunctionDeclarations: declarations(req.Tools)}}
	}

	history, err := geminiContents(req.Messages)
	if err != nil {
		return nil, err
	}
	last := history[len(history)-1]

	session := model.StartChat()
	session.History = history[:len(history)-1]

	resp, err := session.SendMessage(ctx, last.Parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini send: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrEmptyResponse
	}

	reply := &Reply{}
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			text.WriteString(string(p))
		case genai.FunctionCall:
			args, err := json.Marshal(p.Args)
			if err != nil {
				return nil, fmt.Errorf("encode %s arguments: %w", p.Name, err)
			}
			reply.ToolCalls = append(reply.ToolCalls, ToolCall{
				ID:        "call_" + uuid.NewString(),
				Name:      p.Name,
				Arguments: args,
			})
		}
	}
	reply.Content = text.String()

	g.logger.Debug("completion", "tool_calls", len(reply.ToolCalls), "content_length", len(reply.Content))
	return reply, nil
}

// geminiContents maps the transcript onto alternating user and model turns.
// Consecutive tool results are folded into one user turn of function responses.
func geminiContents(messages []Message) ([]*genai.Content, error) {
	var out []*genai.Content

	appendPart := func(role string, part genai.Part) {
		if n := len(out); n > 0 && out[n-1].Role == role {
			out[n-1].Parts = append(out[n-1].Parts, part)
			return
		}
		out = append(out, &genai.Content{Role: role, Parts: []genai.Part{part}})
	}

	for _, m := range messages {
		switch m.Role {
		case RoleUser:
			appendPart("user", genai.Text(m.Content))
		case RoleAssistant:
			if m.Content != "" {
				appendPart("model", genai.Text(m.Content))
			}
			for _, call := range m.ToolCalls {
				var args map[string]any
				if len(call.Arguments) > 0 {
					if err := json.Unmarshal(call.Arguments, &args); err != nil {
						return nil, fmt.Errorf("%w: %s arguments: %w", ErrInvalidTranscript, call.Name, err)
					}
				}
				appendPart("model", genai.FunctionCall{Name: call.Name, Args: args})
			}
		case RoleTool:
			appendPart("user", genai.FunctionResponse{
				Name:     m.Name,
				Response: functionResponse(m.Content),
			})
		default:
			return nil, fmt.Errorf("%w: role %q", ErrInvalidTranscript, m.Role)
		}
	}

	if len(out) == 0 || out[len(out)-1].Role != "user" {
		return nil, fmt.Errorf("%w: transcript must end with a user or tool message", ErrInvalidTranscript)
	}
	return out, nil
}

// functionResponse wraps a tool result in the object form Gemini requires.
func functionResponse(content string) map[string]any {
	var v any
	if err := json.Unmarshal([]byte(content), &v); err != nil {
		return map[string]any{"result": content}
	}
	if obj, ok := v.(map[string]any); ok {
		return obj
	}
	return map[string]any{"result": v}
}

func declarations(specs []ToolSpec) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, len(specs))
	for i, s := range specs {
		decls[i] = &genai.FunctionDeclaration{
			Name:        s.Name,
			Description: s.Description,
			Parameters:  parameters(s.Parameters),
		}
	}
	return decls
}

// parameters converts a tool's parameter schema. Gemini rejects OBJECT
// schemas without properties, so a no-argument tool declares none.
func parameters(m map[string]any) *genai.Schema {
	s := schema(m)
	if s != nil && s.Type == genai.TypeObject && len(s.Properties) == 0 {
		return nil
	}
	return s
}

// schema converts a JSON schema map into a genai.Schema.
func schema(m map[string]any) *genai.Schema {
	if m == nil {
		return nil
	}

	s := &genai.Schema{}
	t, _ := m["type"].(string)
	switch t {
	case "object":
		s.Type = genai.TypeObject
	case "string":
		s.Type = genai.TypeString
	case "integer":
		s.Type = genai.TypeInteger
	case "number":
		s.Type = genai.TypeNumber
	case "boolean":
		s.Type = genai.TypeBoolean
	case "array":
		s.Type = genai.TypeArray
	}

	if d, ok := m["description"].(string); ok {
		s.Description = d
	}

	if props, ok := m["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			if p, ok := raw.(map[string]any); ok {
				s.Properties[name] = schema(p)
			}
		}
	}

	switch req := m["required"].(type) {
	case []string:
		s.Required = req
	case []any:
		for _, r := range req {
			if name, ok := r.(string); ok {
				s.Required = append(s.Required, name)
			}
		}
	}

	if items, ok := m["items"].(map[string]any); ok {
		s.Items = schema(items)
	}

	return s
}
