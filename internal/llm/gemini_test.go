package llm

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"

	"github.com/JaimeStill/neurocore/internal/tools"
)

func TestGeminiContents(t *testing.T) {
	first := ToolCall{ID: "a", Name: "get_document", Arguments: json.RawMessage(`{"document_id":1}`)}
	second := ToolCall{ID: "b", Name: "get_document", Arguments: json.RawMessage(`{"document_id":2}`)}

	contents, err := geminiContents([]Message{
		UserMessage("show documents 1 and 2"),
		{Role: RoleAssistant, ToolCalls: []ToolCall{first, second}},
		ToolResult(first, `{"id":1,"title":"One"}`),
		ToolResult(second, `error: document not found, try again`),
	})
	if err != nil {
		t.Fatalf("geminiContents() error = %v", err)
	}

	if len(contents) != 3 {
		t.Fatalf("len(contents) = %d, want 3", len(contents))
	}

	roles := []string{"user", "model", "user"}
	for i, want := range roles {
		if contents[i].Role != want {
			t.Errorf("contents[%d].Role = %q, want %q", i, contents[i].Role, want)
		}
	}

	if len(contents[1].Parts) != 2 {
		t.Fatalf("model parts = %d, want 2", len(contents[1].Parts))
	}
	fc, ok := contents[1].Parts[0].(genai.FunctionCall)
	if !ok || fc.Name != "get_document" || fc.Args["document_id"] != float64(1) {
		t.Errorf("model part = %#v", contents[1].Parts[0])
	}

	if len(contents[2].Parts) != 2 {
		t.Fatalf("tool parts = %d, want 2", len(contents[2].Parts))
	}
	fr, ok := contents[2].Parts[0].(genai.FunctionResponse)
	if !ok || fr.Response["title"] != "One" {
		t.Errorf("tool part = %#v", contents[2].Parts[0])
	}
	fr, ok = contents[2].Parts[1].(genai.FunctionResponse)
	if !ok || fr.Response["result"] != "error: document not found, try again" {
		t.Errorf("tool part = %#v", contents[2].Parts[1])
	}
}

func TestGeminiContents_MustEndWithUser(t *testing.T) {
	_, err := geminiContents([]Message{UserMessage("hi"), AssistantMessage("hello")})

	if !errors.Is(err, ErrInvalidTranscript) {
		t.Errorf("geminiContents() error = %v, want ErrInvalidTranscript", err)
	}
}

func TestGeminiContents_UnknownRole(t *testing.T) {
	_, err := geminiContents([]Message{{Role: "system", Content: "x"}})

	if !errors.Is(err, ErrInvalidTranscript) {
		t.Errorf("geminiContents() error = %v, want ErrInvalidTranscript", err)
	}
}

func TestSchema(t *testing.T) {
	s := schema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{"type": "string", "description": "Search text"},
			"limit": map[string]any{"type": "integer"},
			"tags":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []string{"query"},
	})

	if s.Type != genai.TypeObject {
		t.Errorf("Type = %v, want object", s.Type)
	}
	if s.Properties["query"].Type != genai.TypeString || s.Properties["query"].Description != "Search text" {
		t.Errorf("query = %+v", s.Properties["query"])
	}
	if s.Properties["limit"].Type != genai.TypeInteger {
		t.Errorf("limit = %+v", s.Properties["limit"])
	}
	if s.Properties["tags"].Items == nil || s.Properties["tags"].Items.Type != genai.TypeString {
		t.Errorf("tags = %+v", s.Properties["tags"])
	}
	if len(s.Required) != 1 || s.Required[0] != "query" {
		t.Errorf("Required = %v, want [query]", s.Required)
	}
}

func TestSchema_Nil(t *testing.T) {
	if schema(nil) != nil {
		t.Error("schema(nil) should be nil")
	}
}

func TestDeclarations_EmptyObjectHasNoParameters(t *testing.T) {
	decls := declarations([]ToolSpec{
		{Name: "transfer_to_document_agent", Parameters: tools.Object(map[string]any{})},
		{Name: "no_schema"},
		{Name: "search", Parameters: tools.Object(map[string]any{"query": tools.String("text")}, "query")},
	})

	if decls[0].Parameters != nil {
		t.Errorf("empty object parameters = %+v, want nil", decls[0].Parameters)
	}
	if decls[1].Parameters != nil {
		t.Errorf("missing parameters = %+v, want nil", decls[1].Parameters)
	}
	if decls[2].Parameters == nil || len(decls[2].Parameters.Properties) != 1 {
		t.Errorf("search parameters = %+v, want one property", decls[2].Parameters)
	}
}
