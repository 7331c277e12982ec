package llm

import (
	"errors"
	"testing"
)

func TestParseToolsResponse(t *testing.T) {
	raw := []byte(`{
		"choices": [{
			"message": {
				"content": "",
				"tool_calls": [
					{"id": "call_1", "type": "function", "function": {"name": "search_movies", "arguments": "{\"query\":\"Alien\"}"}},
					{"type": "function", "function": {"name": "list_documents", "arguments": ""}}
				]
			}
		}]
	}`)

	reply, err := parseToolsResponse(raw)
	if err != nil {
		t.Fatalf("parseToolsResponse() error = %v", err)
	}

	if len(reply.ToolCalls) != 2 {
		t.Fatalf("len(ToolCalls) = %d, want 2", len(reply.ToolCalls))
	}
	if reply.ToolCalls[0].ID != "call_1" || string(reply.ToolCalls[0].Arguments) != `{"query":"Alien"}` {
		t.Errorf("ToolCalls[0] = %+v", reply.ToolCalls[0])
	}
	if reply.ToolCalls[1].ID == "" {
		t.Error("ToolCalls[1].ID should be generated")
	}
	if string(reply.ToolCalls[1].Arguments) != "{}" {
		t.Errorf("ToolCalls[1].Arguments = %s, want {}", reply.ToolCalls[1].Arguments)
	}
}

func TestParseToolsResponse_NoChoices(t *testing.T) {
	_, err := parseToolsResponse([]byte(`{"choices":[]}`))

	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("parseToolsResponse() error = %v, want ErrEmptyResponse", err)
	}
}

func TestAgentConfig(t *testing.T) {
	g := &goAgents{cfg: &Config{
		Model:       "llama3",
		Backend:     "ollama",
		BaseURL:     "http://localhost:11434",
		Temperature: 0.2,
		MaxTokens:   512,
		APIKey:      "k",
	}}

	cfg := g.agentConfig("be brief")

	if cfg["system_prompt"] != "be brief" {
		t.Errorf("system_prompt = %v", cfg["system_prompt"])
	}
	provider := cfg["provider"].(map[string]any)
	if provider["name"] != "ollama" || provider["base_url"] != "http://localhost:11434" {
		t.Errorf("provider = %v", provider)
	}
	model := provider["model"].(map[string]any)
	if model["name"] != "llama3" {
		t.Errorf("model = %v", model)
	}
}
