package llm_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/JaimeStill/neurocore/internal/llm"
)

func TestFlatten(t *testing.T) {
	call := llm.ToolCall{ID: "c1", Name: "list_documents", Arguments: json.RawMessage(`{"limit":5}`)}

	req := llm.Request{
		System: "You manage documents.",
		Messages: []llm.Message{
			llm.UserMessage("list my documents"),
			{Role: llm.RoleAssistant, ToolCalls: []llm.ToolCall{call}},
			llm.ToolResult(call, `{"count":1,"titles":["Notes"]}`),
		},
	}

	got := llm.Flatten(req)

	for _, want := range []string{
		"You manage documents.",
		"user: list my documents",
		`assistant called tool list_documents with {"limit":5}`,
		`tool list_documents returned: {"count":1,"titles":["Notes"]}`,
		"Using the tool results above",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Flatten() missing %q in:\n%s", want, got)
		}
	}
}

func TestFlatten_SingleMessage(t *testing.T) {
	got := llm.Flatten(llm.Request{Messages: []llm.Message{llm.UserMessage("hi")}})

	if got != "user: hi" {
		t.Errorf("Flatten() = %q, want %q", got, "user: hi")
	}
}
