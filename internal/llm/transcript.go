package llm

import (
	"fmt"
	"strings"
)

// Flatten renders a request as a single prompt for providers that accept
// one prompt per call rather than a message list.
func Flatten(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	if len(req.Messages) > 1 {
		b.WriteString("Conversation so far:\n")
		for _, m := range req.Messages[:len(req.Messages)-1] {
			writeMessage(&b, m)
		}
		b.WriteString("\n")
	}

	if n := len(req.Messages); n > 0 {
		last := req.Messages[n-1]
		switch last.Role {
		case RoleTool:
			writeMessage(&b, last)
			b.WriteString("\nUsing the tool results above, continue helping the user.")
		default:
			fmt.Fprintf(&b, "%s: %s", last.Role, last.Content)
		}
	}

	return b.String()
}

func writeMessage(b *strings.Builder, m Message) {
	switch {
	case m.Role == RoleTool:
		fmt.Fprintf(b, "tool %s returned: %s\n", m.Name, m.Content)
	case len(m.ToolCalls) > 0:
		if m.Content != "" {
			fmt.Fprintf(b, "%s: %s\n", m.Role, m.Content)
		}
		for _, c := range m.ToolCalls {
			fmt.Fprintf(b, "%s called tool %s with %s\n", m.Role, c.Name, string(c.Arguments))
		}
	default:
		fmt.Fprintf(b, "%s: %s\n", m.Role, m.Content)
	}
}
