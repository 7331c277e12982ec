package supervisor

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/neurocore/internal/agents"
)

// Prompt renders the routing and response instructions for members.
func Prompt(members []*agents.Agent) string {
	var b strings.Builder

	names := make([]string, len(members))
	for i, m := range members {
		names[i] = fmt.Sprintf("`%s`", m.Name())
	}

	fmt.Fprintf(&b, "You manage the following assistants: %s.\n\n", strings.Join(names, ", "))

	b.WriteString("Routing rules:\n")
	for _, m := range members {
		fmt.Fprintf(&b, "- If the request is about %s, send it to `%s` by calling `%s`.\n",
			topic(m.Name()), m.Name(), HandoffName(m.Name()))
	}
	b.WriteString("- Call at most one transfer tool per request.\n\n")

	b.WriteString("Response rules:\n")
	b.WriteString("- Never just acknowledge.\n")
	b.WriteString("- After receiving a tool or agent's result, summarize it in plain language for the user.\n")
	b.WriteString("- If the tool returns a list (e.g., document titles), format it as a readable numbered list.\n")
	b.WriteString("- If nothing is found, politely tell the user there are no results.")

	return b.String()
}

func topic(agent string) string {
	switch agent {
	case agents.DocumentAgentName:
		return "documents"
	case agents.MovieAgentName:
		return "movies"
	default:
		return strings.ReplaceAll(strings.TrimSuffix(agent, "_agent"), "_", " ")
	}
}
