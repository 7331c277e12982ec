// Package supervisor routes a conversation to one of a set of agents through
// handoff tools and summarizes the agent's result for the user.
package supervisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
	"github.com/google/uuid"

	"github.com/JaimeStill/neurocore/internal/agents"
	"github.com/JaimeStill/neurocore/internal/llm"
	"github.com/JaimeStill/neurocore/internal/tools"
)

// Name identifies the supervisor in results and metrics.
const Name = "supervisor"

// FallbackReply is returned when the model neither answers nor routes.
const FallbackReply = "I'm sorry, I couldn't work out how to help with that. Could you ask about your documents or about movies?"

var (
	ErrNoAgents        = errors.New("supervisor requires at least one agent")
	ErrDuplicateAgent  = errors.New("duplicate agent name")
	ErrEmptyTranscript = errors.New("supervisor run requires at least one message")
)

const (
	nodeRoute     = "route"
	nodeDelegate  = "delegate"
	nodeSummarize = "summarize"
	nodeFinish    = "finish"

	keyMessages = "messages"
	keyRouted   = "routed"
	keyTarget   = "target"
	keyHandoff  = "handoff"
	keyResult   = "agent_result"
	keyReply    = "reply"
)

// Recorder receives graph, tool, and routing outcomes.
type Recorder interface {
	agents.Recorder
	ObserveRoute(agent string)
}

// Options configures a Supervisor.
type Options struct {
	Logger      *slog.Logger
	Recorder    Recorder
	Checkpoints state.CheckpointStore
}

// Supervisor owns no tools of its own; it exposes one handoff tool per agent.
type Supervisor struct {
	model       llm.Model
	members     map[string]*agents.Agent
	handoffs    []llm.ToolSpec
	prompt      string
	logger      *slog.Logger
	recorder    Recorder
	checkpoints state.CheckpointStore
}

// Result is the outcome of a supervised run. Agent names the delegated
// agent and is empty when the supervisor answered directly.
type Result struct {
	Agent     string         `json:"agent"`
	Reply     string         `json:"reply"`
	Delegated *agents.Result `json:"delegated,omitempty"`
}

// HandoffName returns the handoff tool name for agent.
func HandoffName(agent string) string {
	return "transfer_to_" + agent
}

// New creates a Supervisor over members.
func New(model llm.Model, members []*agents.Agent, opts Options) (*Supervisor, error) {
	if len(members) == 0 {
		return nil, ErrNoAgents
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	if opts.Checkpoints == nil {
		opts.Checkpoints = agents.NewMemoryCheckpoints()
	}

	s := &Supervisor{
		model:       model,
		members:     make(map[string]*agents.Agent, len(members)),
		prompt:      Prompt(members),
		logger:      opts.Logger.With("system", Name),
		recorder:    opts.Recorder,
		checkpoints: opts.Checkpoints,
	}

	for _, m := range members {
		if _, ok := s.members[m.Name()]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAgent, m.Name())
		}
		s.members[m.Name()] = m

		description := fmt.Sprintf("Transfer the request to %s.", m.Name())
		if d := m.Description(); d != "" {
			description = fmt.Sprintf("Transfer the request to %s. %s", m.Name(), d)
		}
		s.handoffs = append(s.handoffs, llm.ToolSpec{
			Name:        HandoffName(m.Name()),
			Description: description,
			Parameters:  tools.Object(map[string]any{}),
		})
	}

	return s, nil
}

// Agents returns the member agent names in handoff order.
func (s *Supervisor) Agents() []string {
	names := make([]string, len(s.handoffs))
	for i, h := range s.handoffs {
		names[i] = strings.TrimPrefix(h.Name, "transfer_to_")
	}
	return names
}

// Run routes messages to an agent, or answers directly, and returns the
// user-facing reply.
func (s *Supervisor) Run(ctx context.Context, messages []llm.Message) (*Result, error) {
	if len(messages) == 0 {
		return nil, ErrEmptyTranscript
	}

	graph, err := s.graph()
	if err != nil {
		return nil, fmt.Errorf("supervisor graph: %w", err)
	}

	initial := state.New(nil).Set(keyMessages, slices.Clone(messages))
	initial.RunID = uuid.NewString()

	final, err := graph.Execute(ctx, initial)
	if err != nil {
		return nil, fmt.Errorf("supervisor: %w", err)
	}

	result := &Result{}
	if v, ok := final.Get(keyReply); ok {
		result.Reply, _ = v.(string)
	}
	if v, ok := final.Get(keyResult); ok {
		if delegated, ok := v.(*agents.Result); ok {
			result.Delegated = delegated
			result.Agent = delegated.Agent
		}
	}

	s.recorder.ObserveRoute(result.Agent)
	s.logger.Info("run complete", "agent", result.Agent)
	return result, nil
}

func (s *Supervisor) graph() (state.StateGraph, error) {
	cfg := config.DefaultGraphConfig(Name)
	cfg.Checkpoint.Interval = 1

	observer := agents.NewObserver(Name, s.logger, s.recorder)

	graph, err := state.NewGraphWithDeps(cfg, observer, s.checkpoints)
	if err != nil {
		return nil, err
	}

	nodes := []struct {
		name string
		fn   func(context.Context, state.State) (state.State, error)
	}{
		{nodeRoute, s.route},
		{nodeDelegate, s.delegate},
		{nodeSummarize, s.summarize},
		{nodeFinish, finish},
	}
	for _, n := range nodes {
		if err := graph.AddNode(n.name, state.NewFunctionNode(n.fn)); err != nil {
			return nil, err
		}
	}

	if err := graph.AddEdge(nodeRoute, nodeDelegate, state.KeyEquals(keyRouted, true)); err != nil {
		return nil, err
	}
	if err := graph.AddEdge(nodeRoute, nodeFinish, state.KeyEquals(keyRouted, false)); err != nil {
		return nil, err
	}
	if err := graph.AddEdge(nodeDelegate, nodeSummarize, nil); err != nil {
		return nil, err
	}
	if err := graph.AddEdge(nodeSummarize, nodeFinish, nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint(nodeRoute); err != nil {
		return nil, err
	}
	if err := graph.SetExitPoint(nodeFinish); err != nil {
		return nil, err
	}

	return graph, nil
}

func (s *Supervisor) route(ctx context.Context, st state.State) (state.State, error) {
	reply, err := s.model.Complete(ctx, llm.Request{
		System:   s.prompt,
		Messages: messagesOf(st),
		Tools:    s.handoffs,
	})
	if err != nil {
		return st, fmt.Errorf("route: %w", err)
	}

	for _, call := range reply.ToolCalls {
		target := strings.TrimPrefix(call.Name, "transfer_to_")
		if _, ok := s.members[target]; !ok || target == call.Name {
			s.logger.Warn("ignoring unknown handoff", "tool", call.Name)
			continue
		}

		s.logger.Debug("routing", "agent", target)
		return st.Set(keyRouted, true).
			Set(keyTarget, target).
			Set(keyHandoff, call), nil
	}

	content := strings.TrimSpace(reply.Content)
	if content == "" {
		content = FallbackReply
	}
	return st.Set(keyRouted, false).Set(keyReply, content), nil
}

func (s *Supervisor) delegate(ctx context.Context, st state.State) (state.State, error) {
	v, _ := st.Get(keyTarget)
	target, _ := v.(string)

	member, ok := s.members[target]
	if !ok {
		return st, fmt.Errorf("delegate: unknown agent %q", target)
	}

	result, err := member.Run(ctx, messagesOf(st))
	if err != nil {
		return st, fmt.Errorf("delegate to %s: %w", target, err)
	}

	return st.Set(keyResult, result), nil
}

// handoffReport is the tool result the supervisor model sees for a handoff.
type handoffReport struct {
	Agent       string       `json:"agent"`
	Reply       string       `json:"reply"`
	ToolResults []toolResult `json:"tool_results,omitempty"`
}

type toolResult struct {
	Tool   string `json:"tool"`
	Result string `json:"result"`
}

func (s *Supervisor) summarize(ctx context.Context, st state.State) (state.State, error) {
	v, _ := st.Get(keyResult)
	result, _ := v.(*agents.Result)
	if result == nil {
		return st, fmt.Errorf("summarize: missing agent result")
	}

	h, _ := st.Get(keyHandoff)
	handoff, _ := h.(llm.ToolCall)

	report := handoffReport{Agent: result.Agent, Reply: result.Reply}
	for _, m := range result.Messages {
		if m.Role == llm.RoleTool {
			report.ToolResults = append(report.ToolResults, toolResult{Tool: m.Name, Result: m.Content})
		}
	}

	data, err := json.Marshal(report)
	if err != nil {
		return st, fmt.Errorf("summarize: encode report: %w", err)
	}

	transcript := append(slices.Clone(messagesOf(st)),
		llm.Message{Role: llm.RoleAssistant, ToolCalls: []llm.ToolCall{handoff}},
		llm.ToolResult(handoff, string(data)),
	)

	reply, err := s.model.Complete(ctx, llm.Request{
		System:   s.prompt,
		Messages: transcript,
		Tools:    s.handoffs,
	})
	if err != nil {
		return st, fmt.Errorf("summarize: %w", err)
	}

	content := strings.TrimSpace(reply.Content)
	if content == "" {
		content = result.Reply
	}
	return st.Set(keyReply, content), nil
}

func finish(_ context.Context, st state.State) (state.State, error) {
	if v, ok := st.Get(keyReply); ok {
		if reply, _ := v.(string); reply != "" {
			return st, nil
		}
	}
	return st.Set(keyReply, FallbackReply), nil
}

func messagesOf(st state.State) []llm.Message {
	v, ok := st.Get(keyMessages)
	if !ok {
		return nil
	}
	msgs, _ := v.([]llm.Message)
	return msgs
}

type nopRecorder struct{}

func (nopRecorder) ObserveNode(string, string, bool) {}
func (nopRecorder) ObserveTool(string, bool)         {}
func (nopRecorder) ObserveRoute(string)              {}
