// Package agents runs named language-model agents over a tool set using a
// reason/act state graph.
package agents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
	"github.com/google/uuid"

	"github.com/JaimeStill/neurocore/internal/llm"
	"github.com/JaimeStill/neurocore/internal/tools"
)

// DefaultMaxSteps bounds model calls per run when Options.MaxSteps is unset.
const DefaultMaxSteps = 8

// StepLimitReply is returned when a run exhausts its step budget with tool calls still pending.
const StepLimitReply = "I'm sorry, I wasn't able to finish that request. Please try rephrasing it or breaking it into smaller steps."

// ErrEmptyTranscript is returned by Run when no messages are supplied.
var ErrEmptyTranscript = errors.New("agent run requires at least one message")

const (
	nodeReason  = "reason"
	nodeAct     = "act"
	nodeRespond = "respond"

	keyMessages = "messages"
	keySteps    = "steps"
	keyPending  = "pending"
	keyReply    = "reply"
)

// Recorder receives graph and tool outcomes.
type Recorder interface {
	ObserveNode(graph, node string, failed bool)
	ObserveTool(tool string, failed bool)
}

// Options configures an Agent. Zero values select defaults.
type Options struct {
	Description string
	MaxSteps    int
	Logger      *slog.Logger
	Recorder    Recorder
	Checkpoints state.CheckpointStore
}

// Agent is a named bundle of model, prompt, and tools.
type Agent struct {
	name        string
	description string
	prompt      string
	model       llm.Model
	tools       *tools.Set
	specs       []llm.ToolSpec
	maxSteps    int
	logger      *slog.Logger
	recorder    Recorder
	checkpoints state.CheckpointStore
}

// Result is the outcome of a run. Messages holds only the entries the run
// appended to the input transcript.
type Result struct {
	Agent    string        `json:"agent"`
	Reply    string        `json:"reply"`
	Messages []llm.Message `json:"messages"`
	Steps    int           `json:"steps"`
}

// New creates an Agent. toolset may be nil for a tool-less agent.
func New(name, prompt string, model llm.Model, toolset *tools.Set, opts Options) *Agent {
	if toolset == nil {
		toolset = tools.NewSet()
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = DefaultMaxSteps
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	if opts.Checkpoints == nil {
		opts.Checkpoints = NewMemoryCheckpoints()
	}

	return &Agent{
		name:        name,
		description: opts.Description,
		prompt:      prompt,
		model:       model,
		tools:       toolset,
		specs:       Specs(toolset),
		maxSteps:    opts.MaxSteps,
		logger:      opts.Logger.With("system", "agent", "agent", name),
		recorder:    opts.Recorder,
		checkpoints: opts.Checkpoints,
	}
}

func (a *Agent) Name() string        { return a.name }
func (a *Agent) Description() string { return a.description }
func (a *Agent) Prompt() string      { return a.prompt }
func (a *Agent) Tools() *tools.Set   { return a.tools }

// Run executes the reason/act loop over messages until the model answers
// without tool calls or the step budget is spent.
func (a *Agent) Run(ctx context.Context, messages []llm.Message) (*Result, error) {
	if len(messages) == 0 {
		return nil, ErrEmptyTranscript
	}

	graph, err := a.graph()
	if err != nil {
		return nil, fmt.Errorf("%s graph: %w", a.name, err)
	}

	initial := state.New(nil).
		Set(keyMessages, slices.Clone(messages)).
		Set(keySteps, 0)
	initial.RunID = uuid.NewString()

	final, err := graph.Execute(ctx, initial)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.name, err)
	}

	transcript := messagesOf(final)
	reply, _ := final.Get(keyReply)
	text, _ := reply.(string)
	steps, _ := final.Get(keySteps)
	n, _ := steps.(int)

	a.logger.Info("run complete", "steps", n, "messages", len(transcript)-len(messages))

	return &Result{
		Agent:    a.name,
		Reply:    text,
		Messages: transcript[len(messages):],
		Steps:    n,
	}, nil
}

func (a *Agent) graph() (state.StateGraph, error) {
	cfg := config.DefaultGraphConfig(a.name)
	cfg.Checkpoint.Interval = 1

	observer := NewObserver(a.name, a.logger, a.recorder)

	graph, err := state.NewGraphWithDeps(cfg, observer, a.checkpoints)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode(nodeReason, state.NewFunctionNode(a.reason)); err != nil {
		return nil, err
	}
	if err := graph.AddNode(nodeAct, state.NewFunctionNode(a.act)); err != nil {
		return nil, err
	}
	if err := graph.AddNode(nodeRespond, state.NewFunctionNode(respond)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge(nodeReason, nodeAct, state.KeyEquals(keyPending, true)); err != nil {
		return nil, err
	}
	if err := graph.AddEdge(nodeReason, nodeRespond, state.KeyEquals(keyPending, false)); err != nil {
		return nil, err
	}
	if err := graph.AddEdge(nodeAct, nodeReason, nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint(nodeReason); err != nil {
		return nil, err
	}
	if err := graph.SetExitPoint(nodeRespond); err != nil {
		return nil, err
	}

	return graph, nil
}

func (a *Agent) reason(ctx context.Context, s state.State) (state.State, error) {
	transcript := messagesOf(s)
	steps, _ := s.Get(keySteps)
	step, _ := steps.(int)
	step++

	reply, err := a.model.Complete(ctx, llm.Request{
		System:   a.prompt,
		Messages: transcript,
		Tools:    a.specs,
	})
	if err != nil {
		return s, fmt.Errorf("model call: %w", err)
	}

	pending := len(reply.ToolCalls) > 0
	msg := reply.Message()

	if pending && step >= a.maxSteps {
		a.logger.Warn("step limit reached", "max_steps", a.maxSteps, "pending_calls", len(reply.ToolCalls))
		pending = false
		msg = llm.AssistantMessage(StepLimitReply)
	}

	transcript = append(slices.Clone(transcript), msg)

	s = s.Set(keyMessages, transcript).
		Set(keySteps, step).
		Set(keyPending, pending)

	if !pending {
		s = s.Set(keyReply, msg.Content)
	}
	return s, nil
}

func (a *Agent) act(ctx context.Context, s state.State) (state.State, error) {
	transcript := messagesOf(s)
	if len(transcript) == 0 {
		return s, fmt.Errorf("act: empty transcript")
	}
	last := transcript[len(transcript)-1]

	results := make([]llm.Message, 0, len(last.ToolCalls))
	for _, call := range last.ToolCalls {
		content, err := a.tools.Invoke(ctx, call.Name, call.Arguments)
		a.recorder.ObserveTool(call.Name, err != nil)
		if err != nil {
			a.logger.Debug("tool failed", "tool", call.Name, "error", err)
			content = "error: " + err.Error()
		}
		results = append(results, llm.ToolResult(call, content))
	}

	transcript = append(slices.Clone(transcript), results...)
	return s.Set(keyMessages, transcript).Set(keyPending, false), nil
}

func respond(_ context.Context, s state.State) (state.State, error) {
	if _, ok := s.Get(keyReply); ok {
		return s, nil
	}
	transcript := messagesOf(s)
	if n := len(transcript); n > 0 {
		return s.Set(keyReply, transcript[n-1].Content), nil
	}
	return s.Set(keyReply, ""), nil
}

func messagesOf(s state.State) []llm.Message {
	v, ok := s.Get(keyMessages)
	if !ok {
		return nil
	}
	msgs, _ := v.([]llm.Message)
	return msgs
}

// Specs converts a tool set into model tool declarations.
func Specs(set *tools.Set) []llm.ToolSpec {
	if set.Len() == 0 {
		return nil
	}
	list := set.List()
	specs := make([]llm.ToolSpec, len(list))
	for i, t := range list {
		specs[i] = llm.ToolSpec{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		}
	}
	return specs
}

type nopRecorder struct{}

func (nopRecorder) ObserveNode(string, string, bool) {}
func (nopRecorder) ObserveTool(string, bool)         {}
