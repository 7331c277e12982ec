package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/go-agents/pkg/agent"
	agtconfig "github.com/JaimeStill/go-agents/pkg/config"
	"github.com/google/uuid"
)

// goAgents serves completions through a go-agents provider. The provider
// accepts one prompt per call, so the transcript is flattened with Flatten.
type goAgents struct {
	cfg    *Config
	logger *slog.Logger
}

func newAgents(cfg *Config, logger *slog.Logger) (*goAgents, error) {
	g := &goAgents{cfg: cfg, logger: logger}
	if _, err := g.agent(""); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *goAgents) Name() string { return g.cfg.Model }

func (g *goAgents) Complete(ctx context.Context, req Request) (*Reply, error) {
	a, err := g.agent(req.System)
	if err != nil {
		return nil, err
	}

	prompt := Flatten(Request{Messages: req.Messages})

	if len(req.Tools) == 0 {
		resp, err := a.Chat(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("chat: %w", err)
		}
		return &Reply{Content: resp.Content()}, nil
	}

	tools := make([]agent.Tool, len(req.Tools))
	for i, t := range req.Tools {
		tools[i] = agent.Tool{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		}
	}

	resp, err := a.Tools(ctx, prompt, tools)
	if err != nil {
		return nil, fmt.Errorf("tools: %w", err)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encode tools response: %w", err)
	}

	reply, err := parseToolsResponse(raw)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("completion", "tool_calls", len(reply.ToolCalls), "content_length", len(reply.Content))
	return reply, nil
}

func (g *goAgents) agent(system string) (agent.Agent, error) {
	raw, err := json.Marshal(g.agentConfig(system))
	if err != nil {
		return nil, fmt.Errorf("encode agent config: %w", err)
	}

	cfg := agtconfig.DefaultAgentConfig()

	var userCfg agtconfig.AgentConfig
	if err := json.Unmarshal(raw, &userCfg); err != nil {
		return nil, fmt.Errorf("decode agent config: %w", err)
	}

	cfg.Merge(&userCfg)

	a, err := agent.New(&cfg)
	if err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}
	return a, nil
}

func (g *goAgents) agentConfig(system string) map[string]any {
	provider := map[string]any{
		"name": g.cfg.Backend,
		"model": map[string]any{
			"name": g.cfg.Model,
			"options": map[string]any{
				"temperature": g.cfg.Temperature,
				"max_tokens":  g.cfg.MaxTokens,
			},
		},
		"options": map[string]any{
			"api_key": g.cfg.APIKey,
		},
	}
	if g.cfg.BaseURL != "" {
		provider["base_url"] = g.cfg.BaseURL
	}

	cfg := map[string]any{
		"name":     g.cfg.Model,
		"provider": provider,
	}
	if system != "" {
		cfg["system_prompt"] = system
	}
	return cfg
}

type toolsResponse struct {
	Choices []struct {
		Message struct {
			Content   string `json:"content"`
			ToolCalls []struct {
				ID       string `json:"id"`
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

func parseToolsResponse(raw []byte) (*Reply, error) {
	var resp toolsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode tools response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	msg := resp.Choices[0].Message
	reply := &Reply{Content: msg.Content}

	for _, c := range msg.ToolCalls {
		id := c.ID
		if id == "" {
			id = "call_" + uuid.NewString()
		}
		args := json.RawMessage(c.Function.Arguments)
		if len(args) == 0 || !json.Valid(args) {
			args = json.RawMessage("{}")
		}
		reply.ToolCalls = append(reply.ToolCalls, ToolCall{
			ID:        id,
			Name:      c.Function.Name,
			Arguments: args,
		})
	}
	return reply, nil
}
