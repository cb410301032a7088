package generate

import (
	"context"
	"fmt"
	"strings"

	"dashforge/internal/analyze"
	"dashforge/internal/domain"
	"dashforge/internal/llm"
	"dashforge/internal/promptkit"
	"dashforge/internal/util/jsonutil"
)

var schemaPromptSpec = promptkit.Spec{
	Purpose: "Design a dashboard component schema for the given data snapshot, or ask clarifying questions when user intent is still ambiguous.",
	Background: "Components: Container, Card, Section, Metric, Table, List, Chart, Button, Filter, Tabs, Badge, Progress. " +
		"Prop values may be literals or binding strings: $data.<path> reads from the data snapshot, $item.<path> reads from a list row.",
	OutputFields: []promptkit.PromptField{
		{Name: "needs_questions", Type: "bool", Required: true, Description: "true when clarifying questions must be answered before a schema can be produced"},
		{Name: "questions", Type: "[]object", Description: "clarifying questions (id, text, options, impact); required when needs_questions is true"},
		{Name: "schema", Type: "object", Description: "component tree (component, props, children); required when needs_questions is false"},
		{Name: "reasoning", Type: "string", Description: "one short sentence on the layout choice"},
	},
	Constraints: []string{
		"Every Metric needs label and value props.",
		"Bind values with $data paths instead of copying literals whenever possible.",
		"Wrap everything in a single root Container.",
	},
	Rules: []string{
		"If the supplied answers already cover layout and emphasis, do not ask again.",
		"Keep the tree at most four levels deep.",
	},
	OutputFormat: "JSON only.",
}

type schemaPromptInput struct {
	Data     map[string]any    `json:"data"`
	Analysis analyze.Analysis  `json:"analysis"`
	Answers  map[string]string `json:"answers,omitempty"`
}

// LLMGenerator asks a language model for a schema proposal. It satisfies
// ExternalGenerator; the orchestrator handles fallback, so every problem
// here surfaces as a plain error.
type LLMGenerator struct {
	Client llm.Client
}

// Propose runs one generation call and parses the proposal envelope.
func (g *LLMGenerator) Propose(ctx context.Context, data map[string]any, analysis analyze.Analysis, answers map[string]string) (*Proposal, error) {
	if g == nil || g.Client == nil {
		return nil, fmt.Errorf("llm generator is not configured")
	}
	prompt, err := promptkit.Build(schemaPromptSpec, schemaPromptInput{
		Data:     data,
		Analysis: analysis,
		Answers:  answers,
	})
	if err != nil {
		return nil, err
	}
	raw, err := g.Client.GenerateJSON(ctx, prompt, nil)
	if err != nil {
		return nil, err
	}
	var proposal Proposal
	if err := jsonutil.UnmarshalFlex(raw, &proposal); err != nil {
		return nil, fmt.Errorf("parse proposal: %w", err)
	}
	return &proposal, nil
}

var domainPromptSpec = promptkit.Spec{
	Purpose: "Propose a reusable dashboard domain configuration describing this kind of data.",
	OutputFields: []promptkit.PromptField{
		{Name: "id", Type: "string", Required: true, Description: "snake_case identifier"},
		{Name: "name", Type: "string", Required: true},
		{Name: "description", Type: "string", Required: true},
		{Name: "keywords", Type: "[]string", Required: true, Description: "lowercase fragments expected among top-level keys"},
		{Name: "questions", Type: "[]object", Description: "clarifying questions (id, text, options, impact)"},
		{Name: "layout_hints", Type: "object", Description: "preferred_layout (grid|single-column|tabs) and emphasis"},
	},
	Constraints: []string{
		"Keywords must be generic enough to match similar datasets, not values from this one.",
	},
	OutputFormat: "JSON only.",
}

// ProposeDomain asks the model for a domain config describing the data.
// The caller decides whether to persist it; a nil result with an error
// simply means the user keeps the generic experience.
func ProposeDomain(ctx context.Context, client llm.Client, data map[string]any) (*domain.Config, error) {
	if client == nil {
		return nil, fmt.Errorf("llm client is not configured")
	}
	prompt, err := promptkit.Build(domainPromptSpec, map[string]any{"data": data})
	if err != nil {
		return nil, err
	}
	raw, err := client.GenerateJSON(ctx, prompt, nil)
	if err != nil {
		return nil, err
	}
	var cfg domain.Config
	if err := jsonutil.UnmarshalFlex(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse domain config: %w", err)
	}
	if strings.TrimSpace(cfg.ID) == "" || len(cfg.Keywords) == 0 {
		return nil, fmt.Errorf("domain proposal is incomplete")
	}
	cfg.CreatedBy = domain.CreatedByAI
	return &cfg, nil
}
