package generate

import (
	"context"
	"log"
	"time"

	"dashforge/internal/analyze"
	"dashforge/internal/domain"
	"dashforge/internal/schema"
)

// Proposal is the contract an external generator must satisfy. When
// NeedsQuestions is set the questions should be non-empty; when it is not,
// a schema should be present. Anything else counts as a failed generation.
type Proposal struct {
	NeedsQuestions bool                    `json:"needs_questions"`
	Questions      []domain.Question       `json:"questions,omitempty"`
	Schema         *schema.ComponentSchema `json:"schema,omitempty"`
	Reasoning      string                  `json:"reasoning,omitempty"`
}

// ExternalGenerator produces a schema proposal out-of-process, typically
// via an LLM. A single call, no retries; the orchestrator falls back on
// any failure.
type ExternalGenerator interface {
	Propose(ctx context.Context, data map[string]any, analysis analyze.Analysis, answers map[string]string) (*Proposal, error)
}

// Source values for Result.Source.
const (
	SourceExternal      = "external"
	SourceDeterministic = "deterministic"
)

// Result is the orchestrator's outcome: either a question set to surface
// to the user, or a schema (external or deterministic).
type Result struct {
	NeedsQuestions bool                    `json:"needs_questions"`
	Questions      []domain.Question       `json:"questions,omitempty"`
	Schema         *schema.ComponentSchema `json:"schema,omitempty"`
	Source         string                  `json:"source"`
	Reasoning      string                  `json:"reasoning,omitempty"`
}

// DefaultExternalTimeout bounds the single external generation attempt.
const DefaultExternalTimeout = 45 * time.Second

// Orchestrator prefers the external generator and falls back to the
// deterministic pipeline, which always produces some schema.
type Orchestrator struct {
	External ExternalGenerator
	Timeout  time.Duration
}

// outcome classifies one external attempt. Fallback triggers only on
// failure; control flow never rides on a recovered panic or error type.
type outcome int

const (
	outcomeFailure outcome = iota
	outcomeNeedsQuestions
	outcomeSchema
)

// Generate runs the orchestration: one bounded external attempt, then the
// deterministic generator on any failure. It never returns an empty
// result.
func (o *Orchestrator) Generate(ctx context.Context, data map[string]any, analysis analyze.Analysis, answers map[string]string) Result {
	if o != nil && o.External != nil {
		timeout := o.Timeout
		if timeout <= 0 {
			timeout = DefaultExternalTimeout
		}
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		proposal, err := o.External.Propose(attemptCtx, data, analysis, answers)
		cancel()

		switch classify(proposal, err) {
		case outcomeNeedsQuestions:
			return Result{
				NeedsQuestions: true,
				Questions:      proposal.Questions,
				Source:         SourceExternal,
				Reasoning:      proposal.Reasoning,
			}
		case outcomeSchema:
			if res := schema.ValidateSchema(proposal.Schema); !res.Valid {
				log.Printf("generate: external schema validation warnings: %v", res.Errors)
			}
			return Result{
				Schema:    proposal.Schema,
				Source:    SourceExternal,
				Reasoning: proposal.Reasoning,
			}
		default:
			if err != nil {
				log.Printf("generate: external generation failed, falling back: %v", err)
			} else {
				log.Printf("generate: external generation returned no schema, falling back")
			}
		}
	}

	return Result{
		Schema: Generate(data, analysis, answers),
		Source: SourceDeterministic,
	}
}

func classify(p *Proposal, err error) outcome {
	if err != nil || p == nil {
		return outcomeFailure
	}
	if p.NeedsQuestions {
		if len(p.Questions) == 0 {
			// Empty question lists mean the model punted; treat as failure.
			return outcomeFailure
		}
		return outcomeNeedsQuestions
	}
	if p.Schema != nil {
		return outcomeSchema
	}
	return outcomeFailure
}
