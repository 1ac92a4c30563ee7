package scenario

import (
	"context"
	"time"

	"scenariod/internal/domain"
)

// GenerationOutput is what the backing text generator hands back: raw text
// plus usage counters and the finish-reason signal.
type GenerationOutput struct {
	Text         string
	TokensIn     int
	TokensOut    int
	FinishReason string
}

// Gateway is the pipeline's view of the external text generator. It is an
// opaque, unreliable collaborator: everything it returns is re-verified.
type Gateway interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (*GenerationOutput, error)
}

// Result is a scenario that passed every hard check, with advisory warnings
// and generation metadata.
type Result struct {
	Scenario *domain.Scenario `json:"scenario"`
	Warnings []string         `json:"warnings"`
	Meta     Metadata         `json:"meta"`
}

// Generator runs the synthesis pipeline. Each invocation is independent and
// stateless; concurrent calls share no mutable state.
type Generator struct {
	gateway Gateway
	pricing Pricing
	now     func() time.Time
}

// NewGenerator creates a generator over the given gateway and price pair.
func NewGenerator(gateway Gateway, pricing Pricing) *Generator {
	return &Generator{gateway: gateway, pricing: pricing, now: time.Now}
}

// Generate runs prompt -> generation -> parse -> merge -> reconcile ->
// validate. It either returns a scenario that passed all hard checks or an
// error; a partially merged or partially validated scenario is never
// returned.
func (g *Generator) Generate(ctx context.Context, userPrompt string) (*Result, error) {
	start := g.now()

	skeleton := BuildSkeleton()
	prompt, err := CompilePrompt(skeleton, userPrompt)
	if err != nil {
		return nil, err
	}

	out, err := g.gateway.Generate(ctx, SystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	parsed, err := ParseResponse(out.Text, out.FinishReason)
	if err != nil {
		return nil, err
	}

	merged, err := MergeResponse(skeleton, parsed)
	if err != nil {
		return nil, err
	}

	Reconcile(merged)

	report := Validate(merged)
	if len(report.Errors) > 0 {
		return nil, &ValidationError{Problems: report.Errors}
	}

	end := g.now()
	return &Result{
		Scenario: merged,
		Warnings: report.Warnings,
		Meta: Metadata{
			TokensIn:    out.TokensIn,
			TokensOut:   out.TokensOut,
			CostUSD:     Cost(out.TokensIn, out.TokensOut, g.pricing),
			DurationMs:  end.Sub(start).Milliseconds(),
			GeneratedAt: end,
		},
	}, nil
}
