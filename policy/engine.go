// Package policy evaluates prompt admission before any generation spend.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/rego"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.scenario_policy.decision"),
		rego.Module("scenario_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks the admission policy for a prompt.
// Input should be a map with keys: prompt, prompt_chars.
// Returns: decision (allow, block), error.
func (e *Engine) Evaluate(ctx context.Context, input interface{}) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		// The policy defines a default; an empty result means the
		// module is broken, not that the prompt is acceptable.
		return "block", nil
	}

	if s, ok := results[0].Expressions[0].Value.(string); ok {
		return s, nil
	}
	return "block", nil
}

// DefaultPolicy is the default admission policy content.
const DefaultPolicy = `
package scenario_policy

default decision := "allow"

# Refuse obvious instruction-injection prompts before spending tokens.
decision := "block" if {
	contains(lower(input.prompt), "ignore previous instructions")
}

decision := "block" if {
	contains(lower(input.prompt), "disregard the rules")
}

# Oversized prompts are rejected here as well as at the transport bound.
decision := "block" if {
	input.prompt_chars > 8000
}
`
