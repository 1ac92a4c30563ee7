package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"scenariod/internal/domain"
	"scenariod/internal/scenario"
)

// ErrGenerationTimeout reports that a generation ran past the configured
// wall-clock budget and was cancelled.
var ErrGenerationTimeout = errors.New("generation timed out")

// PromptError rejects a brief before any model call is made.
type PromptError struct {
	Reason string
	Hint   string
}

func (e *PromptError) Error() string { return e.Reason }

// GenerateScenario runs the full pipeline for one brief: admission checks,
// the single-flight queue, the generator under a timeout, the schema
// cross-check, and a usage row for the attempt.
func (s *Service) GenerateScenario(ctx context.Context, prompt string) (*scenario.Result, error) {
	prompt = strings.TrimSpace(prompt)
	if len(prompt) < s.config.PromptMinChars {
		return nil, &PromptError{
			Reason: fmt.Sprintf("brief too short: %d chars, minimum %d", len(prompt), s.config.PromptMinChars),
			Hint:   "describe the scenario theme in at least a full sentence",
		}
	}
	if len(prompt) > s.config.PromptMaxChars {
		return nil, &PromptError{
			Reason: fmt.Sprintf("brief too long: %d chars, maximum %d", len(prompt), s.config.PromptMaxChars),
			Hint:   "trim the brief to its essential theme",
		}
	}

	decision, err := s.policyEngine.Evaluate(ctx, map[string]interface{}{
		"prompt":       prompt,
		"prompt_chars": len(prompt),
	})
	if err != nil {
		return nil, fmt.Errorf("policy evaluation: %w", err)
	}
	if decision != "allow" {
		return nil, &PromptError{
			Reason: "brief rejected by admission policy",
			Hint:   "rephrase the brief without instruction-override phrasing",
		}
	}

	genID := "gen_" + uuid.NewString()[:8]
	start := time.Now()

	var result *scenario.Result
	err = s.queue.Do(ctx, genID, func(jobCtx context.Context) error {
		runCtx, cancel := context.WithTimeout(jobCtx, s.config.GenerationTimeout)
		defer cancel()
		res, genErr := s.generator.Generate(runCtx, prompt)
		if genErr != nil {
			return genErr
		}
		result = res
		return nil
	})

	rec := &domain.GenerationRecord{
		GenerationID: genID,
		Model:        s.config.LLMModel,
		PromptChars:  len(prompt),
		DurationMs:   time.Since(start).Milliseconds(),
		Status:       "ok",
		CreatedAt:    time.Now().Unix(),
	}

	if err != nil {
		rec.Status = "error"
		if errors.Is(err, context.DeadlineExceeded) {
			err = ErrGenerationTimeout
			rec.Status = "timeout"
		}
		s.record(ctx, rec)
		return nil, err
	}

	if schemaErr := s.schemaLoader.Check(result.Scenario); schemaErr != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("schema cross-check: %v", schemaErr))
	}

	rec.InputTokens = result.Meta.TokensIn
	rec.OutputTokens = result.Meta.TokensOut
	rec.CostUSD = result.Meta.CostUSD
	rec.WarningCount = len(result.Warnings)
	s.record(ctx, rec)

	return result, nil
}

// Usage returns the aggregate generation telemetry.
func (s *Service) Usage(ctx context.Context) (*domain.UsageSummary, error) {
	return s.store.UsageSummary(ctx)
}

func (s *Service) record(ctx context.Context, rec *domain.GenerationRecord) {
	if err := s.store.RecordGeneration(ctx, rec); err != nil {
		log.Printf("record generation %s: %v", rec.GenerationID, err)
	}
}
