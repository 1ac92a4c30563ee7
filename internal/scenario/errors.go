package scenario

import (
	"fmt"
	"strings"
)

// maxReportedProblems bounds the thrown message; the full list is always
// computed and kept on the error value.
const maxReportedProblems = 8

// ShapeError reports a response whose top-level shape is unusable: merging
// indexes the collections by position and ID, so a missing or wrong-typed
// collection aborts before any merge is attempted.
type ShapeError struct {
	Missing []string
}

func (e *ShapeError) Error() string {
	return "generator response is missing required collections: " + strings.Join(e.Missing, ", ")
}

// TruncationError reports a response that was cut off before completion.
// Truncated JSON can coincidentally parse, so the finish reason is checked
// before any parse result is trusted.
type TruncationError struct {
	FinishReason string
	Length       int
}

func (e *TruncationError) Error() string {
	return fmt.Sprintf("generator output truncated (finish reason %q, %d chars): retry with a shorter prompt or larger output budget", e.FinishReason, e.Length)
}

// ParseError reports unparseable generator output with enough context to
// diagnose truncation, the dominant real-world failure mode.
type ParseError struct {
	Err    error
	Length int
	Tail   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("generator output is not valid JSON (%d chars, tail %q): %v", e.Length, e.Tail, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError aggregates hard invariant violations found after merge and
// reconciliation. The full problem list is retained; Error formats a bounded
// summary.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	shown := e.Problems
	rest := 0
	if len(shown) > maxReportedProblems {
		rest = len(shown) - maxReportedProblems
		shown = shown[:maxReportedProblems]
	}
	msg := fmt.Sprintf("scenario failed validation (%d problems): %s", len(e.Problems), strings.Join(shown, "; "))
	if rest > 0 {
		msg += fmt.Sprintf("; and %d more", rest)
	}
	return msg
}
