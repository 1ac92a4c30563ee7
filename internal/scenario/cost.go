package scenario

import (
	"math"
	"time"
)

// Pricing is the fixed per-million-token price pair for the backing model.
type Pricing struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Metadata describes a completed generation: token spend, derived cost and
// wall-clock timing.
type Metadata struct {
	TokensIn    int       `json:"tokensIn"`
	TokensOut   int       `json:"tokensOut"`
	CostUSD     float64   `json:"costUsd"`
	DurationMs  int64     `json:"durationMs"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Cost derives the dollar cost of a generation from its token counters,
// rounded to 6 decimal places.
func Cost(tokensIn, tokensOut int, p Pricing) float64 {
	cost := float64(tokensIn)*p.InputPerMTok/1e6 + float64(tokensOut)*p.OutputPerMTok/1e6
	return math.Round(cost*1e6) / 1e6
}
