// Package domain defines the core domain models for scenario synthesis.
package domain

// Scenario is a complete decision-envelope scenario: a fixed roster of
// fleets and envelopes plus a chronologically sorted event timeline.
type Scenario struct {
	SchemaVersion int        `json:"schemaVersion"`
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	DurationHours float64    `json:"durationHours"`
	Envelopes     []Envelope `json:"envelopes"`
	Fleets        []Fleet    `json:"fleets"`
	Events        EventList  `json:"events"`
}

// Envelope is a time-bounded authority boundary owned by a steward role.
// EnvelopeVersion, Assumptions and Constraints are derived fields: they must
// equal the values carried by the chronologically latest revision event
// touching the envelope.
type Envelope struct {
	EnvelopeID      string   `json:"envelopeId"`
	Name            string   `json:"name"`
	Domain          string   `json:"domain"`
	OwnerRole       string   `json:"ownerRole"`
	CreatedHour     float64  `json:"createdHour"`
	EndHour         float64  `json:"endHour"`
	EnvelopeVersion int      `json:"envelope_version"`
	Assumptions     []string `json:"assumptions"`
	Constraints     []string `json:"constraints"`
}

// Fleet groups agents under a steward role. The steward role text must match
// the ownerRole of the envelopes the fleet operates in.
type Fleet struct {
	StewardRole string  `json:"stewardRole"`
	Agents      []Agent `json:"agents"`
}

// Agent identities are fixed by the skeleton and never invented by the
// generator. EnvelopeIDs bounds which envelopes the agent may act in.
type Agent struct {
	AgentID     string   `json:"agentId"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	EnvelopeIDs []string `json:"envelopeIds"`
}

// GenerationRecord is the usage telemetry persisted per generation attempt.
// Scenarios themselves are never persisted.
type GenerationRecord struct {
	GenerationID string  `json:"generation_id"`
	Model        string  `json:"model"`
	PromptChars  int     `json:"prompt_chars"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	CostUSD      float64 `json:"cost_usd"`
	DurationMs   int64   `json:"duration_ms"`
	WarningCount int     `json:"warning_count"`
	Status       string  `json:"status"`
	CreatedAt    int64   `json:"created_at"`
}

// UsageSummary aggregates generation telemetry for the read endpoint.
type UsageSummary struct {
	Generations  int64   `json:"generations"`
	Succeeded    int64   `json:"succeeded"`
	Failed       int64   `json:"failed"`
	InputTokens  int64   `json:"input_tokens"`
	OutputTokens int64   `json:"output_tokens"`
	CostUSD      float64 `json:"cost_usd"`
}
