// Package scenario implements the synthesis pipeline: a deterministic
// skeleton is compiled into a prompt, the generator's response is parsed and
// merged back under structural immutability rules, derived envelope state is
// reconciled, and the result is validated before it may leave the service.
package scenario

import (
	"fmt"

	"github.com/google/uuid"

	"scenariod/internal/domain"
)

// Designed skeleton shape. The validator's recommended ranges (see
// validate.go) bracket these counts.
const (
	SchemaVersion  = 2
	DurationHours  = 72
	EnvelopeCount  = 3
	FleetCount     = 3
	AgentsPerFleet = 3
	EventCount     = 42
)

// BuildSkeleton returns a fresh scenario with fixed topology: fixed IDs,
// hour offsets and counts, with every free-text field holding an ALL-CAPS
// placeholder token unique to its semantic role. Nothing downstream may add,
// remove or reorder its arrays.
func BuildSkeleton() *domain.Scenario {
	s := &domain.Scenario{
		SchemaVersion: SchemaVersion,
		ID:            "scn_" + uuid.New().String()[:8],
		Title:         "SCENARIO_TITLE",
		DurationHours: DurationHours,
		Envelopes:     skeletonEnvelopes(),
		Fleets:        skeletonFleets(),
		Events:        skeletonEvents(),
	}
	// The skeleton must satisfy its own derived-state invariant: envelope
	// version/assumptions/constraints mirror the latest revision touching
	// the envelope.
	Reconcile(s)
	return s
}

func envelopeID(e int) string { return fmt.Sprintf("ENV-%03d", e) }
func agentID(a int) string    { return fmt.Sprintf("agent-%03d", a) }

func skeletonEnvelopes() []domain.Envelope {
	envelopes := make([]domain.Envelope, 0, EnvelopeCount)
	for e := 1; e <= EnvelopeCount; e++ {
		envelopes = append(envelopes, domain.Envelope{
			EnvelopeID:  envelopeID(e),
			Name:        fmt.Sprintf("ENVELOPE_NAME_%d", e),
			Domain:      fmt.Sprintf("ENVELOPE_DOMAIN_%d", e),
			OwnerRole:   fmt.Sprintf("STEWARD_ROLE_%d", e),
			CreatedHour: 0,
			EndHour:     DurationHours,
			// Derived fields are filled by Reconcile from the
			// envelope's revision event.
			EnvelopeVersion: 1,
			Assumptions:     []string{},
			Constraints:     []string{},
		})
	}
	return envelopes
}

func skeletonFleets() []domain.Fleet {
	fleets := make([]domain.Fleet, 0, FleetCount)
	for f := 1; f <= FleetCount; f++ {
		agents := make([]domain.Agent, 0, AgentsPerFleet)
		for k := 1; k <= AgentsPerFleet; k++ {
			n := (f-1)*AgentsPerFleet + k
			agents = append(agents, domain.Agent{
				AgentID:     agentID(n),
				Name:        fmt.Sprintf("AGENT_NAME_%d", n),
				Role:        fmt.Sprintf("AGENT_ROLE_%d", n),
				EnvelopeIDs: []string{envelopeID(f)},
			})
		}
		fleets = append(fleets, domain.Fleet{
			// Must stay textually identical to the matching
			// envelope's ownerRole once filled.
			StewardRole: fmt.Sprintf("STEWARD_ROLE_%d", f),
			Agents:      agents,
		})
	}
	return fleets
}

// revisionAssumptions and revisionConstraints are the replacement lists each
// cycle's revision carries. The reconciler copies these into the envelope.
func revisionAssumptions(e int) []string {
	return []string{
		fmt.Sprintf("NEXT_ASSUMPTION_%d_1", e),
		fmt.Sprintf("NEXT_ASSUMPTION_%d_2", e),
	}
}

func revisionConstraints(e int) []string {
	return []string{
		fmt.Sprintf("NEXT_CONSTRAINT_%d_1", e),
		fmt.Sprintf("NEXT_CONSTRAINT_%d_2", e),
	}
}

// skeletonEvents builds the fixed 42-event timeline, chronologically
// pre-sorted: 6 historical baseline embeddings at negative hours, 3 envelope
// openings, 6 signal/retrieval pairs, 3 escalation cycles (boundary ->
// embedding -> decision -> embedding -> revision -> embedding) and 3
// staggered envelope closings.
func skeletonEvents() domain.EventList {
	events := make(domain.EventList, 0, EventCount)

	// Historical baseline memory, exempt from envelope windows.
	baselineVectors := [][]float64{
		{0.12, 0.34}, {0.22, 0.41}, {0.35, 0.27},
		{0.48, 0.55}, {0.61, 0.38}, {0.74, 0.49},
	}
	for i := 1; i <= 6; i++ {
		id := fmt.Sprintf("emb:hist-%d", i)
		events = append(events, &domain.EmbeddingEvent{
			EventBase: domain.EventBase{
				EventID: id,
				Hour:    float64(-56 + 8*i), // -48 .. -8
				Type:    domain.EventTypeEmbedding,
			},
			EmbeddingID:    id,
			EmbeddingType:  "baseline",
			SemanticVector: baselineVectors[i-1],
		})
	}

	// Envelope openings at hour zero.
	for e := 1; e <= EnvelopeCount; e++ {
		events = append(events, &domain.LifecycleEvent{
			EventBase: domain.EventBase{
				EventID:    fmt.Sprintf("promote:%d", e),
				Hour:       0,
				Type:       domain.EventTypeEnvelopePromoted,
				EnvelopeID: envelopeID(e),
			},
			ActorRole: domain.ActorRoleSteward,
			ActorName: fmt.Sprintf("STEWARD_NAME_%d", e),
		})
	}

	// First observation wave plus one escalation cycle per envelope.
	cycles := []struct {
		envelope  int
		agent     int
		signalSev string
		kind      domain.BoundaryKind
		status    domain.DecisionStatus
		baseHour  float64
		retrieved []string
		scores    []float64
	}{
		{1, 1, "warning", domain.BoundaryKindEscalated, domain.DecisionAllowed, 4,
			[]string{"emb:hist-1", "emb:hist-2"}, []float64{0.82, 0.64}},
		{2, 4, "warning", domain.BoundaryKindEscalated, domain.DecisionDeferred, 12,
			[]string{"emb:hist-3"}, []float64{0.71}},
		{3, 7, "critical", domain.BoundaryKindOverridden, domain.DecisionAllowed, 20,
			[]string{"emb:hist-5", "emb:boundary-1"}, []float64{0.77, 0.58}},
	}
	cycleVectors := [][][]float64{
		{{0.31, 0.62}, {0.44, 0.58}, {0.52, 0.66}},
		{{0.39, 0.71}, {0.47, 0.63}, {0.55, 0.69}},
		{{0.58, 0.44}, {0.63, 0.52}, {0.69, 0.57}},
	}
	for i, c := range cycles {
		n := i + 1
		env := envelopeID(c.envelope)
		boundary := fmt.Sprintf("boundary:%d", n)

		events = append(events,
			&domain.SignalEvent{
				EventBase: domain.EventBase{
					EventID:    fmt.Sprintf("signal:%d", n),
					Hour:       c.baseHour,
					Type:       domain.EventTypeSignal,
					EnvelopeID: env,
				},
				SignalKey: fmt.Sprintf("SIGNAL_KEY_%d", n),
				Severity:  c.signalSev,
				Source:    fmt.Sprintf("SIGNAL_SOURCE_%d", n),
			},
			&domain.RetrievalEvent{
				EventBase: domain.EventBase{
					EventID:    fmt.Sprintf("retrieval:%d", n),
					Hour:       c.baseHour + 1,
					Type:       domain.EventTypeRetrieval,
					EnvelopeID: env,
				},
				AgentID:             agentID(c.agent),
				QueryText:           fmt.Sprintf("QUERY_TEXT_%d", n),
				RetrievedEmbeddings: c.retrieved,
				RelevanceScores:     c.scores,
			},
			&domain.BoundaryEvent{
				EventBase: domain.EventBase{
					EventID:    boundary,
					Hour:       c.baseHour + 2,
					Type:       domain.EventTypeBoundaryInteraction,
					EnvelopeID: env,
				},
				AgentID:        agentID(c.agent),
				ActorRole:      domain.ActorRoleAgent,
				BoundaryKind:   c.kind,
				BoundaryReason: fmt.Sprintf("BOUNDARY_REASON_%d", n),
			},
			cycleEmbedding(fmt.Sprintf("emb:boundary-%d", n), c.baseHour+2.5, env,
				string(domain.EventTypeBoundaryInteraction), boundary, cycleVectors[i][0]),
			&domain.DecisionEvent{
				EventBase: domain.EventBase{
					EventID:    fmt.Sprintf("decision:%d", n),
					Hour:       c.baseHour + 3,
					Type:       domain.EventTypeDecision,
					EnvelopeID: env,
				},
				ActorRole:       domain.ActorRoleSteward,
				ActorName:       fmt.Sprintf("STEWARD_NAME_%d", c.envelope),
				Status:          c.status,
				ResolvesEventID: boundary,
			},
			cycleEmbedding(fmt.Sprintf("emb:decision-%d", n), c.baseHour+3.5, env,
				string(domain.EventTypeDecision), fmt.Sprintf("decision:%d", n), cycleVectors[i][1]),
			&domain.RevisionEvent{
				EventBase: domain.EventBase{
					EventID:    fmt.Sprintf("revision:%d", n),
					Hour:       c.baseHour + 4,
					Type:       domain.EventTypeRevision,
					EnvelopeID: env,
				},
				EnvelopeVersion: 2,
				RevisionID:      fmt.Sprintf("rev-%03d-2", c.envelope),
				ResolvesEventID: boundary,
				NextAssumptions: revisionAssumptions(c.envelope),
				NextConstraints: revisionConstraints(c.envelope),
			},
			cycleEmbedding(fmt.Sprintf("emb:revision-%d", n), c.baseHour+4.5, env,
				string(domain.EventTypeRevision), fmt.Sprintf("revision:%d", n), cycleVectors[i][2]),
		)
	}

	// Second observation wave: the agents consult the cycle memory.
	tail := []struct {
		envelope  int
		agent     int
		hour      float64
		retrieved []string
		scores    []float64
	}{
		{1, 2, 30, []string{"emb:revision-1", "emb:hist-4"}, []float64{0.88, 0.41}},
		{2, 5, 36, []string{"emb:revision-2"}, []float64{0.79}},
		{3, 8, 42, []string{"emb:revision-3", "emb:boundary-3"}, []float64{0.84, 0.53}},
	}
	for i, tl := range tail {
		n := i + 4
		env := envelopeID(tl.envelope)
		events = append(events,
			&domain.SignalEvent{
				EventBase: domain.EventBase{
					EventID:    fmt.Sprintf("signal:%d", n),
					Hour:       tl.hour,
					Type:       domain.EventTypeSignal,
					EnvelopeID: env,
				},
				SignalKey: fmt.Sprintf("SIGNAL_KEY_%d", n),
				Severity:  "info",
				Source:    fmt.Sprintf("SIGNAL_SOURCE_%d", n),
			},
			&domain.RetrievalEvent{
				EventBase: domain.EventBase{
					EventID:    fmt.Sprintf("retrieval:%d", n),
					Hour:       tl.hour + 1,
					Type:       domain.EventTypeRetrieval,
					EnvelopeID: env,
				},
				AgentID:             agentID(tl.agent),
				QueryText:           fmt.Sprintf("QUERY_TEXT_%d", n),
				RetrievedEmbeddings: tl.retrieved,
				RelevanceScores:     tl.scores,
			},
		)
	}

	// Staggered envelope closings.
	closeHours := []float64{60, 66, 71}
	for e := 1; e <= EnvelopeCount; e++ {
		events = append(events, &domain.LifecycleEvent{
			EventBase: domain.EventBase{
				EventID:    fmt.Sprintf("deprecate:%d", e),
				Hour:       closeHours[e-1],
				Type:       domain.EventTypeEnvelopeDeprecated,
				EnvelopeID: envelopeID(e),
			},
			ActorRole: domain.ActorRoleSteward,
			ActorName: fmt.Sprintf("STEWARD_NAME_%d", e),
		})
	}

	return events
}

func cycleEmbedding(id string, hour float64, envelopeID, embeddingType, sourceEventID string, vector []float64) *domain.EmbeddingEvent {
	return &domain.EmbeddingEvent{
		EventBase: domain.EventBase{
			EventID:    id,
			Hour:       hour,
			Type:       domain.EventTypeEmbedding,
			EnvelopeID: envelopeID,
		},
		EmbeddingID:    id,
		EmbeddingType:  embeddingType,
		SourceEventID:  sourceEventID,
		SemanticVector: vector,
	}
}
