package domain

import (
	"encoding/json"
	"fmt"
)

// EventType discriminates the event union on the wire.
type EventType string

const (
	EventTypeEnvelopePromoted    EventType = "envelope_promoted"
	EventTypeEnvelopeDeprecated  EventType = "envelope_deprecated"
	EventTypeSignal              EventType = "signal"
	EventTypeDecision            EventType = "decision"
	EventTypeBoundaryInteraction EventType = "boundary_interaction"
	EventTypeRevision            EventType = "revision"
	EventTypeEmbedding           EventType = "embedding"
	EventTypeRetrieval           EventType = "retrieval"
)

// BoundaryKind classifies a boundary interaction.
type BoundaryKind string

const (
	BoundaryKindEscalated  BoundaryKind = "escalated"
	BoundaryKindOverridden BoundaryKind = "overridden"
)

// ValidBoundaryKind reports whether k is one of the allowed kinds.
func ValidBoundaryKind(k BoundaryKind) bool {
	return k == BoundaryKindEscalated || k == BoundaryKindOverridden
}

// DecisionStatus is the outcome of a steward or agent decision.
type DecisionStatus string

const (
	DecisionAllowed  DecisionStatus = "allowed"
	DecisionDenied   DecisionStatus = "denied"
	DecisionDeferred DecisionStatus = "deferred"
)

// Actor roles attached to lifecycle and decision events.
const (
	ActorRoleSteward = "steward"
	ActorRoleAgent   = "agent"
)

// EventBase carries the fields common to every event variant. Events with a
// negative hour are pre-existing memory and exempt from envelope windows.
type EventBase struct {
	EventID    string    `json:"eventId"`
	Hour       float64   `json:"hour"`
	Type       EventType `json:"type"`
	EnvelopeID string    `json:"envelopeId,omitempty"`
}

// Base returns the shared event fields.
func (b *EventBase) Base() *EventBase { return b }

// Event is the tagged union over all event kinds. Each variant carries only
// the fields that are legal for its kind; the validator and merge layers
// dispatch on the concrete type.
type Event interface {
	Base() *EventBase
}

// LifecycleEvent marks envelope promotion or deprecation.
type LifecycleEvent struct {
	EventBase
	ActorRole string `json:"actorRole"`
	ActorName string `json:"actorName"`
}

// SignalEvent is a telemetry observation inside an envelope.
type SignalEvent struct {
	EventBase
	SignalKey string `json:"signalKey"`
	Severity  string `json:"severity"`
	Source    string `json:"source"`
}

// DecisionEvent records an allow/deny/defer call, optionally resolving a
// boundary interaction.
type DecisionEvent struct {
	EventBase
	AgentID         string         `json:"agentId,omitempty"`
	ActorRole       string         `json:"actorRole,omitempty"`
	ActorName       string         `json:"actorName,omitempty"`
	Status          DecisionStatus `json:"status"`
	ResolvesEventID string         `json:"resolvesEventId,omitempty"`
}

// BoundaryEvent records an agent action reaching or exceeding its envelope's
// authority. It must be resolved by at least one decision and exactly one
// revision.
type BoundaryEvent struct {
	EventBase
	AgentID        string       `json:"agentId,omitempty"`
	ActorRole      string       `json:"actorRole,omitempty"`
	BoundaryKind   BoundaryKind `json:"boundary_kind"`
	BoundaryReason string       `json:"boundary_reason"`
}

// RevisionEvent is an authoritative update to an envelope's assumptions and
// constraints. NextAssumptions/NextConstraints are full replacement lists.
type RevisionEvent struct {
	EventBase
	EnvelopeVersion int      `json:"envelope_version"`
	RevisionID      string   `json:"revision_id"`
	ResolvesEventID string   `json:"resolvesEventId"`
	NextAssumptions []string `json:"nextAssumptions"`
	NextConstraints []string `json:"nextConstraints"`
}

// EmbeddingEvent is a memory record with a 2D semantic vector, each component
// in [0,1].
type EmbeddingEvent struct {
	EventBase
	EmbeddingID    string    `json:"embeddingId"`
	EmbeddingType  string    `json:"embeddingType"`
	SourceEventID  string    `json:"sourceEventId,omitempty"`
	SemanticVector []float64 `json:"semanticVector"`
}

// RetrievalEvent is an agent query over prior embeddings. Referenced
// embeddings must be strictly earlier than the retrieval's own hour.
type RetrievalEvent struct {
	EventBase
	AgentID             string    `json:"agentId,omitempty"`
	QueryText           string    `json:"queryText"`
	RetrievedEmbeddings []string  `json:"retrievedEmbeddings"`
	RelevanceScores     []float64 `json:"relevanceScores"`
}

// AgentAttribution returns the agentId carried by an event and whether the
// event claims an agent actor at all (explicit agentId or actorRole "agent").
func AgentAttribution(ev Event) (agentID string, attributed bool) {
	switch e := ev.(type) {
	case *DecisionEvent:
		return e.AgentID, e.AgentID != "" || e.ActorRole == ActorRoleAgent
	case *BoundaryEvent:
		return e.AgentID, e.AgentID != "" || e.ActorRole == ActorRoleAgent
	case *RetrievalEvent:
		return e.AgentID, e.AgentID != ""
	default:
		return "", false
	}
}

// EventList is the ordered event timeline. It implements JSON decoding for
// the flat wire format, dispatching on the type discriminator.
type EventList []Event

func newEvent(t EventType) (Event, error) {
	switch t {
	case EventTypeEnvelopePromoted, EventTypeEnvelopeDeprecated:
		return &LifecycleEvent{}, nil
	case EventTypeSignal:
		return &SignalEvent{}, nil
	case EventTypeDecision:
		return &DecisionEvent{}, nil
	case EventTypeBoundaryInteraction:
		return &BoundaryEvent{}, nil
	case EventTypeRevision:
		return &RevisionEvent{}, nil
	case EventTypeEmbedding:
		return &EmbeddingEvent{}, nil
	case EventTypeRetrieval:
		return &RetrievalEvent{}, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", t)
	}
}

// UnmarshalJSON decodes a heterogeneous event array.
func (l *EventList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	events := make(EventList, 0, len(raws))
	for i, raw := range raws {
		var head struct {
			Type EventType `json:"type"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		ev, err := newEvent(head.Type)
		if err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		if err := json.Unmarshal(raw, ev); err != nil {
			return fmt.Errorf("event %d (%s): %w", i, head.Type, err)
		}
		events = append(events, ev)
	}
	*l = events
	return nil
}
