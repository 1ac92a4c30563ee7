package domain

import (
	"encoding/json"
	"testing"
)

func TestEventListUnmarshalDispatchesOnType(t *testing.T) {
	data := []byte(`[
		{"eventId": "promote:1", "hour": 0, "type": "envelope_promoted", "envelopeId": "ENV-001", "actorRole": "steward", "actorName": "Ops Lead"},
		{"eventId": "signal:1", "hour": 4, "type": "signal", "envelopeId": "ENV-001", "signalKey": "latency_p99", "severity": "warning", "source": "edge probe"},
		{"eventId": "boundary:1", "hour": 6, "type": "boundary_interaction", "envelopeId": "ENV-001", "agentId": "agent-001", "actorRole": "agent", "boundary_kind": "escalated", "boundary_reason": "budget exceeded"},
		{"eventId": "emb:1", "hour": 6.5, "type": "embedding", "embeddingId": "emb:1", "embeddingType": "boundary_interaction", "sourceEventId": "boundary:1", "semanticVector": [0.2, 0.7]}
	]`)

	var events EventList
	if err := json.Unmarshal(data, &events); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}

	if _, ok := events[0].(*LifecycleEvent); !ok {
		t.Errorf("event 0: expected *LifecycleEvent, got %T", events[0])
	}
	sig, ok := events[1].(*SignalEvent)
	if !ok {
		t.Fatalf("event 1: expected *SignalEvent, got %T", events[1])
	}
	if sig.SignalKey != "latency_p99" || sig.Hour != 4 {
		t.Errorf("signal fields not decoded: %+v", sig)
	}
	bnd, ok := events[2].(*BoundaryEvent)
	if !ok {
		t.Fatalf("event 2: expected *BoundaryEvent, got %T", events[2])
	}
	if bnd.BoundaryKind != BoundaryKindEscalated {
		t.Errorf("expected escalated, got %s", bnd.BoundaryKind)
	}
	emb, ok := events[3].(*EmbeddingEvent)
	if !ok {
		t.Fatalf("event 3: expected *EmbeddingEvent, got %T", events[3])
	}
	if emb.SourceEventID != "boundary:1" || len(emb.SemanticVector) != 2 {
		t.Errorf("embedding fields not decoded: %+v", emb)
	}
}

func TestEventListUnmarshalRejectsUnknownType(t *testing.T) {
	data := []byte(`[{"eventId": "x", "hour": 0, "type": "teleport"}]`)
	var events EventList
	if err := json.Unmarshal(data, &events); err == nil {
		t.Fatal("expected error for unknown event type")
	}
}

func TestEventListMarshalRoundTrip(t *testing.T) {
	events := EventList{
		&RevisionEvent{
			EventBase:       EventBase{EventID: "revision:1", Hour: 8, Type: EventTypeRevision, EnvelopeID: "ENV-001"},
			EnvelopeVersion: 2,
			RevisionID:      "rev-001-2",
			ResolvesEventID: "boundary:1",
			NextAssumptions: []string{"traffic stays regional"},
			NextConstraints: []string{"no cross-region failover"},
		},
	}

	data, err := json.Marshal(events)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded EventList
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	rev, ok := decoded[0].(*RevisionEvent)
	if !ok {
		t.Fatalf("expected *RevisionEvent, got %T", decoded[0])
	}
	if rev.RevisionID != "rev-001-2" || rev.EnvelopeVersion != 2 {
		t.Errorf("revision fields lost in round trip: %+v", rev)
	}
}

func TestAgentAttribution(t *testing.T) {
	cases := []struct {
		name       string
		ev         Event
		wantID     string
		attributed bool
	}{
		{"decision with agentId", &DecisionEvent{AgentID: "agent-001"}, "agent-001", true},
		{"decision claiming agent role without id", &DecisionEvent{ActorRole: ActorRoleAgent}, "", true},
		{"steward decision", &DecisionEvent{ActorRole: ActorRoleSteward}, "", false},
		{"boundary with agentId", &BoundaryEvent{AgentID: "agent-002", ActorRole: ActorRoleAgent}, "agent-002", true},
		{"retrieval with agentId", &RetrievalEvent{AgentID: "agent-003"}, "agent-003", true},
		{"retrieval without agentId", &RetrievalEvent{}, "", false},
		{"signal", &SignalEvent{}, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, attributed := AgentAttribution(tc.ev)
			if id != tc.wantID || attributed != tc.attributed {
				t.Fatalf("got (%q, %v), want (%q, %v)", id, attributed, tc.wantID, tc.attributed)
			}
		})
	}
}

func TestIsPlaceholder(t *testing.T) {
	placeholders := []string{"AGENT_NAME_1", "SCENARIO_TITLE", "NEXT_ASSUMPTION_2_1", "X"}
	for _, s := range placeholders {
		if !IsPlaceholder(s) {
			t.Errorf("IsPlaceholder(%q) = false, want true", s)
		}
	}

	filled := []string{"Risk Scorer", "agent-001", "SRE on call", "", "ENV-001", "latency_p99"}
	for _, s := range filled {
		if IsPlaceholder(s) {
			t.Errorf("IsPlaceholder(%q) = true, want false", s)
		}
	}
}
