package scenario

import (
	"strings"
	"testing"

	"scenariod/internal/domain"
)

func TestBuildSkeletonTopology(t *testing.T) {
	s := BuildSkeleton()

	if !strings.HasPrefix(s.ID, "scn_") {
		t.Errorf("expected scn_ id prefix, got %q", s.ID)
	}
	if s.SchemaVersion != SchemaVersion {
		t.Errorf("schemaVersion = %d, want %d", s.SchemaVersion, SchemaVersion)
	}
	if s.DurationHours != DurationHours {
		t.Errorf("durationHours = %v, want %v", s.DurationHours, DurationHours)
	}
	if len(s.Envelopes) != EnvelopeCount {
		t.Errorf("envelope count = %d, want %d", len(s.Envelopes), EnvelopeCount)
	}
	if len(s.Fleets) != FleetCount {
		t.Errorf("fleet count = %d, want %d", len(s.Fleets), FleetCount)
	}
	for i, f := range s.Fleets {
		if len(f.Agents) != AgentsPerFleet {
			t.Errorf("fleet %d agent count = %d, want %d", i, len(f.Agents), AgentsPerFleet)
		}
	}
	if len(s.Events) != EventCount {
		t.Errorf("event count = %d, want %d", len(s.Events), EventCount)
	}
}

func TestBuildSkeletonUniqueEventIDs(t *testing.T) {
	s := BuildSkeleton()

	seen := make(map[string]bool, len(s.Events))
	for _, ev := range s.Events {
		id := ev.Base().EventID
		if id == "" {
			t.Error("event with empty eventId")
		}
		if seen[id] {
			t.Errorf("duplicate eventId %q", id)
		}
		seen[id] = true
	}
}

func TestBuildSkeletonFreeTextIsPlaceholders(t *testing.T) {
	s := BuildSkeleton()

	if !domain.IsPlaceholder(s.Title) {
		t.Errorf("title %q is not a placeholder", s.Title)
	}
	for _, env := range s.Envelopes {
		for field, v := range map[string]string{
			"name": env.Name, "domain": env.Domain, "ownerRole": env.OwnerRole,
		} {
			if !domain.IsPlaceholder(v) {
				t.Errorf("envelope %s %s %q is not a placeholder", env.EnvelopeID, field, v)
			}
		}
	}
	for i, f := range s.Fleets {
		if !domain.IsPlaceholder(f.StewardRole) {
			t.Errorf("fleet %d stewardRole %q is not a placeholder", i, f.StewardRole)
		}
		for _, a := range f.Agents {
			if !domain.IsPlaceholder(a.Name) || !domain.IsPlaceholder(a.Role) {
				t.Errorf("agent %s carries non-placeholder free text", a.AgentID)
			}
		}
	}
}

// The skeleton must be internally consistent: IDs, references, windows,
// derived state and causality all hold before any generation happens.
func TestBuildSkeletonValidatesClean(t *testing.T) {
	s := BuildSkeleton()

	report := Validate(s)
	if len(report.Errors) > 0 {
		t.Fatalf("skeleton has validation errors: %v", report.Errors)
	}
	if len(report.Warnings) > 0 {
		t.Fatalf("skeleton has validation warnings: %v", report.Warnings)
	}
}

func TestBuildSkeletonStewardRolesPairWithEnvelopes(t *testing.T) {
	s := BuildSkeleton()

	for i, f := range s.Fleets {
		if f.StewardRole != s.Envelopes[i].OwnerRole {
			t.Errorf("fleet %d stewardRole %q != envelope %s ownerRole %q",
				i, f.StewardRole, s.Envelopes[i].EnvelopeID, s.Envelopes[i].OwnerRole)
		}
		for _, a := range f.Agents {
			if len(a.EnvelopeIDs) != 1 || a.EnvelopeIDs[0] != s.Envelopes[i].EnvelopeID {
				t.Errorf("agent %s scope %v, want [%s]", a.AgentID, a.EnvelopeIDs, s.Envelopes[i].EnvelopeID)
			}
		}
	}
}

func TestBuildSkeletonEmbeddingIDsMatchEventIDs(t *testing.T) {
	s := BuildSkeleton()

	for _, ev := range s.Events {
		emb, ok := ev.(*domain.EmbeddingEvent)
		if !ok {
			continue
		}
		if emb.EmbeddingID != emb.EventID {
			t.Errorf("embedding %s has embeddingId %q", emb.EventID, emb.EmbeddingID)
		}
	}
}

func TestBuildSkeletonEnvelopeStateMirrorsRevisions(t *testing.T) {
	s := BuildSkeleton()

	for _, env := range s.Envelopes {
		if env.EnvelopeVersion != 2 {
			t.Errorf("envelope %s version = %d, want 2 after reconcile", env.EnvelopeID, env.EnvelopeVersion)
		}
		if len(env.Assumptions) == 0 || len(env.Constraints) == 0 {
			t.Errorf("envelope %s has empty derived lists", env.EnvelopeID)
		}
	}
}

func TestBuildSkeletonFreshIDs(t *testing.T) {
	a := BuildSkeleton()
	b := BuildSkeleton()
	if a.ID == b.ID {
		t.Fatalf("two skeletons share id %q", a.ID)
	}
}
