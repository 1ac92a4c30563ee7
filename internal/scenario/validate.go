package scenario

import (
	"fmt"

	"scenariod/internal/domain"
)

// Recommended design ranges; counts outside them are advisory only.
const (
	minEnvelopes = 2
	maxEnvelopes = 5
	minAgents    = 6
	maxAgents    = 12
	minEvents    = 30
	maxEvents    = 60
)

// Report partitions validator findings by severity. Errors abort generation;
// warnings are returned to the caller alongside an accepted scenario.
type Report struct {
	Errors   []string
	Warnings []string
}

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate runs every invariant check over the merged and reconciled
// scenario. All checks run to completion so the caller sees every problem at
// once; nothing short-circuits.
func Validate(s *domain.Scenario) *Report {
	r := &Report{}

	checkTopLevel(s, r)
	envelopes := checkEnvelopes(s, r)
	agents := indexAgents(s)
	checkEventReferences(s, envelopes, agents, r)
	checkDerivedState(s, r)
	checkBoundaryResolution(s, r)
	checkRevisionFields(s, r)
	checkCounts(s, r)
	checkEmbeddingCoverage(s, r)
	checkChronology(s, r)
	checkRetrievals(s, r)
	checkVectors(s, r)

	return r
}

func checkTopLevel(s *domain.Scenario, r *Report) {
	if s.ID == "" {
		r.errorf("scenario is missing id")
	}
	if s.Title == "" {
		r.errorf("scenario is missing title")
	}
	if s.DurationHours <= 0 {
		r.errorf("scenario durationHours must be positive, got %v", s.DurationHours)
	}
	if len(s.Envelopes) == 0 {
		r.errorf("scenario has no envelopes")
	}
	if len(s.Events) == 0 {
		r.errorf("scenario has no events")
	}
}

// checkEnvelopes verifies ID uniqueness and time windows, returning the
// envelope index for the reference checks.
func checkEnvelopes(s *domain.Scenario, r *Report) map[string]*domain.Envelope {
	envelopes := make(map[string]*domain.Envelope, len(s.Envelopes))
	for i := range s.Envelopes {
		env := &s.Envelopes[i]
		if _, dup := envelopes[env.EnvelopeID]; dup {
			r.errorf("duplicate envelopeId %q", env.EnvelopeID)
			continue
		}
		envelopes[env.EnvelopeID] = env

		if env.CreatedHour >= env.EndHour {
			r.errorf("envelope %s has invalid window [%v, %v)", env.EnvelopeID, env.CreatedHour, env.EndHour)
		}
		if env.CreatedHour < 0 || env.EndHour > s.DurationHours {
			r.errorf("envelope %s window [%v, %v] exceeds scenario duration %v",
				env.EnvelopeID, env.CreatedHour, env.EndHour, s.DurationHours)
		}
	}
	return envelopes
}

func indexAgents(s *domain.Scenario) map[string]*domain.Agent {
	agents := make(map[string]*domain.Agent)
	for i := range s.Fleets {
		for j := range s.Fleets[i].Agents {
			a := &s.Fleets[i].Agents[j]
			agents[a.AgentID] = a
		}
	}
	return agents
}

// checkEventReferences verifies envelope windows and agent scoping for every
// event. Events at negative hours are pre-existing memory and exempt from
// window checks.
func checkEventReferences(s *domain.Scenario, envelopes map[string]*domain.Envelope, agents map[string]*domain.Agent, r *Report) {
	for _, ev := range s.Events {
		base := ev.Base()

		if base.EnvelopeID != "" && base.Hour >= 0 {
			env, ok := envelopes[base.EnvelopeID]
			if !ok {
				r.errorf("event %s references unknown envelope %q", base.EventID, base.EnvelopeID)
			} else if base.Hour < env.CreatedHour || base.Hour > env.EndHour {
				r.errorf("event %s at hour %v is outside envelope %s window [%v, %v]",
					base.EventID, base.Hour, env.EnvelopeID, env.CreatedHour, env.EndHour)
			}
		}

		agentID, attributed := domain.AgentAttribution(ev)
		if !attributed {
			continue
		}
		if agentID == "" {
			r.errorf("event %s is agent-attributed but has no agentId", base.EventID)
			continue
		}
		agent, ok := agents[agentID]
		if !ok {
			r.errorf("event %s references unknown agent %q", base.EventID, agentID)
			continue
		}
		if base.EnvelopeID != "" && !contains(agent.EnvelopeIDs, base.EnvelopeID) {
			r.errorf("event %s targets envelope %s outside agent %s scope %v",
				base.EventID, base.EnvelopeID, agentID, agent.EnvelopeIDs)
		}
	}
}

// checkDerivedState re-verifies §reconcile's invariant. Should be
// unreachable after Reconcile, but the validator may run on scenarios that
// did not pass through it.
func checkDerivedState(s *domain.Scenario, r *Report) {
	latest := make(map[string]*domain.RevisionEvent)
	for _, ev := range s.Events {
		rev, ok := ev.(*domain.RevisionEvent)
		if !ok || rev.EnvelopeID == "" {
			continue
		}
		cur, seen := latest[rev.EnvelopeID]
		if !seen || rev.Hour >= cur.Hour {
			latest[rev.EnvelopeID] = rev
		}
	}

	for i := range s.Envelopes {
		env := &s.Envelopes[i]
		rev, ok := latest[env.EnvelopeID]
		if !ok {
			continue
		}
		if env.EnvelopeVersion != rev.EnvelopeVersion {
			r.errorf("envelope %s version %d disagrees with latest revision %s (version %d)",
				env.EnvelopeID, env.EnvelopeVersion, rev.RevisionID, rev.EnvelopeVersion)
		}
		if !equalStrings(env.Assumptions, rev.NextAssumptions) {
			r.errorf("envelope %s assumptions disagree with latest revision %s", env.EnvelopeID, rev.RevisionID)
		}
		if !equalStrings(env.Constraints, rev.NextConstraints) {
			r.errorf("envelope %s constraints disagree with latest revision %s", env.EnvelopeID, rev.RevisionID)
		}
	}
}

// checkBoundaryResolution enforces the resolution protocol: every boundary
// interaction needs at least one resolving decision and exactly one
// resolving revision. Resolvers timestamped before their boundary are
// flagged as warnings.
func checkBoundaryResolution(s *domain.Scenario, r *Report) {
	decisions := make(map[string][]*domain.DecisionEvent)
	revisions := make(map[string][]*domain.RevisionEvent)
	for _, ev := range s.Events {
		switch e := ev.(type) {
		case *domain.DecisionEvent:
			if e.ResolvesEventID != "" {
				decisions[e.ResolvesEventID] = append(decisions[e.ResolvesEventID], e)
			}
		case *domain.RevisionEvent:
			if e.ResolvesEventID != "" {
				revisions[e.ResolvesEventID] = append(revisions[e.ResolvesEventID], e)
			}
		}
	}

	for _, ev := range s.Events {
		boundary, ok := ev.(*domain.BoundaryEvent)
		if !ok {
			continue
		}
		if !domain.ValidBoundaryKind(boundary.BoundaryKind) {
			r.errorf("boundary interaction %s has invalid boundary_kind %q", boundary.EventID, boundary.BoundaryKind)
		}

		resolved := decisions[boundary.EventID]
		if len(resolved) == 0 {
			r.errorf("boundary interaction %s has no resolving decision", boundary.EventID)
		}
		for _, d := range resolved {
			if d.Hour < boundary.Hour {
				r.warnf("decision %s resolves boundary %s but precedes it (hour %v < %v)",
					d.EventID, boundary.EventID, d.Hour, boundary.Hour)
			}
		}

		revs := revisions[boundary.EventID]
		switch {
		case len(revs) == 0:
			r.errorf("boundary interaction %s has no resolving revision", boundary.EventID)
		case len(revs) > 1:
			r.errorf("boundary interaction %s is resolved by %d revisions, want exactly 1", boundary.EventID, len(revs))
		}
		for _, rev := range revs {
			if rev.Hour < boundary.Hour {
				r.warnf("revision %s resolves boundary %s but precedes it (hour %v < %v)",
					rev.EventID, boundary.EventID, rev.Hour, boundary.Hour)
			}
		}
	}
}

func checkRevisionFields(s *domain.Scenario, r *Report) {
	for _, ev := range s.Events {
		rev, ok := ev.(*domain.RevisionEvent)
		if !ok {
			continue
		}
		if rev.EnvelopeVersion <= 0 {
			r.errorf("revision %s is missing envelope_version", rev.EventID)
		}
		if rev.RevisionID == "" {
			r.errorf("revision %s is missing revision_id", rev.EventID)
		}
		if rev.NextAssumptions == nil {
			r.errorf("revision %s is missing nextAssumptions", rev.EventID)
		}
		if rev.NextConstraints == nil {
			r.errorf("revision %s is missing nextConstraints", rev.EventID)
		}
	}
}

func checkCounts(s *domain.Scenario, r *Report) {
	if n := len(s.Envelopes); n < minEnvelopes || n > maxEnvelopes {
		r.warnf("envelope count %d outside recommended range [%d, %d]", n, minEnvelopes, maxEnvelopes)
	}
	agents := 0
	for _, f := range s.Fleets {
		agents += len(f.Agents)
	}
	if agents < minAgents || agents > maxAgents {
		r.warnf("agent count %d outside recommended range [%d, %d]", agents, minAgents, maxAgents)
	}
	if n := len(s.Events); n < minEvents || n > maxEvents {
		r.warnf("event count %d outside recommended range [%d, %d]", n, minEvents, maxEvents)
	}
}

// checkEmbeddingCoverage warns when a revision or boundary interaction has
// no embedding of matching type summarizing it.
func checkEmbeddingCoverage(s *domain.Scenario, r *Report) {
	embedded := make(map[string]string) // sourceEventId -> embeddingType
	for _, ev := range s.Events {
		if emb, ok := ev.(*domain.EmbeddingEvent); ok && emb.SourceEventID != "" {
			embedded[emb.SourceEventID] = emb.EmbeddingType
		}
	}

	for _, ev := range s.Events {
		base := ev.Base()
		switch ev.(type) {
		case *domain.RevisionEvent, *domain.BoundaryEvent:
			if embedded[base.EventID] != string(base.Type) {
				r.warnf("%s %s has no %s embedding", base.Type, base.EventID, base.Type)
			}
		}
	}
}

// checkChronology reports the first index at which the raw event sequence
// goes backwards in time. Reported once.
func checkChronology(s *domain.Scenario, r *Report) {
	for i := 1; i < len(s.Events); i++ {
		if s.Events[i].Base().Hour < s.Events[i-1].Base().Hour {
			r.warnf("events out of chronological order at index %d (%s at hour %v after hour %v)",
				i, s.Events[i].Base().EventID, s.Events[i].Base().Hour, s.Events[i-1].Base().Hour)
			return
		}
	}
}

// checkRetrievals enforces temporal causality: a retrieval may only
// reference embeddings strictly earlier than its own hour.
func checkRetrievals(s *domain.Scenario, r *Report) {
	embeddings := make(map[string]*domain.EmbeddingEvent)
	for _, ev := range s.Events {
		if emb, ok := ev.(*domain.EmbeddingEvent); ok {
			embeddings[emb.EmbeddingID] = emb
		}
	}

	for _, ev := range s.Events {
		ret, ok := ev.(*domain.RetrievalEvent)
		if !ok {
			continue
		}
		for _, id := range ret.RetrievedEmbeddings {
			emb, found := embeddings[id]
			if !found {
				r.warnf("retrieval %s references unknown embedding %q", ret.EventID, id)
				continue
			}
			if emb.Hour >= ret.Hour {
				r.warnf("retrieval %s at hour %v references embedding %s at hour %v (not strictly earlier)",
					ret.EventID, ret.Hour, id, emb.Hour)
			}
		}
	}
}

func checkVectors(s *domain.Scenario, r *Report) {
	for _, ev := range s.Events {
		emb, ok := ev.(*domain.EmbeddingEvent)
		if !ok {
			continue
		}
		if len(emb.SemanticVector) != 2 {
			r.warnf("embedding %s has %d-component semantic vector, want 2", emb.EventID, len(emb.SemanticVector))
			continue
		}
		for _, v := range emb.SemanticVector {
			if v < 0 || v > 1 {
				r.warnf("embedding %s has semantic vector component %v outside [0,1]", emb.EventID, v)
				break
			}
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
