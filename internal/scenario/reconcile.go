package scenario

import (
	"sort"

	"scenariod/internal/domain"
)

// Reconcile recomputes each envelope's derived state from the revision log:
// version, assumptions and constraints are overwritten with the values from
// the chronologically latest revision event referencing the envelope. Runs
// unconditionally so the envelope object can never drift from its own
// revision events, whatever the generator produced.
func Reconcile(s *domain.Scenario) {
	revisions := make(map[string][]*domain.RevisionEvent)
	for _, ev := range s.Events {
		rev, ok := ev.(*domain.RevisionEvent)
		if !ok || rev.EnvelopeID == "" {
			continue
		}
		revisions[rev.EnvelopeID] = append(revisions[rev.EnvelopeID], rev)
	}

	for i := range s.Envelopes {
		env := &s.Envelopes[i]
		revs := revisions[env.EnvelopeID]
		if len(revs) == 0 {
			continue
		}
		sort.SliceStable(revs, func(a, b int) bool { return revs[a].Hour < revs[b].Hour })
		latest := revs[len(revs)-1]

		env.EnvelopeVersion = latest.EnvelopeVersion
		env.Assumptions = append([]string(nil), latest.NextAssumptions...)
		env.Constraints = append([]string(nil), latest.NextConstraints...)
	}
}
