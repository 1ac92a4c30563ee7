package scenario

import (
	"encoding/json"
	"fmt"

	"scenariod/internal/domain"
)

// CheckShape rejects a parsed response outright unless it is an object
// carrying envelopes, fleets and events as arrays. Lengths are not
// constrained here: the merge walks the skeleton's length, not the
// response's.
func CheckShape(parsed map[string]any) error {
	var missing []string
	for _, key := range []string{"envelopes", "fleets", "events"} {
		if _, ok := parsed[key].([]any); !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &ShapeError{Missing: missing}
	}
	return nil
}

// MergeResponse merges generator output into the skeleton under strict
// structural immutability: the skeleton's shape is authoritative, only
// placeholder positions accept candidate values, and the three top-level
// collections are re-keyed by stable identifier so a reordered response
// cannot corrupt the result. Returns a new scenario; the skeleton is not
// mutated.
func MergeResponse(skeleton *domain.Scenario, candidate map[string]any) (*domain.Scenario, error) {
	if err := CheckShape(candidate); err != nil {
		return nil, err
	}

	skel, err := toGeneric(skeleton)
	if err != nil {
		return nil, fmt.Errorf("encode skeleton: %w", err)
	}

	merged := mergeScenario(skel, candidate)

	out, err := fromGeneric(merged)
	if err != nil {
		return nil, fmt.Errorf("decode merged scenario: %w", err)
	}
	return out, nil
}

func toGeneric(s *domain.Scenario) (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var generic map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	return generic, nil
}

func fromGeneric(m map[string]any) (*domain.Scenario, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var s domain.Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// mergeScenario applies the ID-keyed merges for the three order-sensitive
// collections and the generic merge for everything else.
func mergeScenario(skel, cand map[string]any) map[string]any {
	out := make(map[string]any, len(skel))
	for key, sv := range skel {
		switch key {
		case "envelopes":
			out[key] = mergeKeyedList(sv, cand[key], "envelopeId")
		case "events":
			out[key] = mergeKeyedList(sv, cand[key], "eventId")
		case "fleets":
			out[key] = mergeFleets(sv, cand[key])
		default:
			out[key] = mergeValue(sv, cand[key])
		}
	}
	return out
}

// mergeKeyedList matches each skeleton element to the candidate element
// sharing its identifier, falling back to an empty object when absent.
func mergeKeyedList(skel, cand any, idKey string) any {
	skelList, ok := skel.([]any)
	if !ok {
		return mergeValue(skel, cand)
	}
	candByID := indexByID(cand, idKey)

	out := make([]any, 0, len(skelList))
	for _, sv := range skelList {
		sm, ok := sv.(map[string]any)
		if !ok {
			out = append(out, sv)
			continue
		}
		id, _ := sm[idKey].(string)
		out = append(out, mergeValue(sm, candByID[id]))
	}
	return out
}

// mergeFleets merges fleets positionally, with agents re-keyed by agentId
// inside each fleet.
func mergeFleets(skel, cand any) any {
	skelList, ok := skel.([]any)
	if !ok {
		return mergeValue(skel, cand)
	}
	candList, _ := cand.([]any)

	out := make([]any, 0, len(skelList))
	for i, sv := range skelList {
		sm, ok := sv.(map[string]any)
		if !ok {
			out = append(out, sv)
			continue
		}
		var cm map[string]any
		if i < len(candList) {
			cm, _ = candList[i].(map[string]any)
		}

		fleet := make(map[string]any, len(sm))
		for key, fv := range sm {
			var cv any
			if cm != nil {
				cv = cm[key]
			}
			if key == "agents" {
				fleet[key] = mergeKeyedList(fv, cv, "agentId")
			} else {
				fleet[key] = mergeValue(fv, cv)
			}
		}
		out = append(out, fleet)
	}
	return out
}

func indexByID(list any, idKey string) map[string]map[string]any {
	byID := make(map[string]map[string]any)
	items, ok := list.([]any)
	if !ok {
		return byID
	}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if id, ok := m[idKey].(string); ok {
			byID[id] = m
		}
	}
	return byID
}

// mergeValue is the generic recursive merge of two same-shaped trees.
// Placeholder strings accept a non-empty candidate string; sequences walk the
// skeleton's length; mappings keep only skeleton keys; every other skeleton
// value is immutable.
func mergeValue(skel, cand any) any {
	switch sv := skel.(type) {
	case string:
		if domain.IsPlaceholder(sv) {
			if cs, ok := cand.(string); ok && cs != "" {
				return cs
			}
		}
		return sv

	case []any:
		candList, _ := cand.([]any)
		out := make([]any, 0, len(sv))
		for i, item := range sv {
			var candItem any
			if i < len(candList) {
				candItem = candList[i]
			}
			out = append(out, mergeValue(item, candItem))
		}
		return out

	case map[string]any:
		candMap, _ := cand.(map[string]any)
		out := make(map[string]any, len(sv))
		for key, item := range sv {
			out[key] = mergeValue(item, candMap[key])
		}
		return out

	default:
		// Numbers, booleans, nulls and non-placeholder strings are
		// structural and never change.
		return skel
	}
}
