package scenario

import (
	"encoding/json"
	"fmt"
	"strings"

	"scenariod/internal/domain"
)

// Length ceilings the generator is instructed to respect for filled values.
const (
	maxTitleChars    = 120
	maxNameChars     = 60
	maxListItemChars = 160
	maxProseChars    = 240
)

// SystemPrompt frames the generator's role for the chat backend.
const SystemPrompt = "You are a scenario writer. You fill placeholder tokens in a fixed JSON document. " +
	"You never change the document's structure. You respond with JSON only, no commentary."

// CompilePrompt serializes the skeleton plus an explicit rule set into a
// single instruction payload. The rules restate the invariants the merge and
// validator re-verify: this is a best-effort instruction to an unreliable
// collaborator, never trusted.
func CompilePrompt(skeleton *domain.Scenario, userPrompt string) (string, error) {
	doc, err := json.MarshalIndent(skeleton, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode skeleton: %w", err)
	}

	var b strings.Builder
	b.WriteString("Fill in the placeholder tokens of the scenario document below.\n\n")

	b.WriteString("Scenario brief from the user:\n")
	b.WriteString(strings.TrimSpace(userPrompt))
	b.WriteString("\n\nRules:\n")
	for i, rule := range promptRules() {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rule)
	}

	b.WriteString("\nScenario document:\n")
	b.Write(doc)
	b.WriteString("\n")

	return b.String(), nil
}

func promptRules() []string {
	return []string{
		"Return the complete document as a single JSON object with the exact same keys, arrays, array lengths and nesting. Do not add, remove or reorder anything.",
		"Replace only strings written in ALL_CAPS_WITH_UNDERSCORES. Every other value (ids, hours, types, numbers, booleans) must be copied unchanged.",
		"Replacement values must be non-empty and must not be written in all capitals.",
		fmt.Sprintf("Keep the title under %d characters, names and roles under %d characters, assumption and constraint entries under %d characters, and reasons, queries and signal descriptions under %d characters.",
			maxTitleChars, maxNameChars, maxListItemChars, maxProseChars),
		"Each fleet's stewardRole must be textually identical to the ownerRole of the envelope that fleet's agents operate in.",
		"Each envelope's assumptions and constraints must repeat, word for word, the nextAssumptions and nextConstraints of the chronologically latest revision event referencing that envelope.",
		"Give agents, envelopes and signals names consistent with the user's brief.",
		"Respond with JSON only. No markdown fences, no explanation before or after.",
	}
}
