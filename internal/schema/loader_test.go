package schema

import (
	"os"
	"path/filepath"
	"testing"

	"scenariod/internal/scenario"
)

const scenarioSchemaPath = "../../docs/scenario.schema.json"

func TestCheckAcceptsSkeleton(t *testing.T) {
	loader := NewLoader(scenarioSchemaPath)

	if err := loader.Check(scenario.BuildSkeleton()); err != nil {
		t.Fatalf("skeleton rejected by schema: %v", err)
	}
}

func TestCheckRejectsInvalidDocument(t *testing.T) {
	loader := NewLoader(scenarioSchemaPath)

	doc := map[string]any{
		"schemaVersion": 2,
		"id":            "scn_x",
		"title":         "", // minLength 1
		"durationHours": 72,
		"envelopes":     []any{},
		"fleets":        []any{},
		"events":        []any{},
	}
	if err := loader.Check(doc); err == nil {
		t.Fatal("expected schema violation")
	}
}

func TestCheckRejectsBadEventType(t *testing.T) {
	loader := NewLoader(scenarioSchemaPath)

	s := scenario.BuildSkeleton()
	doc := map[string]any{
		"schemaVersion": s.SchemaVersion,
		"id":            s.ID,
		"title":         "t",
		"durationHours": s.DurationHours,
		"envelopes":     s.Envelopes,
		"fleets":        s.Fleets,
		"events": []any{
			map[string]any{"eventId": "x", "hour": 0, "type": "teleport"},
		},
	}
	if err := loader.Check(doc); err == nil {
		t.Fatal("expected event type violation")
	}
}

func TestCheckMissingSchemaFile(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "absent.json"))
	if err := loader.Check(map[string]any{}); err == nil {
		t.Fatal("expected open error")
	}
}

// The compiled schema is memoized: once loaded, the file on disk no longer
// matters.
func TestCheckMemoizesCompiledSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.json")
	content := []byte(`{"type": "object", "required": ["id"]}`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(path)
	if err := loader.Check(map[string]any{"id": "a"}); err != nil {
		t.Fatalf("first check: %v", err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	if err := loader.Check(map[string]any{"id": "b"}); err != nil {
		t.Fatalf("check after file removal: %v", err)
	}
	if err := loader.Check(map[string]any{}); err == nil {
		t.Fatal("expected required-field violation from the memoized schema")
	}
}
