// Package schema cross-checks accepted scenarios against the JSON Schema
// shared with the UI layer and external tooling.
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Loader compiles the scenario schema once and memoizes it for the life of
// the process: staleness on schema change is accepted to avoid repeated file
// I/O. Tests construct a fresh Loader per case.
type Loader struct {
	path   string
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

// NewLoader creates a loader for the schema file at path. The file is not
// read until the first Check.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

func (l *Loader) compile() {
	f, err := os.Open(l.path)
	if err != nil {
		l.err = fmt.Errorf("open schema file: %w", err)
		return
	}
	defer f.Close()

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(l.path, f); err != nil {
		l.err = fmt.Errorf("add schema resource: %w", err)
		return
	}
	schema, err := compiler.Compile(l.path)
	if err != nil {
		l.err = fmt.Errorf("compile schema: %w", err)
		return
	}
	l.schema = schema
}

// Check validates doc against the memoized schema. doc may be any
// JSON-marshalable value.
func (l *Loader) Check(doc any) error {
	l.once.Do(l.compile)
	if l.err != nil {
		return l.err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	return l.schema.Validate(payload)
}
