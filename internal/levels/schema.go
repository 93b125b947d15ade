package levels

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema/levels.schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("levels.schema.json", schemaJSON)
	})
	return schema, schemaErr
}

// SchemaJSON returns the JSON schema for level pack files.
func SchemaJSON() string {
	return schemaJSON
}

// ValidateSchema checks a YAML level pack against the pack schema.
func ValidateSchema(data []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("levels: cannot compile schema: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("levels: cannot parse yaml: %w", err)
	}

	// The validator expects JSON-shaped values.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("levels: cannot convert yaml: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("levels: cannot convert yaml: %w", err)
	}

	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLevel, err)
	}
	return nil
}
