package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema returns the JSON Schema of config.toml, for editors that
// validate TOML against a schema.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "toml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "Homegrid Configuration"
	schema.Description = "Schema for ~/.config/homegrid/config.toml."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	// Every key has a default.
	schema.Required = nil

	return json.MarshalIndent(schema, "", "  ")
}
