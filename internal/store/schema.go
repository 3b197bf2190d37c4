// internal/store/schema.go
package store

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// frameworkSchema is the JSON schema every uploaded definition must satisfy
// before it is written to disk.
const frameworkSchema = `{
	"type": "object",
	"required": ["id", "name", "template"],
	"properties": {
		"id":          {"type": "string", "minLength": 1},
		"name":        {"type": "string", "minLength": 1},
		"description": {"type": "string"},
		"template":    {"type": "string", "minLength": 1},
		"fields": {
			"type": "object",
			"additionalProperties": {"type": "string"}
		}
	},
	"additionalProperties": false
}`

var schemaLoader = gojsonschema.NewStringLoader(frameworkSchema)

// ValidateDefinition checks raw framework JSON against the schema and
// returns a joined description of every violation.
func ValidateDefinition(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("framework definition is not valid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("framework definition invalid: %s", strings.Join(msgs, "; "))
}
