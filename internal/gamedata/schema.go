package gamedata

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of the JSON and YAML configuration formats.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
	}

	schema := reflector.Reflect(&File{})
	if schema == nil {
		return nil, fmt.Errorf("failed to reflect configuration schema")
	}
	schema.Title = "Monster Arena Configuration"
	schema.Description = "Actions and monsters available to competitions."

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}

func enumSchema(names []string) *jsonschema.Schema {
	values := make([]interface{}, 0, len(names)-1)
	for _, n := range names[1:] {
		values = append(values, n)
	}
	return &jsonschema.Schema{Type: "string", Enum: values}
}

// JSONSchema lists the Element names the schema accepts.
func (Element) JSONSchema() *jsonschema.Schema { return enumSchema(elementNames) }

// JSONSchema lists the Stat names the schema accepts.
func (Stat) JSONSchema() *jsonschema.Schema { return enumSchema(statNames) }

// JSONSchema lists the Status names the schema accepts.
func (Status) JSONSchema() *jsonschema.Schema { return enumSchema(statusNames) }

// JSONSchema lists the Strength names the schema accepts.
func (Strength) JSONSchema() *jsonschema.Schema { return enumSchema(strengthNames) }

// JSONSchema lists the Guard names the schema accepts.
func (Guard) JSONSchema() *jsonschema.Schema { return enumSchema(guardNames) }

// JSONSchema lists the Subject names the schema accepts.
func (Subject) JSONSchema() *jsonschema.Schema { return enumSchema(subjectNames) }

// JSONSchema lists the EffectKind names the schema accepts.
func (EffectKind) JSONSchema() *jsonschema.Schema { return enumSchema(effectKindNames) }
