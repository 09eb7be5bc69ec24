package llm

import (
	"encoding/json"
	"fmt"
)

type SchemaType string

const (
	TypeString  SchemaType = "string"
	TypeInteger SchemaType = "integer"
	TypeNumber  SchemaType = "number"
	TypeBoolean SchemaType = "boolean"
	TypeObject  SchemaType = "object"
	TypeArray   SchemaType = "array"
)

// Schema is the subset of JSON schema the providers agree on.
type Schema struct {
	Type        SchemaType         `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
}

// ObjectOfStrings declares an object whose listed fields are all required strings.
func ObjectOfStrings(fields ...string) *Schema {
	props := make(map[string]*Schema, len(fields))
	for _, f := range fields {
		props[f] = &Schema{Type: TypeString}
	}
	return &Schema{
		Type:       TypeObject,
		Properties: props,
		Required:   append([]string(nil), fields...),
	}
}

func ArrayOf(items *Schema) *Schema {
	return &Schema{Type: TypeArray, Items: items}
}

// schemaInstruction renders s as a prompt suffix for providers without
// native structured output.
func schemaInstruction(s *Schema) string {
	raw, err := json.Marshal(s)
	if err != nil {
		return "Output as JSON only, no other text."
	}
	return fmt.Sprintf("Output as JSON only, no other text. The JSON must validate against this schema:\n%s", raw)
}
