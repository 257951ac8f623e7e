package schema

import (
	"github.com/invopop/jsonschema"
)

// JSONSchema describes a dataset with this schema as a JSON Schema document:
// an array of objects whose properties are the schema's fields. Every field
// is nullable since records may omit it.
func JSONSchema(s Schema, title string) *jsonschema.Schema {
	props := jsonschema.NewProperties()
	for _, f := range s.Fields {
		prop := &jsonschema.Schema{
			AnyOf: []*jsonschema.Schema{
				typeSchema(f),
				{Type: "null"},
			},
		}
		for _, ex := range f.Examples {
			prop.Examples = append(prop.Examples, ex)
		}
		props.Set(f.Name, prop)
	}

	return &jsonschema.Schema{
		Version: jsonschema.Version,
		Title:   title,
		Type:    "array",
		Items: &jsonschema.Schema{
			Type:                 "object",
			Properties:           props,
			AdditionalProperties: jsonschema.FalseSchema,
		},
	}
}

func typeSchema(f Field) *jsonschema.Schema {
	if f.Type == FieldTypeArray {
		return &jsonschema.Schema{
			Type:  "array",
			Items: &jsonschema.Schema{Type: jsonType(f.Elem)},
		}
	}
	return &jsonschema.Schema{Type: jsonType(f.Type)}
}

func jsonType(t FieldType) string {
	switch t {
	case FieldTypeInteger:
		return "integer"
	case FieldTypeFloat:
		return "number"
	case FieldTypeBoolean:
		return "boolean"
	case FieldTypeArray:
		return "array"
	default:
		return "string"
	}
}
