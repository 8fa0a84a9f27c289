package seed

import (
	"github.com/xeipuuv/gojsonschema"
)

const metadataSchemaJSON = `{
  "type": "object",
  "properties": {
    "complexity": {"type": "number", "minimum": 1, "maximum": 5},
    "bgg_rank": {"type": "integer", "minimum": 1},
    "mechanisms": {"type": "array", "items": {"type": "string"}},
    "categories": {"type": "array", "items": {"type": "string"}}
  }
}`

var metadataSchema = mustSchema(metadataSchemaJSON)

func mustSchema(source string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		panic(err)
	}
	return schema
}

// CheckMetadata returns the schema findings for the recognised metadata keys.
// Metadata is opaque to the API, so these are advisory.
func CheckMetadata(meta map[string]any) []string {
	if meta == nil {
		return nil
	}
	result, err := metadataSchema.Validate(gojsonschema.NewGoLoader(meta))
	if err != nil {
		return []string{"metadata: " + err.Error()}
	}
	if result.Valid() {
		return nil
	}
	warnings := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		warnings = append(warnings, desc.String())
	}
	return warnings
}
