package task

// bundledSchema is the embedded snapshot schema JSON.
const bundledSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Yuko Tasks",
  "type": "object",
  "additionalProperties": false,
  "required": ["schema_version", "tasks"],
  "properties": {
    "schema_version": { "type": "integer", "const": 1 },
    "next_id": { "type": "integer", "minimum": 1 },
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["id", "text", "completed"],
        "properties": {
          "id": { "type": "string", "pattern": "^T[0-9]+$" },
          "text": { "type": "string" },
          "completed": { "type": "boolean" }
        }
      }
    }
  }
}`

// BundledSchema returns the embedded snapshot schema JSON content.
func BundledSchema() []byte {
	return []byte(bundledSchema)
}
