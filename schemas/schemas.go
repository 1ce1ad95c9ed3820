// Package schemas holds the embedded JSON Schemas used to validate
// benchmark result documents before they are decoded.
package schemas

// ResultsSchemaJSON validates a hyperfine --export-json document. Only the
// fields the harness consumes are constrained; unknown fields are allowed so
// newer hyperfine versions keep working.
const ResultsSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["results"],
  "properties": {
    "results": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["command", "mean"],
        "properties": {
          "command": { "type": "string", "minLength": 1 },
          "mean": { "type": "number", "minimum": 0 },
          "stddev": { "type": ["number", "null"], "minimum": 0 },
          "median": { "type": "number", "minimum": 0 },
          "min": { "type": "number", "minimum": 0 },
          "max": { "type": "number", "minimum": 0 },
          "times": { "type": "array", "items": { "type": "number" } },
          "parameters": { "type": "object" }
        }
      }
    }
  }
}`
