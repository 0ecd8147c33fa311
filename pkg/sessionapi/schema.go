package sessionapi

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const messageDefinition = `{
	"type": "object",
	"required": ["role"],
	"properties": {
		"role": {"type": "string"},
		"message": {"type": ["string", "null"]},
		"response": {"type": ["string", "null"]},
		"image_data": {
			"type": ["object", "null"],
			"properties": {"data": {"type": "string"}}
		}
	}
}`

// Response envelopes. Only the parts the client reads are constrained.
var envelopeSchemas = map[string]string{
	opCreate: `{
		"type": "object",
		"required": ["session_id"],
		"properties": {"session_id": {"type": "string", "minLength": 1}}
	}`,
	opHistory: `{
		"type": "object",
		"definitions": {"message": ` + messageDefinition + `},
		"properties": {
			"history": {"type": ["array", "null"], "items": {"$ref": "#/definitions/message"}}
		}
	}`,
	opList: `{
		"type": "object",
		"properties": {
			"sessions": {
				"type": ["array", "null"],
				"items": {
					"type": "object",
					"required": ["session_id"],
					"properties": {
						"session_id": {"type": "string"},
						"bot_name": {"type": ["string", "null"]},
						"last_user_query": {"type": ["string", "null"]},
						"message_count": {"type": ["integer", "null"]}
					}
				}
			}
		}
	}`,
	opStats: `{
		"type": "object",
		"properties": {
			"total_messages": {"type": ["integer", "null"]},
			"user_messages": {"type": ["integer", "null"]},
			"assistant_messages": {"type": ["integer", "null"]}
		}
	}`,
	opDelete: `{"type": "object"}`,
	opSearch: `{
		"type": "object",
		"definitions": {"message": ` + messageDefinition + `},
		"properties": {
			"results": {"type": ["array", "null"], "items": {"$ref": "#/definitions/message"}}
		}
	}`,
}

var compiledSchemas = mustCompileSchemas()

func mustCompileSchemas() map[string]*gojsonschema.Schema {
	compiled := make(map[string]*gojsonschema.Schema, len(envelopeSchemas))
	for op, src := range envelopeSchemas {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
		if err != nil {
			panic(fmt.Sprintf("sessionapi: invalid %s schema: %v", op, err))
		}
		compiled[op] = schema
	}
	return compiled
}

// validateEnvelope checks body against the schema registered for op.
func validateEnvelope(op string, body []byte) error {
	schema, ok := compiledSchemas[op]
	if !ok {
		return nil
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var msgs []string
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("response does not match schema: %s", strings.Join(msgs, "; "))
}
