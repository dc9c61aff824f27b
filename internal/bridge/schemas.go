package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Inbound message schemas. The engine side of the bridge is untrusted
// input, so every message is validated before it is decoded.

const vec3Schema = `{
  "type": "object",
  "properties": {
    "x": {"type": "number"},
    "y": {"type": "number"},
    "z": {"type": "number"}
  },
  "additionalProperties": false
}`

var inboundSchemas = map[string]*jsonschema.Schema{
	TypeHello: jsonschema.MustCompileString("hello.schema.json", `{
  "type": "object",
  "required": ["type", "protocol_version"],
  "properties": {
    "type": {"const": "HELLO"},
    "protocol_version": {"type": "string"},
    "engine_name": {"type": "string"}
  },
  "additionalProperties": false
}`),
	TypeTick: jsonschema.MustCompileString("tick.schema.json", `{
  "type": "object",
  "required": ["type", "agent_position", "player_position"],
  "properties": {
    "type": {"const": "TICK"},
    "agent_position": `+vec3Schema+`,
    "player_position": `+vec3Schema+`
  },
  "additionalProperties": false
}`),
	TypeInput: jsonschema.MustCompileString("input.schema.json", `{
  "type": "object",
  "required": ["type"],
  "properties": {
    "type": {"const": "INPUT"},
    "text": {"type": "string"},
    "confirmed": {"type": "boolean"},
    "cancelled": {"type": "boolean"}
  },
  "additionalProperties": false
}`),
	TypeEvent: jsonschema.MustCompileString("event.schema.json", `{
  "type": "object",
  "required": ["type", "scripted_event_running"],
  "properties": {
    "type": {"const": "EVENT"},
    "scripted_event_running": {"type": "boolean"}
  },
  "additionalProperties": false
}`),
}

// ValidateInbound checks raw against the schema for its declared type.
func ValidateInbound(msgType string, raw []byte) error {
	schema, ok := inboundSchemas[msgType]
	if !ok {
		return fmt.Errorf("unknown message type %q", msgType)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("message failed schema validation: %w", err)
	}
	return nil
}
