package world

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// definitionSchema validates the shape of a world file before it is
// decoded into typed structs. Semantic rules (unique ids, door
// endpoints) are checked separately by Definition.Validate.
const definitionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "rooms"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "rooms": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "description", "bounds"],
        "properties": {
          "id": {"type": "string", "pattern": "^[a-z0-9_]+$"},
          "description": {"type": "string"},
          "bounds": {"$ref": "#/definitions/aabb"},
          "objects": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["id", "description"],
              "properties": {
                "id": {"type": "string", "pattern": "^[a-z0-9_]+$"},
                "description": {"type": "string"},
                "entity": {"type": "string"},
                "position": {"$ref": "#/definitions/vec3"}
              },
              "additionalProperties": false
            }
          }
        },
        "additionalProperties": false
      }
    },
    "doors": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["room1", "room2"],
        "properties": {
          "room1": {"type": "string"},
          "room2": {"type": "string"},
          "description": {"type": "string"}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false,
  "definitions": {
    "vec3": {
      "type": "object",
      "properties": {
        "x": {"type": "number"},
        "y": {"type": "number"},
        "z": {"type": "number"}
      },
      "additionalProperties": false
    },
    "aabb": {
      "type": "object",
      "required": ["min", "max"],
      "properties": {
        "min": {"$ref": "#/definitions/vec3"},
        "max": {"$ref": "#/definitions/vec3"}
      },
      "additionalProperties": false
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("world.schema.json", definitionSchema)

// Definition mirrors a world YAML file.
type Definition struct {
	Name  string    `yaml:"name" json:"name"`
	Rooms []RoomDef `yaml:"rooms" json:"rooms"`
	Doors []DoorDef `yaml:"doors,omitempty" json:"doors,omitempty"`
}

type RoomDef struct {
	ID          string      `yaml:"id" json:"id"`
	Description string      `yaml:"description" json:"description"`
	Bounds      AABB        `yaml:"bounds" json:"bounds"`
	Objects     []ObjectDef `yaml:"objects,omitempty" json:"objects,omitempty"`
}

type ObjectDef struct {
	ID          string `yaml:"id" json:"id"`
	Description string `yaml:"description" json:"description"`
	Entity      string `yaml:"entity,omitempty" json:"entity,omitempty"`
	Position    Vec3   `yaml:"position,omitempty" json:"position,omitempty"`
}

type DoorDef struct {
	Room1       string `yaml:"room1" json:"room1"`
	Room2       string `yaml:"room2" json:"room2"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// ParseDefinition decodes and schema-checks world file contents.
func ParseDefinition(data []byte) (*Definition, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse world file: %w", err)
	}

	// The schema library validates values produced by encoding/json,
	// so round-trip the YAML document through JSON first.
	jsonBytes, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize world file: %w", err)
	}
	var doc any
	dec := json.NewDecoder(bytes.NewReader(jsonBytes))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to normalize world file: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("world file failed schema validation: %w", err)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to decode world file: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate applies semantic rules that the schema cannot express.
func (d *Definition) Validate() error {
	roomIDs := make(map[string]bool, len(d.Rooms))
	for _, r := range d.Rooms {
		if roomIDs[r.ID] {
			return fmt.Errorf("duplicate room id %q", r.ID)
		}
		roomIDs[r.ID] = true
		if !r.Bounds.IsValid() {
			return fmt.Errorf("room %q has inverted bounds", r.ID)
		}
		objIDs := make(map[string]bool, len(r.Objects))
		for _, o := range r.Objects {
			if objIDs[o.ID] {
				return fmt.Errorf("duplicate object id %q in room %q", o.ID, r.ID)
			}
			objIDs[o.ID] = true
		}
	}
	for _, dr := range d.Doors {
		if !roomIDs[dr.Room1] {
			return fmt.Errorf("door references unknown room %q", dr.Room1)
		}
		if !roomIDs[dr.Room2] {
			return fmt.Errorf("door references unknown room %q", dr.Room2)
		}
	}
	return nil
}

// Build constructs the index, registering each object into its room.
func (d *Definition) Build() (*Index, error) {
	rooms := make([]*Room, 0, len(d.Rooms))
	for _, rd := range d.Rooms {
		rooms = append(rooms, &Room{
			ID:          rd.ID,
			Description: rd.Description,
			Bounds:      rd.Bounds,
		})
	}
	doors := make([]Door, 0, len(d.Doors))
	for _, dd := range d.Doors {
		desc := dd.Description
		if desc == "" {
			desc = "door"
		}
		doors = append(doors, Door{Room1: dd.Room1, Room2: dd.Room2, Description: desc})
	}
	ix := NewIndex(rooms, doors)
	for _, rd := range d.Rooms {
		for _, od := range rd.Objects {
			obj := &Object{
				ID:          od.ID,
				Description: od.Description,
				EntityID:    od.Entity,
				Position:    od.Position,
			}
			if err := ix.RegisterObject(rd.ID, obj); err != nil {
				return nil, err
			}
		}
	}
	return ix, nil
}

// Load reads, validates and builds a world from a YAML file.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world file %s: %w", path, err)
	}
	def, err := ParseDefinition(data)
	if err != nil {
		return nil, err
	}
	return def.Build()
}
