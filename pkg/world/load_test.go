package world

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validWorldYAML = `name: test_museum
rooms:
  - id: entry_hall
    description: A grand entry hall with marble floors.
    bounds:
      min: {x: 0, y: 0, z: 0}
      max: {x: 1000, y: 1000, z: 400}
    objects:
      - id: ticket_desk
        description: A mahogany ticket desk.
        entity: BP_TicketDesk
        position: {x: 200, y: 300, z: 0}
  - id: gallery
    description: A long gallery lined with paintings.
    bounds:
      min: {x: 1000, y: 0, z: 0}
      max: {x: 2000, y: 1000, z: 400}
doors:
  - room1: entry_hall
    room2: gallery
    description: archway
`

func TestParseDefinition(t *testing.T) {
	def, err := ParseDefinition([]byte(validWorldYAML))
	require.NoError(t, err)

	assert.Equal(t, "test_museum", def.Name)
	require.Len(t, def.Rooms, 2)
	assert.Equal(t, "entry_hall", def.Rooms[0].ID)
	require.Len(t, def.Rooms[0].Objects, 1)
	assert.Equal(t, "BP_TicketDesk", def.Rooms[0].Objects[0].Entity)
	require.Len(t, def.Doors, 1)
}

func TestParseDefinition_SchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", ": :\n\t-"},
		{"missing name", "rooms:\n  - id: a\n    description: x\n    bounds: {min: {}, max: {}}\n"},
		{"no rooms", "name: empty\nrooms: []\n"},
		{"bad room id", "name: w\nrooms:\n  - id: Entry Hall\n    description: x\n    bounds: {min: {}, max: {}}\n"},
		{"unknown field", "name: w\nfoo: bar\nrooms:\n  - id: a\n    description: x\n    bounds: {min: {}, max: {}}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDefinition([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestDefinitionValidate(t *testing.T) {
	base := func() *Definition {
		def, err := ParseDefinition([]byte(validWorldYAML))
		require.NoError(t, err)
		return def
	}

	t.Run("duplicate room id", func(t *testing.T) {
		def := base()
		def.Rooms = append(def.Rooms, def.Rooms[0])
		assert.Error(t, def.Validate())
	})

	t.Run("door to unknown room", func(t *testing.T) {
		def := base()
		def.Doors = append(def.Doors, DoorDef{Room1: "entry_hall", Room2: "vault"})
		assert.Error(t, def.Validate())
	})

	t.Run("inverted bounds", func(t *testing.T) {
		def := base()
		def.Rooms[0].Bounds = AABB{Min: Vec3{X: 10}, Max: Vec3{X: 0}}
		assert.Error(t, def.Validate())
	})

	t.Run("duplicate object id", func(t *testing.T) {
		def := base()
		def.Rooms[0].Objects = append(def.Rooms[0].Objects, def.Rooms[0].Objects[0])
		assert.Error(t, def.Validate())
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "museum.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validWorldYAML), 0o644))

	ix, err := Load(path)
	require.NoError(t, err)

	room := ix.RoomByID("entry_hall")
	require.NotNil(t, room)
	assert.Len(t, room.Objects, 1)
	assert.Equal(t, "ticket_desk", room.Objects[0].ID)

	doors := ix.DoorsAt("gallery")
	require.Len(t, doors, 1)
	assert.Equal(t, "entry_hall", doors[0].Other("gallery"))

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
