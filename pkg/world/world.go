package world

import (
	"fmt"
	"strings"
)

// Room is a labelled region of the world. Objects register themselves
// into their containing room at load time; membership never shrinks
// during a session.
type Room struct {
	ID          string
	Description string
	Bounds      AABB
	Objects     []*Object
}

// Position returns the point the agent steers toward when travelling
// to this room.
func (r *Room) Position() Vec3 {
	return r.Bounds.Center()
}

// Door is a symmetric adjacency fact between two rooms. Immutable
// after load.
type Door struct {
	Room1       string
	Room2       string
	Description string
}

// Other returns the endpoint that is not roomID. If neither endpoint
// matches, Room1 is returned.
func (d Door) Other(roomID string) string {
	if d.Room1 == roomID {
		return d.Room2
	}
	return d.Room1
}

// Object annotates a physical entity in the host engine with an
// identifier and a description the agent can relay.
type Object struct {
	ID          string
	Description string
	EntityID    string
	Position    Vec3
}

// Index resolves symbolic room and object identifiers and answers
// adjacency queries. Rooms and doors are fixed after construction;
// the only permitted mutation is object registration.
type Index struct {
	rooms []*Room
	doors []Door
}

// NewIndex builds an index over the given rooms and doors.
func NewIndex(rooms []*Room, doors []Door) *Index {
	return &Index{rooms: rooms, doors: doors}
}

// Rooms returns the rooms in definition order.
func (ix *Index) Rooms() []*Room {
	return ix.rooms
}

// Doors returns all doors.
func (ix *Index) Doors() []Door {
	return ix.doors
}

// RoomByID returns the room with the given id, or nil. An exact match
// wins; otherwise the id is matched as a case-insensitive substring of
// any room id, because the model likes to abbreviate room names. Among
// several substring matches the first in definition order is returned.
func (ix *Index) RoomByID(id string) *Room {
	for _, r := range ix.rooms {
		if r.ID == id {
			return r
		}
	}
	lower := strings.ToLower(id)
	if lower == "" {
		return nil
	}
	for _, r := range ix.rooms {
		if strings.Contains(strings.ToLower(r.ID), lower) {
			return r
		}
	}
	return nil
}

// RoomAt returns the first room whose bounds contain p, or nil.
func (ix *Index) RoomAt(p Vec3) *Room {
	for _, r := range ix.rooms {
		if r.Bounds.Contains(p) {
			return r
		}
	}
	return nil
}

// DoorsAt returns every door with roomID as either endpoint.
func (ix *Index) DoorsAt(roomID string) []Door {
	var out []Door
	for _, d := range ix.doors {
		if d.Room1 == roomID || d.Room2 == roomID {
			out = append(out, d)
		}
	}
	return out
}

// ObjectsAt returns the objects registered in the given room, or nil
// if the room is unknown.
func (ix *Index) ObjectsAt(roomID string) []*Object {
	r := ix.RoomByID(roomID)
	if r == nil {
		return nil
	}
	return r.Objects
}

// ObjectByID resolves target within a room, exact id first, then
// case-insensitive substring, or nil.
func (ix *Index) ObjectByID(roomID, target string) *Object {
	r := ix.RoomByID(roomID)
	if r == nil {
		return nil
	}
	for _, o := range r.Objects {
		if o.ID == target {
			return o
		}
	}
	lower := strings.ToLower(target)
	if lower == "" {
		return nil
	}
	for _, o := range r.Objects {
		if strings.Contains(strings.ToLower(o.ID), lower) {
			return o
		}
	}
	return nil
}

// RegisterObject appends obj to the room's object list. Registration
// is append-only; objects are never removed during a session.
func (ix *Index) RegisterObject(roomID string, obj *Object) error {
	r := ix.RoomByID(roomID)
	if r == nil {
		return fmt.Errorf("cannot register object %q: no room %q", obj.ID, roomID)
	}
	r.Objects = append(r.Objects, obj)
	return nil
}
