package prompts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jwebster45206/docent/pkg/world"
)

// Builder assembles the outbound prompt for one model turn using a
// fluent interface. It separates prompt text from agent state.
type Builder struct {
	set        Set
	index      *world.Index
	room       *world.Room
	agentPos   world.Vec3
	recent     []string
	playerSaid string
}

// New creates a builder with the default persona.
func New() *Builder {
	return &Builder{set: DefaultSet("")}
}

// WithSet sets the persona prompt blocks.
func (b *Builder) WithSet(set Set) *Builder {
	b.set = set
	return b
}

// WithIndex sets the world index used for adjacency and object lookups.
func (b *Builder) WithIndex(ix *world.Index) *Builder {
	b.index = ix
	return b
}

// WithRoom sets the agent's current room.
func (b *Builder) WithRoom(r *world.Room) *Builder {
	b.room = r
	return b
}

// WithAgentPosition sets the position used to sort nearby objects.
func (b *Builder) WithAgentPosition(pos world.Vec3) *Builder {
	b.agentPos = pos
	return b
}

// WithRecentRooms sets the recently visited room ids.
func (b *Builder) WithRecentRooms(ids []string) *Builder {
	b.recent = ids
	return b
}

// WithPlayerSaid sets the guest's last line, if any.
func (b *Builder) WithPlayerSaid(said string) *Builder {
	b.playerSaid = said
	return b
}

// Build returns the full outbound prompt: persona grounding, the
// STATUS block, and a trailing demand for exactly one action.
func (b *Builder) Build() (string, error) {
	status, err := b.Status()
	if err != nil {
		return "", err
	}
	return b.set.Grounding + "STATUS:\n" + status + "\n" + actionReminder, nil
}

// Status renders the agent's situation: room, nearby objects sorted by
// distance, adjacent rooms, recent rooms, and the guest's last line.
func (b *Builder) Status() (string, error) {
	if b.index == nil {
		return "", fmt.Errorf("world index is required")
	}
	if b.room == nil {
		return "", fmt.Errorf("current room is required")
	}

	guest := ""
	if b.playerSaid != "" {
		guest = b.set.GuestSaid + " \"" + b.playerSaid + "\""
	}

	return "You are in room_id=\"" + b.room.ID + "\"." +
		"\nroom_description=\"" + b.room.Description + "\"" +
		"\nnearby_object_ids=" + b.nearbyObjects() +
		"\nadjacent_rooms=" + b.adjacentRooms() +
		"\nrecent_rooms=" + bracketList(b.recent) +
		"\n" + b.set.SeeGuest + guest, nil
}

// nearbyObjects lists object ids in the current room, nearest first.
func (b *Builder) nearbyObjects() string {
	objects := b.index.ObjectsAt(b.room.ID)
	sorted := make([]*world.Object, len(objects))
	copy(sorted, objects)
	pos := b.agentPos
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position.Dist(pos) < sorted[j].Position.Dist(pos)
	})
	ids := make([]string, 0, len(sorted))
	for _, o := range sorted {
		ids = append(ids, o.ID)
	}
	return bracketList(ids)
}

// adjacentRooms lists the far endpoint of every door touching the
// current room.
func (b *Builder) adjacentRooms() string {
	doors := b.index.DoorsAt(b.room.ID)
	ids := make([]string, 0, len(doors))
	for _, d := range doors {
		ids = append(ids, d.Other(b.room.ID))
	}
	return bracketList(ids)
}

// bracketList renders ids as [a,b,c]. An empty list renders as the
// literal two-character token [].
func bracketList(ids []string) string {
	if len(ids) == 0 {
		return "[]"
	}
	return "[" + strings.Join(ids, ",") + "]"
}
