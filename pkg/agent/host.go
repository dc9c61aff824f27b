package agent

import "github.com/jwebster45206/docent/pkg/world"

// Host is the embedding game engine. The core never touches rendering,
// physics or pathfinding; it only asks the host for positions and for
// these few primitives. All calls happen on the tick goroutine.
type Host interface {
	// AgentPosition returns the current location of the agent's body.
	AgentPosition() world.Vec3

	// PlayerPosition returns the location of the nearest player.
	PlayerPosition() world.Vec3

	// MoveToward steers the agent toward target, stopping once within
	// acceptRadius. Safe to call repeatedly with the same goal.
	MoveToward(target world.Vec3, acceptRadius float64)

	// StopMovement halts any in-progress steering.
	StopMovement()

	// Face turns the agent toward target without moving.
	Face(target world.Vec3)

	// FacePlayer turns the agent toward the nearest player.
	FacePlayer()

	// Speak renders text attributed to title. Fire and forget: the
	// engine displays it however it likes, then normally opens its
	// input widget and reports the guest's reply through the agent's
	// SetAwaitingInput/SetPlayerSaid setters.
	Speak(title, text string)
}
