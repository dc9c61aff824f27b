package main

import (
	"math"
	"time"

	"github.com/jwebster45206/docent/pkg/world"
)

// Movement speeds in world units per second. The player trails the
// agent like a museum guest keeping a polite distance.
const (
	agentSpeed      = 420.0
	playerSpeed     = 360.0
	playerFollowGap = 150.0
)

type transcriptEntry struct {
	Speaker string
	Text    string
	At      time.Time
}

// simHost is a toy stand-in for a game engine: it integrates agent
// and player movement on every UI tick and records speech instead of
// rendering it. It implements agent.Host.
type simHost struct {
	agentPos  world.Vec3
	playerPos world.Vec3

	moveTarget   *world.Vec3
	acceptRadius float64

	transcript     []transcriptEntry
	inputRequested bool
}

func newSimHost(start world.Vec3) *simHost {
	return &simHost{
		agentPos:  start,
		playerPos: world.Vec3{X: start.X - playerFollowGap, Y: start.Y, Z: start.Z},
	}
}

func (h *simHost) AgentPosition() world.Vec3  { return h.agentPos }
func (h *simHost) PlayerPosition() world.Vec3 { return h.playerPos }

func (h *simHost) MoveToward(target world.Vec3, acceptRadius float64) {
	t := target
	h.moveTarget = &t
	h.acceptRadius = acceptRadius
}

func (h *simHost) StopMovement() {
	h.moveTarget = nil
}

// Face and FacePlayer are rendering concerns with no observable effect
// in a headless simulation.
func (h *simHost) Face(world.Vec3) {}
func (h *simHost) FacePlayer()     {}

func (h *simHost) Speak(title, text string) {
	h.transcript = append(h.transcript, transcriptEntry{Speaker: title, Text: text, At: time.Now()})
	h.inputRequested = true
}

// step advances both bodies by dt. Movement is planar; Z is carried
// along unchanged.
func (h *simHost) step(dt float64) {
	if h.moveTarget != nil {
		h.agentPos = approach(h.agentPos, *h.moveTarget, agentSpeed*dt)
		if h.agentPos.Dist2D(*h.moveTarget) <= h.acceptRadius {
			h.moveTarget = nil
		}
	}
	if h.playerPos.Dist2D(h.agentPos) > playerFollowGap {
		h.playerPos = approach(h.playerPos, h.agentPos, playerSpeed*dt)
	}
}

// approach moves from toward to by at most maxStep on the ground plane.
func approach(from, to world.Vec3, maxStep float64) world.Vec3 {
	dx := to.X - from.X
	dy := to.Y - from.Y
	dist := math.Hypot(dx, dy)
	if dist <= maxStep || dist == 0 {
		return world.Vec3{X: to.X, Y: to.Y, Z: from.Z}
	}
	scale := maxStep / dist
	return world.Vec3{X: from.X + dx*scale, Y: from.Y + dy*scale, Z: from.Z}
}
