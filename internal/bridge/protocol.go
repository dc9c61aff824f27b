// Package bridge exposes the agent core to a game-engine host over a
// websocket. The engine drives the clock: it sends TICK messages at
// its frame rate and receives the primitive commands (move, face,
// speak, show input) the agent produced during that tick.
package bridge

import (
	"encoding/json"

	"github.com/jwebster45206/docent/pkg/world"
)

const Version = "1.0"

// Message types, engine to core.
const (
	TypeHello = "HELLO"
	TypeTick  = "TICK"
	TypeInput = "INPUT"
	TypeEvent = "EVENT"
)

// Message types, core to engine.
const (
	TypeWelcome   = "WELCOME"
	TypeMoveTo    = "MOVE_TO"
	TypeStop      = "STOP"
	TypeFace      = "FACE"
	TypeFacePlr   = "FACE_PLAYER"
	TypeSpeak     = "SPEAK"
	TypeShowInput = "SHOW_INPUT"
	TypeError     = "ERROR"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type string `json:"type"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}

// HELLO (engine -> core)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	EngineName      string `json:"engine_name,omitempty"`
}

// TICK (engine -> core). One simulation step: the engine reports
// current transforms and the core replies with zero or more commands.
type TickMsg struct {
	Type           string     `json:"type"`
	AgentPosition  world.Vec3 `json:"agent_position"`
	PlayerPosition world.Vec3 `json:"player_position"`
}

// INPUT (engine -> core). State of the modal text widget: exactly one
// of confirmed/cancelled is expected true when the widget closes.
type InputMsg struct {
	Type      string `json:"type"`
	Text      string `json:"text"`
	Confirmed bool   `json:"confirmed"`
	Cancelled bool   `json:"cancelled"`
}

// EVENT (engine -> core). Scripted-event gate; while running, the
// agent's ticks are no-ops.
type EventMsg struct {
	Type                 string `json:"type"`
	ScriptedEventRunning bool   `json:"scripted_event_running"`
}

// WELCOME (core -> engine)
type WelcomeMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	SessionID       string `json:"session_id"`
	AgentName       string `json:"agent_name"`
	WorldName       string `json:"world_name,omitempty"`
}

// MOVE_TO (core -> engine)
type MoveToMsg struct {
	Type         string     `json:"type"`
	Target       world.Vec3 `json:"target"`
	AcceptRadius float64    `json:"accept_radius"`
}

// STOP (core -> engine)
type StopMsg struct {
	Type string `json:"type"`
}

// FACE (core -> engine)
type FaceMsg struct {
	Type   string     `json:"type"`
	Target world.Vec3 `json:"target"`
}

// FACE_PLAYER (core -> engine)
type FacePlayerMsg struct {
	Type string `json:"type"`
}

// SPEAK (core -> engine). Fire and forget; the engine renders it.
type SpeakMsg struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// SHOW_INPUT (core -> engine). Asks the engine to open its modal text
// widget and answer with an INPUT message when it closes.
type ShowInputMsg struct {
	Type string `json:"type"`
}

// ERROR (core -> engine)
type ErrorMsg struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	CodeBadMessage         = "bad_message"
	CodeUnsupportedVersion = "unsupported_version"
)
