package agent

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jwebster45206/docent/internal/services"
	"github.com/jwebster45206/docent/pkg/chat"
	"github.com/jwebster45206/docent/pkg/command"
	"github.com/jwebster45206/docent/pkg/prompts"
	"github.com/jwebster45206/docent/pkg/speech"
	"github.com/jwebster45206/docent/pkg/world"
)

// State enumerates the controller's phases.
type State int

const (
	GoingToRoom State = iota
	GoingToObject
	WaitForPlayerNear
	TalkingOrThinking
	WaitingForAI
)

func (s State) String() string {
	switch s {
	case GoingToRoom:
		return "going_to_room"
	case GoingToObject:
		return "going_to_object"
	case WaitForPlayerNear:
		return "wait_for_player_near"
	case TalkingOrThinking:
		return "talking_or_thinking"
	case WaitingForAI:
		return "waiting_for_ai"
	default:
		return "unknown"
	}
}

// Movement thresholds in engine units, measured on the ground plane.
// Arrival distances are looser than the steering radius so the agent
// settles instead of oscillating.
const (
	roomAcceptRadius   = 100.0
	roomArriveDist     = 150.0
	objectAcceptRadius = 200.0
	objectArriveDist   = 250.0
	playerNearDist     = 300.0
)

// feedbackPrefix marks action results and errors fed back to the
// model so it can see its own mistakes next turn.
const feedbackPrefix = "action_result: "

// maxRecentPlaces caps the recently-visited room list.
const maxRecentPlaces = 5

// Agent is the finite-state controller for one embodied NPC. It is
// single-threaded: the host calls Tick at a fixed rate and pushes
// widget and event state through the setters between ticks. Nothing
// here is safe for concurrent use.
type Agent struct {
	name      string
	host      Host
	index     *world.Index
	memory    *chat.Memory
	turns     *TurnClient
	prompts   prompts.Set
	sanitizer *speech.Sanitizer
	log       *slog.Logger

	state         State
	currentRoom   *world.Room
	currentObject *world.Object
	targetRoom    *world.Room
	targetObject  *world.Object
	recentPlaces  []string

	// pending accumulates feedback text between turns. Appends collapse
	// into one string and flush as a single log entry on the next
	// outbound request.
	pending string

	playerSaid    string
	scriptedEvent bool
	awaitingInput bool

	lastFullPrompt string
}

// New wires an agent to its host, world and completion service. The
// initial state is GoingToRoom; the current room is resolved from the
// host's starting position.
func New(name string, host Host, index *world.Index, memory *chat.Memory, llm services.LLMService, log *slog.Logger) *Agent {
	if name == "" {
		name = prompts.DefaultAgentName
	}
	a := &Agent{
		name:      name,
		host:      host,
		index:     index,
		memory:    memory,
		turns:     NewTurnClient(llm, memory, log),
		prompts:   prompts.DefaultSet(name),
		sanitizer: speech.NewSanitizer(),
		log:       log,
		state:     GoingToRoom,
	}
	a.currentRoom = index.RoomAt(host.AgentPosition())
	return a
}

// Name returns the agent's character name.
func (a *Agent) Name() string { return a.name }

// State returns the current controller state.
func (a *Agent) State() State { return a.state }

// CurrentRoom returns the room the agent believes it is in.
func (a *Agent) CurrentRoom() *world.Room { return a.currentRoom }

// RecentPlaces returns the recently visited room ids, oldest first.
func (a *Agent) RecentPlaces() []string { return a.recentPlaces }

// LastFullPrompt returns the most recent outbound prompt, for
// inspection and debugging.
func (a *Agent) LastFullPrompt() string { return a.lastFullPrompt }

// Turns exposes the turn client, mainly for hosts that want to show
// a waiting indicator.
func (a *Agent) Turns() *TurnClient { return a.turns }

// SetPrompts overrides the persona prompt blocks.
func (a *Agent) SetPrompts(set prompts.Set) { a.prompts = set }

// SetScriptedEvent flags that the engine is running a scripted event
// (a speech animation, a cutscene). While set, ticks are pure no-ops.
func (a *Agent) SetScriptedEvent(running bool) { a.scriptedEvent = running }

// SetAwaitingInput flags that the engine is showing its modal text
// input widget. While set, ticks are pure no-ops.
func (a *Agent) SetAwaitingInput(waiting bool) { a.awaitingInput = waiting }

// SetPlayerSaid records the guest's line for the next status block.
// The engine calls this when the widget is confirmed, with an empty
// string on cancel.
func (a *Agent) SetPlayerSaid(text string) { a.playerSaid = text }

// Append adds feedback text to the outbound buffer. Multiple appends
// between turns concatenate into one entry.
func (a *Agent) Append(msg string) { a.pending += msg }

// Tick advances the controller by one simulation step. The host must
// call it at a fixed rate from a single goroutine.
func (a *Agent) Tick(ctx context.Context) {
	a.turns.Pump()

	// Global overrides: scripted events and the input widget both
	// suppress everything, movement included.
	if a.scriptedEvent || a.awaitingInput {
		a.host.StopMovement()
		return
	}

	switch a.state {
	case GoingToRoom:
		if a.currentRoom == nil {
			return
		}
		a.host.MoveToward(a.currentRoom.Position(), roomAcceptRadius)
		if a.host.AgentPosition().Dist2D(a.currentRoom.Position()) < roomArriveDist {
			a.Append(feedbackPrefix + "You travelled to " + a.currentRoom.ID)
			a.state = WaitForPlayerNear
		}

	case GoingToObject:
		if a.targetObject == nil {
			return
		}
		a.host.Face(a.targetObject.Position)
		a.host.MoveToward(a.targetObject.Position, objectAcceptRadius)
		if a.host.AgentPosition().Dist2D(a.targetObject.Position) < objectArriveDist {
			a.state = WaitForPlayerNear
		}

	case WaitForPlayerNear:
		if pos, ok := a.targetPosition(); ok {
			a.host.Face(pos)
		} else {
			a.host.FacePlayer()
		}
		if a.host.PlayerPosition().Dist2D(a.host.AgentPosition()) < playerNearDist {
			a.state = WaitingForAI
		}

	case TalkingOrThinking:
		// Reaching here means the host has cleared the scripted-event
		// flag, so the speech is over.
		a.currentObject = nil
		a.state = WaitingForAI

	case WaitingForAI:
		a.host.FacePlayer()
		if a.turns.Busy() {
			return
		}
		if reply := a.turns.LastReply(); reply != "" {
			a.dispatch(reply)
			a.turns.ClearReply()
			return
		}
		a.startTurn(ctx)
	}
}

// targetPosition returns the current navigation goal, if one is set.
func (a *Agent) targetPosition() (world.Vec3, bool) {
	if a.targetObject != nil {
		return a.targetObject.Position, true
	}
	if a.targetRoom != nil {
		return a.targetRoom.Position(), true
	}
	return world.Vec3{}, false
}

// dispatch runs one model reply through the parser and action
// handlers. Failures become feedback text, never fatal errors; the
// guest's line is consumed either way.
func (a *Agent) dispatch(line string) {
	if err := a.tryDo(line); err != nil {
		a.log.Error("action failed", "command", line, "error", err)
		a.Append(err.Error())
	}
	a.playerSaid = ""
}

// tryDo parses and executes one action call. The returned error, if
// any, is the exact feedback string for the model.
func (a *Agent) tryDo(line string) error {
	act, err := command.Parse(line)
	if err != nil {
		var unrec *command.UnrecognizedVerbError
		switch {
		case errors.Is(err, command.ErrMalformed):
			return errors.New(feedbackPrefix + "Malformed command. Expected exactly 2 parentheses.")
		case errors.As(err, &unrec):
			return errors.New(feedbackPrefix + "Unrecognized command " + unrec.Verb)
		default:
			return err
		}
	}

	switch act.Verb {
	case command.VerbSay:
		a.say(act.Arg)
		return nil
	case command.VerbGo:
		if err := a.goTo(act.Arg); err != nil {
			// The model regularly confuses navigation and inspection
			// targets, so a failed go falls back to examine.
			return a.examine(act.Arg)
		}
		return nil
	case command.VerbExamine:
		return a.examine(act.Arg)
	case command.VerbThink:
		a.think(act.Arg)
		return nil
	default:
		return errors.New(feedbackPrefix + "Unrecognized command " + act.Verb)
	}
}

func (a *Agent) say(phrase string) {
	a.log.Info("say", "agent", a.name, "phrase", phrase)
	a.state = TalkingOrThinking
	a.host.Speak(a.name, a.sanitizer.Clean(phrase))
}

func (a *Agent) think(phrase string) {
	a.log.Info("think", "agent", a.name, "phrase", phrase)
	a.state = TalkingOrThinking
	a.host.Speak(a.name+" (Thinking)", a.sanitizer.Clean(phrase))
}

func (a *Agent) goTo(roomID string) error {
	a.log.Info("go", "agent", a.name, "room", roomID)
	room := a.index.RoomByID(roomID)
	if room == nil {
		return errors.New("Cannot go to that room from here.")
	}
	a.state = GoingToRoom
	a.currentRoom = room
	a.targetRoom = room
	a.targetObject = nil
	a.host.MoveToward(room.Position(), roomAcceptRadius)
	a.recordRecentPlace(room.ID)
	return nil
}

func (a *Agent) examine(target string) error {
	a.log.Info("examine", "agent", a.name, "target", target)
	if a.currentRoom == nil {
		return errors.New("No room")
	}
	obj := a.index.ObjectByID(a.currentRoom.ID, target)
	a.currentObject = obj
	if obj == nil {
		return errors.New(feedbackPrefix + "Error. could not find the object in the current room.")
	}
	a.Append(feedbackPrefix + obj.Description)
	a.targetObject = obj
	a.targetRoom = nil
	a.state = GoingToObject
	return nil
}

// recordRecentPlace tracks up to maxRecentPlaces visited room ids.
// Once the list is full, the id that was just added is the one
// removed again, not the oldest. Deliberately kept that way; see
// DESIGN.md before changing it.
func (a *Agent) recordRecentPlace(id string) {
	for _, p := range a.recentPlaces {
		if p == id {
			return
		}
	}
	a.recentPlaces = append(a.recentPlaces, id)
	if len(a.recentPlaces) > maxRecentPlaces {
		for i, p := range a.recentPlaces {
			if p == id {
				a.recentPlaces = append(a.recentPlaces[:i], a.recentPlaces[i+1:]...)
				break
			}
		}
	}
}

// startTurn flushes pending feedback into memory, builds the status
// prompt, and kicks off one completion call.
func (a *Agent) startTurn(ctx context.Context) {
	if a.currentRoom == nil {
		a.currentRoom = a.index.RoomAt(a.host.AgentPosition())
		if a.currentRoom == nil {
			a.log.Warn("cannot start turn: agent is in no known room")
			return
		}
	}

	full := ""
	if a.pending != "" {
		a.memory.AddPrompt(a.pending)
		full += a.pending + "\n"
		a.pending = ""
	}

	prompt, err := prompts.New().
		WithSet(a.prompts).
		WithIndex(a.index).
		WithRoom(a.currentRoom).
		WithAgentPosition(a.host.AgentPosition()).
		WithRecentRooms(a.recentPlaces).
		WithPlayerSaid(a.playerSaid).
		Build()
	if err != nil {
		a.log.Error("failed to build prompt", "error", err)
		return
	}
	full += prompt
	a.lastFullPrompt = full
	a.memory.AddPrompt(prompt)

	a.turns.Start(ctx, prompts.RequestMessages(a.prompts, a.memory))
}
