package bridge

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/jwebster45206/docent/internal/services"
	"github.com/jwebster45206/docent/pkg/agent"
	"github.com/jwebster45206/docent/pkg/chat"
	"github.com/jwebster45206/docent/pkg/world"
)

// Server hosts one agent per websocket connection. The engine client
// owns the clock: every TICK message advances the agent exactly once,
// so all core state stays on this connection's read loop.
type Server struct {
	log       *slog.Logger
	index     *world.Index
	llm       services.LLMService
	agentName string
	worldName string
	memoryMax int

	upgrader websocket.Upgrader
}

// NewServer creates a bridge server over a loaded world.
func NewServer(log *slog.Logger, index *world.Index, llm services.LLMService, agentName, worldName string, memoryMax int) *Server {
	return &Server{
		log:       log,
		index:     index,
		llm:       llm,
		agentName: agentName,
		worldName: worldName,
		memoryMax: memoryMax,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The engine client is not a browser; skip origin checks.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	s.serve(r, conn)
}

// wsHost buffers the primitive commands one tick produces so they can
// be flushed to the engine as messages after Tick returns.
type wsHost struct {
	agentPos  world.Vec3
	playerPos world.Vec3

	out            []any
	inputRequested bool
}

func (h *wsHost) AgentPosition() world.Vec3  { return h.agentPos }
func (h *wsHost) PlayerPosition() world.Vec3 { return h.playerPos }

func (h *wsHost) MoveToward(target world.Vec3, acceptRadius float64) {
	h.out = append(h.out, MoveToMsg{Type: TypeMoveTo, Target: target, AcceptRadius: acceptRadius})
}

func (h *wsHost) StopMovement() {
	h.out = append(h.out, StopMsg{Type: TypeStop})
}

func (h *wsHost) Face(target world.Vec3) {
	h.out = append(h.out, FaceMsg{Type: TypeFace, Target: target})
}

func (h *wsHost) FacePlayer() {
	h.out = append(h.out, FacePlayerMsg{Type: TypeFacePlr})
}

func (h *wsHost) Speak(title, text string) {
	h.out = append(h.out, SpeakMsg{Type: TypeSpeak, Title: title, Text: text})
	h.out = append(h.out, ShowInputMsg{Type: TypeShowInput})
	h.inputRequested = true
}

func (s *Server) serve(r *http.Request, conn *websocket.Conn) {
	log := s.log.With("remote", conn.RemoteAddr().String())

	// Handshake: the first message must be a valid HELLO.
	_, raw, err := conn.ReadMessage()
	if err != nil {
		log.Error("read failed before handshake", "error", err)
		return
	}
	base, err := DecodeBase(raw)
	if err != nil || base.Type != TypeHello {
		_ = conn.WriteJSON(ErrorMsg{Type: TypeError, Code: CodeBadMessage, Message: "expected HELLO"})
		return
	}
	if err := ValidateInbound(TypeHello, raw); err != nil {
		_ = conn.WriteJSON(ErrorMsg{Type: TypeError, Code: CodeBadMessage, Message: err.Error()})
		return
	}
	var hello HelloMsg
	_ = json.Unmarshal(raw, &hello)
	if !strings.HasPrefix(hello.ProtocolVersion, "1.") {
		_ = conn.WriteJSON(ErrorMsg{Type: TypeError, Code: CodeUnsupportedVersion, Message: "supported versions: 1.x"})
		return
	}

	sessionID := uuid.New().String()
	log = log.With("session_id", sessionID, "engine", hello.EngineName)
	log.Info("engine connected")

	host := &wsHost{}
	a := agent.New(s.agentName, host, s.index, chat.NewMemory(s.memoryMax), s.llm, log)

	if err := conn.WriteJSON(WelcomeMsg{
		Type:            TypeWelcome,
		ProtocolVersion: Version,
		SessionID:       sessionID,
		AgentName:       a.Name(),
		WorldName:       s.worldName,
	}); err != nil {
		log.Error("failed to send welcome", "error", err)
		return
	}

	ctx := r.Context()
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			log.Info("engine disconnected", "error", err)
			return
		}
		base, err := DecodeBase(raw)
		if err != nil {
			_ = conn.WriteJSON(ErrorMsg{Type: TypeError, Code: CodeBadMessage, Message: "invalid JSON"})
			continue
		}
		if err := ValidateInbound(base.Type, raw); err != nil {
			_ = conn.WriteJSON(ErrorMsg{Type: TypeError, Code: CodeBadMessage, Message: err.Error()})
			continue
		}

		switch base.Type {
		case TypeTick:
			var tick TickMsg
			_ = json.Unmarshal(raw, &tick)
			host.agentPos = tick.AgentPosition
			host.playerPos = tick.PlayerPosition
			a.Tick(ctx)
			if host.inputRequested {
				a.SetAwaitingInput(true)
				host.inputRequested = false
			}
			for _, msg := range host.out {
				if err := conn.WriteJSON(msg); err != nil {
					log.Error("write failed", "error", err)
					return
				}
			}
			host.out = host.out[:0]

		case TypeInput:
			var input InputMsg
			_ = json.Unmarshal(raw, &input)
			switch {
			case input.Cancelled:
				a.SetPlayerSaid("")
				a.SetAwaitingInput(false)
			case input.Confirmed:
				a.SetPlayerSaid(input.Text)
				a.SetAwaitingInput(false)
			}
			// Neither flag set: the widget is still open; keep waiting.

		case TypeEvent:
			var event EventMsg
			_ = json.Unmarshal(raw, &event)
			a.SetScriptedEvent(event.ScriptedEventRunning)

		default:
			_ = conn.WriteJSON(ErrorMsg{Type: TypeError, Code: CodeBadMessage, Message: "unexpected " + base.Type})
		}
	}
}
