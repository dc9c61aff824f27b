package agent

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/docent/internal/services"
	"github.com/jwebster45206/docent/pkg/chat"
)

// turnResult carries one completed round trip back to the tick
// goroutine.
type turnResult struct {
	content string
	err     error
}

// TurnClient owns the round trip to the completion service. Dispatch
// is fire-and-forget; a busy flag prevents a second concurrent call,
// and results are delivered through a buffered channel drained by
// Pump on the tick goroutine, so memory and the flag are only ever
// touched from one goroutine.
type TurnClient struct {
	llm    services.LLMService
	memory *chat.Memory
	log    *slog.Logger

	enabled   bool
	busy      bool
	lastReply string
	results   chan turnResult
}

// NewTurnClient wires a turn client to a completion service and the
// conversation memory it maintains.
func NewTurnClient(llm services.LLMService, memory *chat.Memory, log *slog.Logger) *TurnClient {
	return &TurnClient{
		llm:     llm,
		memory:  memory,
		log:     log,
		enabled: true,
		results: make(chan turnResult, 1),
	}
}

// SetEnabled toggles outbound calls. While disabled, Start is a no-op.
func (c *TurnClient) SetEnabled(enabled bool) {
	c.enabled = enabled
}

// Busy reports whether a call is outstanding. Calls are never
// cancelled; a transport failure is the only early end.
func (c *TurnClient) Busy() bool {
	return c.busy
}

// LastReply returns the pending reply awaiting dispatch, if any.
func (c *TurnClient) LastReply() string {
	return c.lastReply
}

// ClearReply discards the pending reply after it has been dispatched.
func (c *TurnClient) ClearReply() {
	c.lastReply = ""
}

// Start launches one asynchronous completion request. Ignored when
// disabled or when a call is already outstanding.
func (c *TurnClient) Start(ctx context.Context, messages []chat.Message) {
	if !c.enabled || c.busy {
		return
	}
	c.busy = true
	turnID := uuid.New().String()
	c.log.Debug("starting completion turn", "turn_id", turnID, "messages", len(messages))
	go func() {
		content, err := c.llm.GetChatResponse(ctx, messages)
		if err != nil {
			c.log.Debug("completion turn finished with error", "turn_id", turnID, "error", err)
		}
		c.results <- turnResult{content: content, err: err}
	}()
}

// Pump drains at most one completed turn. Must be called from the
// tick goroutine. On transport failure the memory is left untouched
// so the next idle tick retries with the same context. On a malformed
// response the whole memory is dropped: a context that produced
// garbage once would be resent verbatim, so the dialogue restarts
// clean instead.
func (c *TurnClient) Pump() {
	select {
	case res := <-c.results:
		c.busy = false
		if res.err != nil {
			if errors.Is(res.err, services.ErrMalformedResponse) {
				c.log.Warn("clearing conversation log, completion was malformed", "error", res.err)
				c.memory.Clear()
			} else {
				c.log.Error("completion request failed", "error", res.err)
			}
			return
		}
		reply := firstLine(res.content)
		c.lastReply = reply
		c.memory.AddOutput(reply)
	default:
	}
}

// firstLine returns the first non-empty line of s. The model is
// assumed to emit exactly one action per turn; when it says more,
// everything after the first line is discarded.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			return line
		}
	}
	return ""
}
