package services

import (
	"context"
	"errors"

	"github.com/jwebster45206/docent/pkg/chat"
)

var (
	// ErrTransport indicates the request never completed: the connection
	// failed before any body could be read. The caller may retry with
	// unchanged state.
	ErrTransport = errors.New("completion transport failure")

	// ErrMalformedResponse indicates the provider returned a body that
	// could not be interpreted as a completion. The caller should treat
	// its conversational context as suspect.
	ErrMalformedResponse = errors.New("malformed completion response")
)

// LLMService is the interface to a chat-completion provider.
type LLMService interface {
	// GetChatResponse sends the message log and returns the raw text of
	// the first completion choice.
	GetChatResponse(ctx context.Context, messages []chat.Message) (string, error)
}
