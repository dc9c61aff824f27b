package services

import (
	"context"
	"sync"

	"github.com/jwebster45206/docent/pkg/chat"
)

// MockLLM is a scriptable LLMService for testing and for running the
// console host without an API key.
type MockLLM struct {
	GetChatResponseFunc func(ctx context.Context, messages []chat.Message) (string, error)

	// Calls records every message log this mock received.
	Calls [][]chat.Message

	replies []string
	err     error

	mu sync.Mutex // protects all fields above
}

// NewMockLLM creates a mock with no scripted replies. With nothing
// queued it answers think(...) so a driving loop keeps turning over.
func NewMockLLM() *MockLLM {
	return &MockLLM{
		Calls: make([][]chat.Message, 0),
	}
}

// QueueReplies appends scripted replies, consumed one per call.
func (m *MockLLM) QueueReplies(replies ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, replies...)
}

// SetError makes every following call fail with err.
func (m *MockLLM) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// CallCount returns how many requests the mock has served.
func (m *MockLLM) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// GetChatResponse implements LLMService. The call is recorded and the
// scripted state snapshotted under the lock, but GetChatResponseFunc
// runs outside it, so a blocking script never wedges CallCount.
func (m *MockLLM) GetChatResponse(ctx context.Context, messages []chat.Message) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, messages)
	fn := m.GetChatResponseFunc
	err := m.err
	var reply string
	scripted := false
	if fn == nil && err == nil && len(m.replies) > 0 {
		reply = m.replies[0]
		m.replies = m.replies[1:]
		scripted = true
	}
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, messages)
	}
	if err != nil {
		return "", err
	}
	if scripted {
		return reply, nil
	}
	return "think(I have nothing to say.)", nil
}
