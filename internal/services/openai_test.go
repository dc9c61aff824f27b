package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/docent/pkg/chat"
)

func testMessages() []chat.Message {
	return []chat.Message{
		{Role: chat.RoleUser, Content: "STATUS: test"},
	}
}

func TestGetChatResponse_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openAIChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-3.5-turbo", req.Model)
		assert.Equal(t, 0.4, req.Temperature)
		require.Len(t, req.Messages, 1)

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "go(gallery)\nsay(follow me)"}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc := NewOpenAIService("test-key", server.URL, "gpt-3.5-turbo", 0.4)
	content, err := svc.GetChatResponse(context.Background(), testMessages())
	require.NoError(t, err)
	// The full multi-line content is returned; line policy is the caller's.
	assert.Equal(t, "go(gallery)\nsay(follow me)", content)
}

func TestGetChatResponse_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	svc := NewOpenAIService("k", server.URL, "gpt-3.5-turbo", 0.4)
	_, err := svc.GetChatResponse(context.Background(), testMessages())
	assert.True(t, errors.Is(err, ErrTransport), "want ErrTransport, got %v", err)
}

func TestGetChatResponse_MalformedBody(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"not json", http.StatusOK, "<html>oops</html>"},
		{"missing choices", http.StatusOK, `{"id":"x"}`},
		{"empty choices", http.StatusOK, `{"choices":[]}`},
		{"empty content", http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":""}}]}`},
		{"provider error body", http.StatusUnauthorized, `{"error":{"message":"bad key"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			svc := NewOpenAIService("k", server.URL, "gpt-3.5-turbo", 0.4)
			_, err := svc.GetChatResponse(context.Background(), testMessages())
			assert.True(t, errors.Is(err, ErrMalformedResponse), "want ErrMalformedResponse, got %v", err)
		})
	}
}

func TestGetChatResponse_NoMessages(t *testing.T) {
	svc := NewOpenAIService("k", "", "gpt-3.5-turbo", 0.4)
	_, err := svc.GetChatResponse(context.Background(), nil)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrTransport))
}

func TestMockLLM(t *testing.T) {
	m := NewMockLLM()
	m.QueueReplies("say(one)", "say(two)")

	r1, err := m.GetChatResponse(context.Background(), testMessages())
	require.NoError(t, err)
	r2, _ := m.GetChatResponse(context.Background(), testMessages())
	r3, _ := m.GetChatResponse(context.Background(), testMessages())

	assert.Equal(t, "say(one)", r1)
	assert.Equal(t, "say(two)", r2)
	assert.Equal(t, "think(I have nothing to say.)", r3)
	assert.Equal(t, 3, m.CallCount())

	m.SetError(errors.New("boom"))
	_, err = m.GetChatResponse(context.Background(), testMessages())
	assert.Error(t, err)
}

func TestMockLLM_CallCountWhileBlocked(t *testing.T) {
	release := make(chan struct{})
	m := NewMockLLM()
	m.GetChatResponseFunc = func(ctx context.Context, messages []chat.Message) (string, error) {
		<-release
		return "say(done)", nil
	}

	done := make(chan struct{})
	go func() {
		_, _ = m.GetChatResponse(context.Background(), testMessages())
		close(done)
	}()

	// The call must be visible, and CallCount callable, while the
	// scripted response is still blocked.
	require.Eventually(t, func() bool { return m.CallCount() == 1 }, time.Second, time.Millisecond)

	close(release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("blocked call never finished")
	}
	assert.Equal(t, 1, m.CallCount())
}
