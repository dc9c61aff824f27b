package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jwebster45206/docent/pkg/chat"
)

const (
	defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"
)

// OpenAIService implements LLMService against any endpoint speaking
// the OpenAI chat completions protocol.
type OpenAIService struct {
	apiKey      string
	url         string
	modelName   string
	temperature float64
	httpClient  *http.Client
}

// openAIChatRequest is the request body for chat completions.
type openAIChatRequest struct {
	Model       string         `json:"model"`
	Temperature float64        `json:"temperature"`
	Messages    []chat.Message `json:"messages"`
}

// openAIChatChoice is a single choice in the completions response.
type openAIChatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

// openAIChatResponse is the response body for chat completions.
type openAIChatResponse struct {
	ID      string             `json:"id"`
	Object  string             `json:"object"`
	Created int64              `json:"created"`
	Model   string             `json:"model"`
	Choices []openAIChatChoice `json:"choices"`
}

// NewOpenAIService creates a completion client. An empty url selects
// the public OpenAI endpoint.
func NewOpenAIService(apiKey, url, modelName string, temperature float64) *OpenAIService {
	if url == "" {
		url = defaultOpenAIURL
	}
	return &OpenAIService{
		apiKey:      apiKey,
		url:         url,
		modelName:   modelName,
		temperature: temperature,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

// GetChatResponse posts the message log and extracts the content of
// the first choice. Connection errors are classified as ErrTransport;
// any body that cannot be interpreted as a completion, including error
// bodies the provider sends with a non-200 status, is classified as
// ErrMalformedResponse.
func (s *OpenAIService) GetChatResponse(ctx context.Context, messages []chat.Message) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages provided")
	}

	reqBody, err := json.Marshal(openAIChatRequest{
		Model:       s.modelName,
		Temperature: s.temperature,
		Messages:    messages,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %v", ErrTransport, err)
	}

	var completion openAIChatResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrMalformedResponse)
	}
	content := completion.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("%w: empty message content", ErrMalformedResponse)
	}
	return content, nil
}
