package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jwebster45206/docent/pkg/world"
)

func TestHealthHandler_ServeHTTP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))

	loadedWorld := world.NewIndex([]*world.Room{
		{ID: "entry_hall", Description: "The entry hall."},
	}, nil)

	tests := []struct {
		name           string
		index          *world.Index
		llmEnabled     bool
		expectedStatus int
		expectedHealth string
		expectedLLM    string
	}{
		{
			name:           "healthy with llm",
			index:          loadedWorld,
			llmEnabled:     true,
			expectedStatus: http.StatusOK,
			expectedHealth: "healthy",
			expectedLLM:    "enabled",
		},
		{
			name:           "healthy without llm",
			index:          loadedWorld,
			llmEnabled:     false,
			expectedStatus: http.StatusOK,
			expectedHealth: "healthy",
			expectedLLM:    "disabled",
		},
		{
			name:           "no world loaded",
			index:          nil,
			llmEnabled:     true,
			expectedStatus: http.StatusServiceUnavailable,
			expectedHealth: "degraded",
			expectedLLM:    "enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.index, tt.llmEnabled, logger)

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}

			var resp HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != tt.expectedHealth {
				t.Errorf("expected health %q, got %q", tt.expectedHealth, resp.Status)
			}
			if resp.Service != "docent" {
				t.Errorf("expected service docent, got %q", resp.Service)
			}
			if resp.Components["llm"] != tt.expectedLLM {
				t.Errorf("expected llm %q, got %v", tt.expectedLLM, resp.Components["llm"])
			}
		})
	}
}
