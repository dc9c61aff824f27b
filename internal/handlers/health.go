package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/docent/pkg/world"
)

type HealthResponse struct {
	Status     string                 `json:"status"`
	Timestamp  time.Time              `json:"timestamp"`
	Service    string                 `json:"service"`
	Components map[string]interface{} `json:"components"`
}

// HealthHandler reports whether the bridge can serve agent sessions.
type HealthHandler struct {
	index      *world.Index
	llmEnabled bool
	logger     *slog.Logger
}

func NewHealthHandler(index *world.Index, llmEnabled bool, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		index:      index,
		llmEnabled: llmEnabled,
		logger:     logger,
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	h.logger.Debug("Health check requested",
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr)

	components := make(map[string]interface{})
	overallStatus := "healthy"

	if h.index == nil || len(h.index.Rooms()) == 0 {
		components["world"] = "unhealthy"
		overallStatus = "degraded"
	} else {
		components["world"] = map[string]interface{}{
			"status": "healthy",
			"rooms":  len(h.index.Rooms()),
		}
	}

	if h.llmEnabled {
		components["llm"] = "enabled"
	} else {
		components["llm"] = "disabled"
	}

	response := HealthResponse{
		Status:     overallStatus,
		Timestamp:  time.Now(),
		Service:    "docent",
		Components: components,
	}

	statusCode := http.StatusOK
	if overallStatus != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Error encoding health response",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}
