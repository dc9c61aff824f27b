package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/jwebster45206/docent/internal/bridge"
	"github.com/jwebster45206/docent/internal/config"
	"github.com/jwebster45206/docent/internal/handlers"
	"github.com/jwebster45206/docent/internal/logger"
	"github.com/jwebster45206/docent/internal/services"
	"github.com/jwebster45206/docent/pkg/world"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("Starting Docent bridge",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"model_name", cfg.ModelName,
		"world_file", cfg.WorldFile)

	index, err := world.Load(cfg.WorldFile)
	if err != nil {
		log.Error("Failed to load world", "error", err, "file", cfg.WorldFile)
		os.Exit(1)
	}
	worldName := strings.TrimSuffix(filepath.Base(cfg.WorldFile), filepath.Ext(cfg.WorldFile))

	var llmService services.LLMService
	llmEnabled := cfg.Enabled && cfg.OpenAIKey != ""
	if llmEnabled {
		llmService = services.NewOpenAIService(cfg.OpenAIKey, cfg.OpenAIURL, cfg.ModelName, cfg.Temperature)
	} else {
		// Sessions still run without a key; the agent thinks canned
		// thoughts instead of calling out.
		log.Warn("Completion service disabled, using mock replies",
			"llm_enabled", cfg.Enabled, "key_set", cfg.OpenAIKey != "")
		llmService = services.NewMockLLM()
	}

	mux := http.NewServeMux()
	mux.Handle("/health", handlers.NewHealthHandler(index, llmEnabled, log))
	mux.Handle("/ws", bridge.NewServer(log, index, llmService, cfg.AgentName, worldName, cfg.MaxLogEntries))

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: websocket sessions outlive any sane value.
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
