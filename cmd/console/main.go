package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/docent/internal/config"
	"github.com/jwebster45206/docent/internal/logger"
	"github.com/jwebster45206/docent/internal/services"
	"github.com/jwebster45206/docent/pkg/agent"
	"github.com/jwebster45206/docent/pkg/chat"
	"github.com/jwebster45206/docent/pkg/world"
)

func main() {
	cfg := config.Load()

	// The alternate screen owns stdout, so logs go to a file or nowhere.
	logWriter := io.Writer(io.Discard)
	if path := os.Getenv("CONSOLE_LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logWriter = f
	}
	log := logger.SetupWithWriter(cfg, logWriter)

	index, err := world.Load(cfg.WorldFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load world %s: %v\n", cfg.WorldFile, err)
		os.Exit(1)
	}
	if len(index.Rooms()) == 0 {
		fmt.Fprintf(os.Stderr, "World %s has no rooms\n", cfg.WorldFile)
		os.Exit(1)
	}

	var llmService services.LLMService
	if cfg.Enabled && cfg.OpenAIKey != "" {
		llmService = services.NewOpenAIService(cfg.OpenAIKey, cfg.OpenAIURL, cfg.ModelName, cfg.Temperature)
	} else {
		// Offline demo: walk the museum and point at the exhibits.
		mock := services.NewMockLLM()
		mock.QueueReplies(
			"say(Welcome! Do let me show you around.)",
			"go(fossil_gallery)",
			"examine(plesiosaur)",
			"say(Magnificent, isn't she? Recovered from the Dorset coast.)",
			"think(Perhaps the gift shop next.)",
		)
		llmService = mock
	}

	host := newSimHost(index.Rooms()[0].Position())
	a := agent.New(cfg.AgentName, host, index, chat.NewMemory(cfg.MaxLogEntries), llmService, log)

	p := tea.NewProgram(NewConsoleUI(a, host, index),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
