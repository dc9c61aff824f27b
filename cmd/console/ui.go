package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/docent/pkg/agent"
	"github.com/jwebster45206/docent/pkg/world"
)

const (
	PlaceHolderText = "Say something to the guide..."
	tickInterval    = 100 * time.Millisecond
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	agent *agent.Agent
	host  *simHost
	index *world.Index

	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int

	// lines merges agent speech and guest input in arrival order.
	lines    []transcriptEntry
	consumed int // host transcript entries already merged

	awaitingInput bool
	copied        bool

	// Quit confirmation state
	showQuitModal bool
}

type simTickMsg time.Time

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	agentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(a *agent.Agent, host *simHost, index *world.Index) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 500
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		agent:        a,
		host:         host,
		index:        index,
		textarea:     ta,
		chatViewport: chatVp,
		metaViewport: metaVp,
	}
}

func simTick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return simTickMsg(t)
	})
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, simTick())
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		return m, vpCmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		chatWidth := int(float64(m.width)*0.75) - 4
		metaWidth := m.width - chatWidth - 6

		m.chatViewport.Width = chatWidth - 2
		m.chatViewport.Height = m.height - 7
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4
		m.textarea.SetWidth(chatWidth - 4)

		m.ready = true
		m.writeChatContent()
		m.metaViewport.SetContent(m.writeMetadata())

	case simTickMsg:
		// One simulation step per UI tick.
		m.host.step(tickInterval.Seconds())
		m.agent.Tick(context.Background())

		if m.host.inputRequested {
			m.host.inputRequested = false
			m.agent.SetAwaitingInput(true)
			m.awaitingInput = true
			m.textarea.Focus()
		}
		if m.consumed < len(m.host.transcript) {
			m.lines = append(m.lines, m.host.transcript[m.consumed:]...)
			m.consumed = len(m.host.transcript)
			m.copied = false
		}

		m.writeChatContent()
		m.metaViewport.SetContent(m.writeMetadata())
		return m, simTick()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.showQuitModal = true
			return m, nil

		case tea.KeyEsc:
			if m.awaitingInput {
				// Cancelled: the guide carries on without a guest line.
				m.agent.SetPlayerSaid("")
				m.agent.SetAwaitingInput(false)
				m.awaitingInput = false
				m.textarea.Reset()
				m.textarea.Blur()
				return m, nil
			}
			m.showQuitModal = true
			return m, nil

		case tea.KeyCtrlY:
			if err := clipboard.WriteAll(m.agent.LastFullPrompt()); err == nil {
				m.copied = true
			}
			return m, nil

		case tea.KeyEnter:
			if !m.awaitingInput {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			m.lines = append(m.lines, transcriptEntry{Speaker: "You", Text: input, At: time.Now()})
			m.agent.SetPlayerSaid(input)
			m.agent.SetAwaitingInput(false)
			m.awaitingInput = false
			m.textarea.Reset()
			m.textarea.Blur()
			m.writeChatContent()
			return m, nil
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6
	if chatWidth < 20 {
		chatWidth = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("DOCENT") + "\n\n")
	content.WriteString("A guided tour, simulated. The guide moves on its own;\n")
	content.WriteString("answer when it asks.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth-6)) + "\n\n")

	for _, line := range m.lines {
		style := agentStyle
		if line.Speaker == "You" {
			style = userStyle
		}
		content.WriteString(speakerStyle.Render(line.Speaker+": ") +
			style.Render(wordwrap.String(line.Text, chatWidth-len(line.Speaker)-2)) + "\n\n")
	}

	if m.agent.Turns().Busy() {
		content.WriteString(loadingStyle.Render("The guide is thinking...") + "\n")
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m *ConsoleUI) writeMetadata() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("AGENT") + "\n\n")

	content.WriteString("Name:\n")
	content.WriteString(m.agent.Name() + "\n\n")

	content.WriteString("State:\n")
	content.WriteString(m.agent.State().String() + "\n\n")

	content.WriteString("Room:\n")
	if room := m.agent.CurrentRoom(); room != nil {
		content.WriteString(room.ID + "\n\n")
	} else {
		content.WriteString("(none)\n\n")
	}

	pos := m.host.AgentPosition()
	content.WriteString("Position:\n")
	content.WriteString(fmt.Sprintf("%.0f, %.0f\n\n", pos.X, pos.Y))

	content.WriteString("Recent rooms:\n")
	if places := m.agent.RecentPlaces(); len(places) > 0 {
		for _, p := range places {
			content.WriteString("• " + p + "\n")
		}
		content.WriteString("\n")
	} else {
		content.WriteString("None yet\n\n")
	}

	if m.copied {
		content.WriteString(loadingStyle.Render("Prompt copied!") + "\n\n")
	}

	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• Esc: Dismiss input\n")
	content.WriteString("• Ctrl+Y: Copy prompt\n")

	return content.String()
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if m.awaitingInput {
					m.textarea.Focus()
					return m, textarea.Blink
				}
				return m, nil
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("End the Tour?"))
	content.WriteString("\n\n")
	content.WriteString("The guide will forget this conversation.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", chatWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}
