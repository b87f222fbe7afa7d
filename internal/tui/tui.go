// Package tui provides a Bubble Tea terminal client for the streaming
// API: type titles, pick one choice per title, kick off the downloads.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500")).
			Bold(true)
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateSearching
	StateChoosing
	StateSubmitting
	StateComplete
	StateError
)

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	titles   textarea.Model
	spinner  spinner.Model
	client   *APIClient
	podcasts bool
	err      error

	// Selection session
	sessionID string
	choices   [][]string

	// Cursor position and the chosen index per group
	group    int
	cursor   int
	selected []int

	width  int
	height int
}

// NewModel creates a new TUI model talking to the API at apiURL.
func NewModel(apiURL string) Model {
	ta := textarea.New()
	ta.Placeholder = "One title per line..."
	ta.Focus()
	ta.SetWidth(60)
	ta.SetHeight(6)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	return Model{
		state:   StateInput,
		titles:  ta,
		spinner: sp,
		client:  NewAPIClient(apiURL),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// Message types
type (
	// SearchDoneMsg is sent when /select answers.
	SearchDoneMsg struct {
		SessionID string
		Choices   [][]string
		Err       error
	}

	// DownloadDoneMsg is sent when /download acknowledges.
	DownloadDoneMsg struct {
		Err error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateChoosing {
				// Back to input; the session is abandoned server side.
				m.state = StateInput
				m.titles.Focus()
				return m, nil
			}

		case "ctrl+p":
			if m.state == StateInput {
				m.podcasts = !m.podcasts
			}

		case "ctrl+s":
			if m.state == StateInput && strings.TrimSpace(m.titles.Value()) != "" {
				m.state = StateSearching
				return m, tea.Batch(m.search(), m.spinner.Tick)
			}

		case "up", "k":
			if m.state == StateChoosing && m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.state == StateChoosing && m.cursor < len(m.choices[m.group])-1 {
				m.cursor++
			}

		case "tab":
			if m.state == StateChoosing {
				m.selected[m.group] = m.cursor
				m.group = (m.group + 1) % len(m.choices)
				m.cursor = m.selected[m.group]
			}

		case "enter":
			if m.state == StateChoosing {
				m.selected[m.group] = m.cursor
				if m.group < len(m.choices)-1 {
					m.group++
					m.cursor = m.selected[m.group]
					return m, nil
				}
				m.state = StateSubmitting
				return m, tea.Batch(m.download(), m.spinner.Tick)
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m.state = StateInput
				m.err = nil
				m.sessionID = ""
				m.choices = nil
				m.selected = nil
				m.group = 0
				m.cursor = 0
				m.titles.SetValue("")
				m.titles.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case SearchDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else if len(msg.Choices) == 0 {
			m.state = StateError
			m.err = fmt.Errorf("no results for any title")
		} else {
			m.sessionID = msg.SessionID
			m.choices = msg.Choices
			m.selected = make([]int, len(msg.Choices))
			m.group = 0
			m.cursor = 0
			m.state = StateChoosing
		}

	case DownloadDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.state = StateComplete
		}
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.titles, cmd = m.titles.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("♪ Streaming Downloader"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Search, choose, download"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateSearching:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render("Searching..."))
	case StateChoosing:
		b.WriteString(m.viewChoosing())
	case StateSubmitting:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render("Submitting download..."))
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter titles, one per line:"))
	b.WriteString("\n\n")
	b.WriteString(m.titles.View())
	b.WriteString("\n\n")

	podcastCheck := "[ ]"
	if m.podcasts {
		podcastCheck = "[x]"
	}
	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Search podcasts instead of music (ctrl+p)\n", podcastCheck))

	return b.String()
}

func (m Model) viewChoosing() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Title %d of %d", m.group+1, len(m.choices))))
	b.WriteString("\n\n")

	for i, preview := range m.choices[m.group] {
		switch {
		case i == m.cursor:
			b.WriteString(selectedStyle.Render("> " + preview))
		case i == m.selected[m.group]:
			b.WriteString(successStyle.Render("  " + preview))
		default:
			b.WriteString(dimStyle.Render("  " + preview))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewComplete() string {
	return boxStyle.Render(fmt.Sprintf(
		"✓ Download accepted!\n\n"+
			"Session: %s\n"+
			"Titles:  %d",
		m.sessionID,
		len(m.choices),
	))
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "ctrl+s: search • ctrl+p: podcasts • esc: quit"
	case StateChoosing:
		return "↑/↓: move • tab: next title • enter: confirm • esc: back"
	case StateComplete, StateError:
		return "r: new search • q: quit"
	}
	return ""
}

// search calls /select with the typed titles.
func (m *Model) search() tea.Cmd {
	titles := m.titles.Value()
	queryType := "music"
	if m.podcasts {
		queryType = "podcast"
	}

	client := m.client
	return func() tea.Msg {
		result, err := client.Select(context.Background(), titles, queryType)
		if err != nil {
			return SearchDoneMsg{Err: err}
		}
		return SearchDoneMsg{SessionID: result.SessionID, Choices: result.Choices}
	}
}

// download calls /download with one chosen index per group.
func (m *Model) download() tea.Cmd {
	client := m.client
	sessionID := m.sessionID
	indices := make([]int, len(m.selected))
	copy(indices, m.selected)

	return func() tea.Msg {
		return DownloadDoneMsg{Err: client.Download(context.Background(), sessionID, indices)}
	}
}

// Run starts the TUI application against the API at apiURL.
func Run(apiURL string) error {
	p := tea.NewProgram(NewModel(apiURL), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
