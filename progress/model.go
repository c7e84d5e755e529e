package progress

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/justapithecus/grove/pipeline"
	"github.com/justapithecus/grove/types"
)

// feedSize is the number of recent job status lines kept on screen.
const feedSize = 8

// JobMsg delivers one finished job to the view.
// Send it via (*tea.Program).Send from the coordinator's observer.
type JobMsg struct {
	Event pipeline.Event
}

// DoneMsg delivers the final run summary and ends the view.
type DoneMsg struct {
	Summary types.RunSummary
}

// Model is the Bubble Tea model for a pipeline run.
type Model struct {
	total     uint64
	completed uint64
	failed    uint64

	bar  progress.Model
	spin spinner.Model

	feed    []string
	done    bool
	summary types.RunSummary
	width   int
}

// New creates a progress model for a run over total entries.
func New(total int) Model {
	bar := progress.New(progress.WithDefaultGradient())
	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	return Model{
		total: uint64(total),
		bar:   bar,
		spin:  spin,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.spin.Tick
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(msg.Width-4, 60)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case JobMsg:
		m.completed = msg.Event.Completed
		m.failed = msg.Event.Failed
		m.feed = append(m.feed, statusLine(msg.Event))
		if len(m.feed) > feedSize {
			m.feed = m.feed[len(m.feed)-feedSize:]
		}
		return m, nil

	case DoneMsg:
		m.done = true
		m.summary = msg.Summary
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			// The run itself is cancelled via signal context; just
			// release the terminal.
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	if m.done {
		b.WriteString(summaryView(m.summary))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(TitleStyle.Render("Building grammars"))
	b.WriteString("\n\n")

	frac := 0.0
	if m.total > 0 {
		frac = float64(m.completed) / float64(m.total)
	}
	b.WriteString(m.bar.ViewAs(frac))
	b.WriteString("\n")

	counter := fmt.Sprintf("%s %d/%d completed", m.spin.View(), m.completed, m.total)
	b.WriteString(CounterStyle.Render(counter))
	if m.failed > 0 {
		b.WriteString("  ")
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("%d failed", m.failed)))
	}
	b.WriteString("\n\n")

	for _, line := range m.feed {
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func statusLine(e pipeline.Event) string {
	if e.Outcome.IsFailure() {
		return ErrorStyle.Render(fmt.Sprintf("✗ %s: %s", e.Entry.Name, e.Outcome.String()))
	}
	return SuccessStyle.Render(fmt.Sprintf("✓ %s", e.Entry.Name))
}

func summaryView(s types.RunSummary) string {
	line := fmt.Sprintf("All tasks completed. %d failed.", s.Failed)
	if s.Failed > 0 {
		return ErrorStyle.Render(line)
	}
	return SuccessStyle.Render(line)
}
