// Package ui renders live progress for offline renders.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-fxchain/internal/cli"
)

// RenderProgress reports how far a render has got.
type RenderProgress struct {
	Frames      int64
	TotalFrames int64 // 0 when the source length is unknown
	SampleRate  float64
	Elapsed     time.Duration
}

// RenderComplete signals the end of a render.
type RenderComplete struct {
	Output   string
	Frames   int64
	Blocks   int
	Rejected int
	Elapsed  time.Duration
	Err      error
}

type progressQuitMsg struct{}

// Model is the bubbletea model for a single render.
type Model struct {
	progressBar     progress.Model
	input           string
	state           RenderProgress
	complete        *RenderComplete
	completionDelay time.Duration
	width           int
	cancelled       bool
}

// NewModel returns a progress model for rendering input.
func NewModel(input string) *Model {
	p := progress.New(
		progress.WithGradient(string(cli.SignalTeal), string(cli.SignalAmber)),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return &Model{
		progressBar:     p,
		input:           input,
		completionDelay: 500 * time.Millisecond,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progressBar.Width = max(10, min(msg.Width-30, 50))

		return m, nil

	case RenderProgress:
		m.state = msg

		return m, nil

	case RenderComplete:
		m.complete = &msg

		return m, tea.Tick(m.completionDelay, func(time.Time) tea.Msg {
			return progressQuitMsg{}
		})

	case progressQuitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if m.complete != nil {
			return m, tea.Quit
		}

		if msg.String() == "ctrl+c" {
			m.cancelled = true

			return m, tea.Quit
		}
	}

	return m, nil
}

// Cancelled reports whether the user pressed ctrl+c before completion.
func (m *Model) Cancelled() bool { return m.cancelled }

// Complete returns the completion message, or nil while rendering.
func (m *Model) Complete() *RenderComplete { return m.complete }

// View implements tea.Model.
func (m *Model) View() string {
	var s strings.Builder

	s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(cli.SignalCyan).Render("Rendering " + m.input))
	s.WriteString("\n\n")

	percent := m.percent()

	s.WriteString("Progress: ")
	s.WriteString(m.progressBar.ViewAs(percent))
	s.WriteString(fmt.Sprintf(" %5.1f%%", percent*100))
	s.WriteString("\n\n")

	audio := m.audioDuration()
	timing := fmt.Sprintf("Audio: %s │ Time: %s │ Speed: %s",
		formatDuration(audio),
		formatDuration(m.state.Elapsed),
		formatSpeed(audio, m.state.Elapsed))

	if eta, ok := m.eta(); ok {
		timing += " │ ETA: " + formatDuration(eta)
	}

	s.WriteString(lipgloss.NewStyle().Faint(true).Render(timing))

	if m.complete != nil && m.complete.Err == nil {
		s.WriteString("\n\n")
		s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(cli.SignalTeal).Render("✓ " + m.complete.Output))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cli.SignalTeal).
		Padding(1, 2)

	return box.Render(s.String()) + "\n"
}

func (m *Model) percent() float64 {
	if m.complete != nil && m.complete.Err == nil {
		return 1
	}

	if m.state.TotalFrames <= 0 {
		return 0
	}

	return min(1, float64(m.state.Frames)/float64(m.state.TotalFrames))
}

func (m *Model) audioDuration() time.Duration {
	if m.state.SampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(m.state.Frames) / m.state.SampleRate * float64(time.Second))
}

func (m *Model) eta() (time.Duration, bool) {
	if m.state.Frames <= 0 || m.state.TotalFrames <= m.state.Frames || m.complete != nil {
		return 0, false
	}

	return m.state.Elapsed * time.Duration(m.state.TotalFrames-m.state.Frames) / time.Duration(m.state.Frames), true
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}

	return fmt.Sprintf("%02d:%02d", m, s)
}

func formatSpeed(audio, elapsed time.Duration) string {
	if elapsed <= 0 || audio <= 0 {
		return "-"
	}

	return fmt.Sprintf("%.1fx realtime", float64(audio)/float64(elapsed))
}
