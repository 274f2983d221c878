package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const appName = "fxchain"

var (
	errorColor   = lipgloss.Color("#E63946")
	successColor = lipgloss.Color("#06D6A0")
	textColor    = lipgloss.Color("#FFFFFF")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SignalCyan).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Slate).
			Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SignalAmber).
			MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SignalOrange)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Slate)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SignalTeal).
			Padding(1, 2)
)

// PrintVersion prints version information.
func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render(appName))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
}

// PrintError prints an error message to stderr.
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintWarning prints a warning message to stderr.
func PrintWarning(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", WarningStyle.Render("Warning:"), message)
}

// PrintSuccess prints a success message.
func PrintSuccess(message string) {
	fmt.Printf("%s %s\n", SuccessStyle.Render("✓"), message)
}

// PrintInfo prints a key/value line.
func PrintInfo(key, value string) {
	fmt.Printf("%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}

// PrintSection prints a section header.
func PrintSection(title string) {
	fmt.Println(HeaderStyle.Render(title))
}

// WriteTable writes rows as aligned columns with a styled header row.
func WriteTable(w io.Writer, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], len(cell))
			}
		}
	}

	line := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = style.Render(fmt.Sprintf("%*s", widths[i], cell))
		}

		return strings.Join(parts, "  ")
	}

	fmt.Fprintln(w, line(header, KeyStyle))

	for _, row := range rows {
		fmt.Fprintln(w, line(row, lipgloss.NewStyle()))
	}
}

// FormatDuration formats a duration for summaries.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	return fmt.Sprintf("%.1fs", d.Seconds())
}

// FormatSpeed formats a render speed relative to real time.
func FormatSpeed(audio, elapsed time.Duration) string {
	if elapsed <= 0 {
		return "-"
	}

	return fmt.Sprintf("%.1fx realtime", float64(audio)/float64(elapsed))
}

// PrintRenderSummary prints the outcome of a render in a box.
func PrintRenderSummary(output string, audio, elapsed time.Duration, rejected int) {
	var b strings.Builder

	b.WriteString(SuccessStyle.Render("✓ Render complete"))
	b.WriteString("\n\n")
	b.WriteString(KeyStyle.Render("Output:   "))
	b.WriteString(ValueStyle.Render(output))
	b.WriteString("\n")
	b.WriteString(KeyStyle.Render("Audio:    "))
	b.WriteString(ValueStyle.Render(FormatDuration(audio)))
	b.WriteString("\n")
	b.WriteString(KeyStyle.Render("Speed:    "))
	b.WriteString(ValueStyle.Render(FormatSpeed(audio, elapsed)))

	if rejected > 0 {
		b.WriteString("\n")
		b.WriteString(WarningStyle.Render(fmt.Sprintf("%d blocks silenced (too many channels)", rejected)))
	}

	fmt.Println(BoxStyle.Render(b.String()))
}
