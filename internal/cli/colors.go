package cli

import "github.com/charmbracelet/lipgloss"

// Signal-chain palette shared by the CLI output and the progress UI.
var (
	// Cool to hot, in the order a signal passes through the chain.
	SignalTeal   = lipgloss.Color("#2EC4B6")
	SignalCyan   = lipgloss.Color("#48CAE4")
	SignalAmber  = lipgloss.Color("#FFB703")
	SignalOrange = lipgloss.Color("#FB8500")

	// Muted text.
	Slate = lipgloss.Color("#8D99AE")
)
