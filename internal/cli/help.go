package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SignalCyan)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(Slate).
			Italic(true).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(SignalAmber).
				MarginTop(1)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(SignalTeal).
			Bold(true)

	helpArgStyle = lipgloss.NewStyle().
			Foreground(SignalOrange).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(Slate).
				Italic(true)
)

// StyledHelpPrinter renders kong help with the CLI palette.
func StyledHelpPrinter(options kong.HelpOptions, ctx *kong.Context) error {
	var sb strings.Builder

	node := ctx.Selected()
	if node == nil {
		node = ctx.Model.Node
	}

	sb.WriteString(helpTitleStyle.Render(appName))
	sb.WriteString("\n")

	if help := node.Help; help != "" {
		sb.WriteString(helpDescStyle.Render(help))
		sb.WriteString("\n")
	}

	sb.WriteString(helpSectionStyle.Render("Usage:"))
	sb.WriteString("\n  ")
	sb.WriteString(node.Summary())
	sb.WriteString("\n")

	if cmds := node.Leaves(true); node == ctx.Model.Node && len(cmds) > 0 {
		sb.WriteString("\n")
		sb.WriteString(helpSectionStyle.Render("Commands:"))
		sb.WriteString("\n")

		for _, cmd := range cmds {
			sb.WriteString("  ")
			sb.WriteString(helpArgStyle.Render(cmd.Path()))

			if cmd.Help != "" {
				sb.WriteString("  ")
				sb.WriteString(cmd.Help)
			}

			sb.WriteString("\n")
		}
	}

	if len(node.Positional) > 0 {
		sb.WriteString("\n")
		sb.WriteString(helpSectionStyle.Render("Arguments:"))
		sb.WriteString("\n")

		for _, arg := range node.Positional {
			sb.WriteString("  ")
			sb.WriteString(helpArgStyle.Render(arg.Summary()))

			if arg.Help != "" {
				sb.WriteString("  ")
				sb.WriteString(arg.Help)
			}

			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(helpSectionStyle.Render("Flags:"))
	sb.WriteString("\n")

	for _, f := range collectFlags(node) {
		sb.WriteString("  ")
		sb.WriteString(helpFlagStyle.Render(f.flags))

		if f.help != "" {
			sb.WriteString("  ")
			sb.WriteString(f.help)
		}

		if f.defaultVal != "" {
			sb.WriteString(" ")
			sb.WriteString(helpDefaultStyle.Render("(default: " + f.defaultVal + ")"))
		}

		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	fmt.Fprint(ctx.Stdout, sb.String())

	return nil
}

type flag struct {
	flags      string
	help       string
	defaultVal string
}

func collectFlags(node *kong.Node) []flag {
	flags := []flag{{flags: "-h, --help", help: "Show context-sensitive help."}}

	for _, group := range node.AllFlags(true) {
		for _, f := range group {
			if f.Name == "help" {
				continue
			}

			flags = append(flags, describeFlag(f))
		}
	}

	return flags
}

func describeFlag(f *kong.Flag) flag {
	flagStr := "--" + f.Name
	if f.Short != 0 {
		flagStr = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
	}

	if !f.IsBool() {
		flagStr += "=" + strings.ToUpper(f.FormatPlaceHolder())
	}

	defaultVal := ""
	if f.HasDefault && !f.IsBool() && f.Default != "" {
		defaultVal = f.Default
	}

	return flag{flags: flagStr, help: f.Help, defaultVal: defaultVal}
}
