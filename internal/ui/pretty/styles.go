// Package pretty renders mdcst output: token tables, CST trees, edit
// previews and check summaries, styled with Lipgloss when color is enabled.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/yaklabco/mdcst/pkg/config"
)

// defaultTermWidth is used when the output is not a terminal.
const defaultTermWidth = 100

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Token and tree styles
	Statement lipgloss.Style
	TokenKind lipgloss.Style
	Lexeme    lipgloss.Style
	Literal   lipgloss.Style
	Index     lipgloss.Style
	Guide     lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	FilePath lipgloss.Style
	Success  lipgloss.Style
	Failure  lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style

	color bool
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	verbatim := lipgloss.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return &Styles{
		Statement: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		TokenKind: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Lexeme:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Literal:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Index:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Guide:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		DiffAdd:     verbatim.Foreground(lipgloss.Color("10")),
		DiffRemove:  verbatim.Foreground(lipgloss.Color("9")),
		DiffContext: verbatim.Foreground(lipgloss.Color("8")),

		FilePath: lipgloss.NewStyle().Bold(true),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),

		color: true,
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Statement:   plain,
		TokenKind:   plain,
		Lexeme:      plain,
		Literal:     plain,
		Index:       plain,
		Guide:       plain,
		DiffHeader:  plain,
		DiffHunk:    plain,
		DiffAdd:     plain,
		DiffRemove:  plain,
		DiffContext: plain,
		FilePath:    plain,
		Success:     plain,
		Failure:     plain,
		Dim:         plain,
		Bold:        plain,
	}
}

// Render applies style to s. Without color s is returned untouched, so plain
// output stays byte-exact.
func (s *Styles) Render(style lipgloss.Style, text string) string {
	if !s.color || text == "" {
		return text
	}
	return style.Render(text)
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode config.ColorMode, writer io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// TerminalWidth returns the width of the terminal behind writer, or a
// default when writer is not a terminal.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
