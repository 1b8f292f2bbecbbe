// Package styles holds the lipgloss styles shared by the line console and the
// full-screen interface, built from a named or user-supplied color palette.
package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles is a set of lipgloss styles rendered for one output.
type Styles struct {
	Palette *ColorPalette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Prompt   lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Muted    lipgloss.Style
	Text     lipgloss.Style
	Released lipgloss.Style
	Article  lipgloss.Style

	// Help bar
	HelpBar lipgloss.Style
	HelpKey lipgloss.Style

	// Content area
	ContentBox lipgloss.Style
}

// New builds styles for the default lipgloss renderer.
func New(p *ColorPalette) *Styles {
	return build(lipgloss.DefaultRenderer(), p)
}

// NewForWriter builds styles whose color profile matches w. Writers that are
// not terminals, like a bytes.Buffer in tests, get plain text.
func NewForWriter(w io.Writer, p *ColorPalette) *Styles {
	return build(lipgloss.NewRenderer(w), p)
}

func build(r *lipgloss.Renderer, p *ColorPalette) *Styles {
	if p == nil {
		p = DefaultPalette()
	}

	return &Styles{
		Palette: p,

		Title: r.NewStyle().
			Bold(true).
			Foreground(p.Primary),

		Subtitle: r.NewStyle().
			Foreground(p.Muted).
			Italic(true),

		Prompt: r.NewStyle().
			Bold(true).
			Foreground(p.Primary),

		Error:    r.NewStyle().Foreground(p.Error),
		Warning:  r.NewStyle().Foreground(p.Warning),
		Muted:    r.NewStyle().Foreground(p.Muted),
		Text:     r.NewStyle().Foreground(p.Text),
		Released: r.NewStyle().Foreground(p.Secondary),
		Article:  r.NewStyle().Foreground(p.Article),

		HelpBar: r.NewStyle().
			Foreground(p.Muted).
			MarginTop(1),

		HelpKey: r.NewStyle().
			Bold(true).
			Foreground(p.Secondary),

		ContentBox: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
	}
}

// Resolve returns the palette for a theme file when one is given, otherwise
// for the named built-in theme.
func Resolve(theme, themeFile string) (*ColorPalette, error) {
	if themeFile != "" {
		tf, err := LoadThemeFile(themeFile)
		if err != nil {
			return nil, err
		}
		return tf.ToPalette(), nil
	}
	return GetPalette(ThemeName(theme)), nil
}
