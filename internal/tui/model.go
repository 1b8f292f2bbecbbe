package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/roster/internal/article"
	"github.com/Iron-Ham/roster/internal/console"
	"github.com/Iron-Ham/roster/internal/expression"
	"github.com/Iron-Ham/roster/internal/logging"
	"github.com/Iron-Ham/roster/internal/roster"
	"github.com/Iron-Ham/roster/internal/tui/styles"
)

// phase is where the session currently is.
type phase int

const (
	phaseStatus phase = iota // showing the prison, waiting to start
	phasePrompt              // reading a release expression
	phaseDone                // release applied, waiting for a key to exit
)

// Model is the Bubbletea model for a release session
type Model struct {
	roster   roster.Roster
	parser   expression.Parser
	logger   *logging.Logger
	styles   *styles.Styles
	input    textinput.Model
	phase    phase
	showList bool
	errorMsg string
	released article.Set
	width    int
	height   int
	canceled bool
}

// NewModel creates a model for releasing prisoners from r.
func NewModel(r roster.Roster, parser expression.Parser, logger *logging.Logger, st *styles.Styles) Model {
	if logger == nil {
		logger = logging.NopLogger()
	}
	if st == nil {
		st = styles.New(nil)
	}

	ti := textinput.New()
	ti.Placeholder = string([]rune{'1', parser.Separator, '3', parser.RangeSeparator, '5'})
	ti.CharLimit = 200
	ti.Width = 40

	return Model{
		roster: r,
		parser: parser,
		logger: logger,
		styles: st,
		input:  ti,
		phase:  phaseStatus,
	}
}

// Roster returns the current roster.
func (m Model) Roster() roster.Roster {
	return m.roster
}

// Canceled reports whether the user quit before a release was applied.
func (m Model) Canceled() bool {
	return m.canceled
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}

		switch m.phase {
		case phaseStatus:
			return m.handleStatusKeypress(msg)
		case phasePrompt:
			return m.handlePromptKeypress(msg)
		case phaseDone:
			return m, tea.Quit
		}
	}

	return m, nil
}

// quit leaves the session; it only counts as canceled before the release.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.phase != phaseDone {
		m.canceled = true
	}
	return m, tea.Quit
}

func (m Model) handleStatusKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case console.ShowPrisonersCommand:
		m.showList = !m.showList
		return m, nil

	case "enter":
		m.phase = phasePrompt
		m.showList = false
		return m, m.input.Focus()

	case "q", "esc":
		return m.quit()
	}

	return m, nil
}

func (m Model) handlePromptKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.quit()

	case tea.KeyEnter:
		text := m.input.Value()
		excluded, err := m.parser.Parse(text)
		if err != nil {
			m.logger.WithPhase("prompt").Warn("expression rejected", "input", text, "error", err.Error())
			m.errorMsg = "Article numbers entered incorrectly, please try again..."
			m.input.SetValue("")
			return m, nil
		}

		before := m.roster.Count()
		m.roster = m.roster.Release(excluded)
		m.released = excluded
		m.errorMsg = ""
		m.phase = phaseDone
		m.input.Blur()

		m.logger.WithPhase("release").Info("prisoners released",
			"articles", m.parser.Compact(excluded),
			"released", before-m.roster.Count(),
			"remaining", m.roster.Count(),
		)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	if m.phase == phaseDone {
		b.WriteString(m.styles.Title.Render("Prisoners under the following articles will be amnestied and released:"))
		b.WriteString("\n")
		b.WriteString(m.styles.Released.Render(m.parser.Format(m.released)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderStatus())

	switch m.phase {
	case phaseStatus:
		b.WriteString(m.renderHelp("1", "list prisoners", "enter", "release", "q", "quit"))

	case phasePrompt:
		b.WriteString("\n")
		b.WriteString(m.styles.Prompt.Render(console.PromptText(m.parser)))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		if m.errorMsg != "" {
			b.WriteString(m.styles.Error.Render(m.errorMsg))
			b.WriteString("\n")
		}
		b.WriteString(m.renderHelp("enter", "release", "esc", "quit"))

	case phaseDone:
		b.WriteString(m.renderHelp("any key", "exit"))
	}

	return b.String()
}

func (m Model) renderStatus() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(console.StatusLine(m.roster)))
	b.WriteString("\n")
	b.WriteString("They have the following articles:")
	b.WriteString(m.styles.Article.Render(m.roster.Articles().Join(", ")))
	b.WriteString("\n")

	if m.showList || m.phase == phaseDone {
		b.WriteString(m.renderPrisoners())
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderPrisoners() string {
	if m.roster.IsEmpty() {
		return m.styles.Warning.Render("Prison is empty..")
	}

	nameWidth := nameColumnWidth(m.width)
	lines := make([]string, 0, m.roster.Count())
	for _, p := range m.roster.Prisoners() {
		lines = append(lines, fitName(p.Name, nameWidth)+"  "+m.styles.Article.Render(p.Article.String()))
	}
	return m.styles.ContentBox.Render(strings.Join(lines, "\n"))
}

// renderHelp renders alternating key/description pairs.
func (m Model) renderHelp(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, m.styles.HelpKey.Render(pairs[i])+" "+pairs[i+1])
	}
	return m.styles.HelpBar.Render(strings.Join(parts, " • "))
}
