package tui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/roster/internal/expression"
	"github.com/Iron-Ham/roster/internal/logging"
	"github.com/Iron-Ham/roster/internal/roster"
	"github.com/Iron-Ham/roster/internal/tui/styles"
)

func sampleRoster() roster.Roster {
	return roster.New([]roster.Prisoner{
		{Name: "Ivan Petrov", Article: 3},
		{Name: "Oleg Sidorov", Article: 7},
		{Name: "Anna Ivanova", Article: 3},
		{Name: "Pavel Orlov", Article: 12},
	})
}

func newTestModel(t *testing.T, logger *logging.Logger) Model {
	t.Helper()
	var buf bytes.Buffer
	return NewModel(sampleRoster(), expression.Default(), logger, styles.NewForWriter(&buf, nil))
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, want Model", next)
	}
	return got, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// submit moves m to the prompt and enters text.
func submit(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m.input.SetValue(text)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	return m
}

func TestModel_StatusView(t *testing.T) {
	m := newTestModel(t, nil)
	view := m.View()

	for _, want := range []string{
		"There are 4 prisoners in the prison.",
		"They have the following articles:article N3, article N7, article N12",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q\n%s", want, view)
		}
	}
	if strings.Contains(view, "Ivan Petrov") {
		t.Error("prisoners should not be listed until requested")
	}
}

func TestModel_ToggleList(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = update(t, m, keyRunes("1"))
	if !strings.Contains(m.View(), "Ivan Petrov") {
		t.Errorf("pressing 1 should list prisoners:\n%s", m.View())
	}

	m, _ = update(t, m, keyRunes("1"))
	if strings.Contains(m.View(), "Ivan Petrov") {
		t.Error("pressing 1 again should hide the list")
	}
}

func TestModel_EnterShowsPrompt(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.phase != phasePrompt {
		t.Fatalf("phase = %v, want prompt", m.phase)
	}
	if !m.input.Focused() {
		t.Error("input should be focused")
	}
	if !strings.Contains(m.View(), promptText) {
		t.Errorf("View() missing prompt:\n%s", m.View())
	}
}

const promptText = `Prisoners under what articles should be released? (separated by "," or interval separated by "-")`

func TestModel_TypingUpdatesInput(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = update(t, m, keyRunes("7"))
	m, _ = update(t, m, keyRunes(","))
	m, _ = update(t, m, keyRunes("3"))

	if got := m.input.Value(); got != "7,3" {
		t.Errorf("input = %q, want %q", got, "7,3")
	}
}

func TestModel_RejectsInvalidExpression(t *testing.T) {
	var logs bytes.Buffer
	m := newTestModel(t, logging.NewWriterLogger(&logs, logging.LevelInfo))

	for _, text := range []string{"abc", "1-2-3", "0-2", ""} {
		m = submit(t, m, text)

		if m.phase != phasePrompt {
			t.Fatalf("%q: phase = %v, want prompt", text, m.phase)
		}
		if m.Roster().Count() != 4 {
			t.Errorf("%q: roster changed to %d prisoners", text, m.Roster().Count())
		}
		if !strings.Contains(m.View(), "Article numbers entered incorrectly, please try again...") {
			t.Errorf("%q: View() missing retry message", text)
		}
		if m.input.Value() != "" {
			t.Errorf("%q: input should be cleared, got %q", text, m.input.Value())
		}
		// back to status-like state for the next submit
		m.phase = phaseStatus
	}

	if !strings.Contains(logs.String(), `"msg":"expression rejected"`) {
		t.Errorf("missing rejection log:\n%s", logs.String())
	}
}

func TestModel_ReleasesOnValidExpression(t *testing.T) {
	var logs bytes.Buffer
	m := newTestModel(t, logging.NewWriterLogger(&logs, logging.LevelInfo))

	m = submit(t, m, "3,12")

	if m.phase != phaseDone {
		t.Fatalf("phase = %v, want done", m.phase)
	}
	if got := m.Roster().Count(); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}

	view := m.View()
	for _, want := range []string{
		"Prisoners under the following articles will be amnestied and released:",
		"article N3, article N12",
		"There are 1 prisoners in the prison.",
		"Oleg Sidorov",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q\n%s", want, view)
		}
	}
	if strings.Contains(view, "Article numbers entered incorrectly") {
		t.Error("valid input should not show the retry message")
	}
	if !strings.Contains(logs.String(), `"released":2`) {
		t.Errorf("release log should count 2 released prisoners:\n%s", logs.String())
	}

	m, cmd := update(t, m, keyRunes("x"))
	if !isQuit(cmd) {
		t.Error("any key after the release should quit")
	}
	if m.Canceled() {
		t.Error("finished session should not be canceled")
	}
}

func TestModel_ReleaseEveryone(t *testing.T) {
	m := submit(t, newTestModel(t, nil), "1-15")

	if !m.Roster().IsEmpty() {
		t.Errorf("Count() = %d, want 0", m.Roster().Count())
	}
	if !strings.Contains(m.View(), "Prison is empty..") {
		t.Errorf("View() should report an empty prison:\n%s", m.View())
	}
}

func TestModel_Cancel(t *testing.T) {
	tests := []struct {
		name   string
		prompt bool
		key    tea.KeyMsg
	}{
		{name: "q on status", key: keyRunes("q")},
		{name: "esc on status", key: tea.KeyMsg{Type: tea.KeyEsc}},
		{name: "esc on prompt", prompt: true, key: tea.KeyMsg{Type: tea.KeyEsc}},
		{name: "ctrl+c on prompt", prompt: true, key: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, nil)
			if tt.prompt {
				m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
			}

			m, cmd := update(t, m, tt.key)
			if !isQuit(cmd) {
				t.Error("expected quit command")
			}
			if !m.Canceled() {
				t.Error("Canceled() = false, want true")
			}
			if m.Roster().Count() != 4 {
				t.Errorf("roster changed on cancel: %d prisoners", m.Roster().Count())
			}
		})
	}
}

func TestModel_QInPromptIsInput(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = update(t, m, keyRunes("q"))
	if m.Canceled() || m.phase != phasePrompt {
		t.Error("q should be typed into the prompt, not quit")
	}
	if m.input.Value() != "q" {
		t.Errorf("input = %q, want %q", m.input.Value(), "q")
	}
}

func TestModel_WindowSize(t *testing.T) {
	m := newTestModel(t, nil)
	m.roster = roster.New([]roster.Prisoner{{Name: "Konstantin Konstantinopolsky", Article: 1}})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 20})
	m, _ = update(t, m, keyRunes("1"))

	view := m.View()
	if strings.Contains(view, "Konstantinopolsky") {
		t.Errorf("long name should be truncated at width 30:\n%s", view)
	}
	if !strings.Contains(view, "...") {
		t.Errorf("truncated name should end with an ellipsis:\n%s", view)
	}
}
