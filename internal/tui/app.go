// Package tui is the full-screen release session: the same status, prompt
// and confirmation steps as the line console, drawn with Bubbletea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/roster/internal/expression"
	"github.com/Iron-Ham/roster/internal/logging"
	"github.com/Iron-Ham/roster/internal/roster"
	"github.com/Iron-Ham/roster/internal/tui/styles"
)

// ErrCanceled is returned when the user quits before releasing anyone.
var ErrCanceled = errors.New("release canceled")

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
	logger  *logging.Logger
}

// New creates a new TUI application for r.
func New(r roster.Roster, parser expression.Parser, logger *logging.Logger, palette *styles.ColorPalette) *App {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &App{
		model:  NewModel(r, parser, logger, styles.New(palette)),
		logger: logger,
	}
}

// Run starts the TUI and blocks until the user exits. It returns the roster
// left after the release, or the original roster with ErrCanceled when the
// user quit first.
func (a *App) Run(ctx context.Context) (roster.Roster, error) {
	a.program = tea.NewProgram(
		a.model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	// Quit cleanly on termination so the terminal is restored
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-sigChan:
			a.program.Quit()
		case <-done:
		}
	}()

	final, err := a.program.Run()
	if err != nil {
		a.logger.Error("tui exited with error", "error", err.Error())
		return a.model.Roster(), fmt.Errorf("failed to run TUI: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return a.model.Roster(), fmt.Errorf("unexpected TUI model type %T", final)
	}
	if m.Canceled() {
		a.logger.Info("release canceled")
		return m.Roster(), ErrCanceled
	}
	return m.Roster(), nil
}

// Run is a convenience wrapper that creates an App and runs it.
func Run(ctx context.Context, r roster.Roster, parser expression.Parser, logger *logging.Logger, palette *styles.ColorPalette) (roster.Roster, error) {
	return New(r, parser, logger, palette).Run(ctx)
}
