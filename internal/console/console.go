// Package console runs the line-based release session: show the prison,
// ask which articles to amnesty, release those prisoners and show the prison
// again.
//
// Input is read a line at a time from any io.Reader, so the same session runs
// against a terminal, a pipe or a test buffer. An expression the parser
// rejects never touches the roster; the user is asked again until one parses.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Iron-Ham/roster/internal/expression"
	"github.com/Iron-Ham/roster/internal/logging"
	"github.com/Iron-Ham/roster/internal/roster"
	"github.com/Iron-Ham/roster/internal/tui/styles"
)

// ShowPrisonersCommand is the reply to the status prompt that lists every
// prisoner.
const ShowPrisonersCommand = "1"

// Messages printed by the session.
const (
	msgRetry    = "Article numbers entered incorrectly, please try again..."
	msgReleased = "Prisoners under the following articles will be amnestied and released:"
	msgEmpty    = "Prison is empty.."
	msgPressKey = "Press something.."
)

// ErrInputClosed is returned when input ends before the session finishes.
// It wraps io.ErrUnexpectedEOF.
var ErrInputClosed = fmt.Errorf("input closed: %w", io.ErrUnexpectedEOF)

// Session is one interactive release session.
type Session struct {
	in     *bufio.Reader
	out    io.Writer
	parser expression.Parser
	logger *logging.Logger
	styles *styles.Styles
}

// New creates a Session reading from in and writing to out.
// A nil logger discards log output.
func New(in io.Reader, out io.Writer, parser expression.Parser, logger *logging.Logger) *Session {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Session{
		in:     bufio.NewReader(in),
		out:    out,
		parser: parser,
		logger: logger,
		styles: styles.NewForWriter(out, nil),
	}
}

// SetPalette changes the colors used for output.
func (s *Session) SetPalette(p *styles.ColorPalette) {
	s.styles = styles.NewForWriter(s.out, p)
}

// Run drives the session and returns the roster left after the release.
// On error the roster passed in, or the one already released, is returned
// alongside it.
func (s *Session) Run(ctx context.Context, r roster.Roster) (roster.Roster, error) {
	if err := s.ShowStatus(ctx, r); err != nil {
		return r, err
	}

	s.printf("\n%s\n", s.styles.Prompt.Render(PromptText(s.parser)))

	for {
		line, err := s.readLineContext(ctx)
		if err != nil {
			return r, err
		}

		excluded, err := s.parser.Parse(line)
		if err != nil {
			s.logger.WithPhase("prompt").Warn("expression rejected", "input", line, "error", err.Error())
			s.printf("%s\n", s.styles.Error.Render(msgRetry))
			continue
		}

		before := r.Count()
		r = r.Release(excluded)

		s.logger.WithPhase("release").Info("prisoners released",
			"articles", s.parser.Compact(excluded),
			"released", before-r.Count(),
			"remaining", r.Count(),
		)

		s.printf("\n%s\n%s\n", msgReleased, s.styles.Released.Render(s.parser.Format(excluded)))
		break
	}

	if err := s.ShowStatus(ctx, r); err != nil {
		return r, err
	}

	s.printf("%s\n", s.styles.Muted.Render(msgPressKey))
	if _, err := s.readLineContext(ctx); err != nil && !errors.Is(err, ErrInputClosed) {
		return r, err
	}

	return r, nil
}

// ShowStatus prints the prisoner count and articles, then offers to list
// every prisoner.
func (s *Session) ShowStatus(ctx context.Context, r roster.Roster) error {
	s.logger.WithPhase("status").Debug("status shown", "count", r.Count(), "articles", s.parser.Compact(r.Articles()))

	s.printf("%s\n", s.styles.Title.Render(StatusLine(r)))
	s.printf("They have the following articles:%s\n", s.styles.Article.Render(r.Articles().Join(", ")))
	s.printf("If you want to see all prisoners, press %s\n", s.styles.HelpKey.Render(ShowPrisonersCommand))

	line, err := s.readLineContext(ctx)
	if err != nil {
		return err
	}
	if line == ShowPrisonersCommand {
		s.ShowPrisoners(r)
	}
	return nil
}

// ShowPrisoners lists each prisoner with their article.
func (s *Session) ShowPrisoners(r roster.Roster) {
	WritePrisoners(s.out, s.styles, r)
}

// WritePrisoners writes one line per prisoner in r to w. A nil st writes
// plain text.
func WritePrisoners(w io.Writer, st *styles.Styles, r roster.Roster) {
	if st == nil {
		st = styles.NewForWriter(w, nil)
	}
	if r.IsEmpty() {
		fmt.Fprintf(w, "%s\n", st.Warning.Render(msgEmpty))
		return
	}
	for _, p := range r.Prisoners() {
		fmt.Fprintf(w, "Prisoner %s \tarticle:%s\n", p.Name, st.Article.Render(p.Article.String()))
	}
}

// StatusLine summarizes how many prisoners are held.
func StatusLine(r roster.Roster) string {
	return fmt.Sprintf("There are %d prisoners in the prison.", r.Count())
}

// PromptText asks for a release expression using the parser's separators.
func PromptText(p expression.Parser) string {
	return fmt.Sprintf("Prisoners under what articles should be released? (separated by %q or interval separated by %q)",
		string(p.Separator), string(p.RangeSeparator))
}

// readLineContext is readLine that gives up when ctx is done. A read still
// blocked at that point finishes in the background.
func (s *Session) readLineContext(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := s.readLine()
		done <- result{line, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.line, res.err
	}
}

// readLine returns the next line without its line ending. A final line with
// no newline is returned as is; end of input with nothing left is
// ErrInputClosed.
func (s *Session) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line != "" {
				return strings.TrimRight(line, "\r\n"), nil
			}
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
