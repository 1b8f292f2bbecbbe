package cmd

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/Iron-Ham/roster/internal/config"
	"github.com/Iron-Ham/roster/internal/console"
	"github.com/Iron-Ham/roster/internal/generator"
	"github.com/Iron-Ham/roster/internal/logging"
	"github.com/Iron-Ham/roster/internal/roster"
	"github.com/Iron-Ham/roster/internal/tui"
	"github.com/Iron-Ham/roster/internal/tui/styles"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cmd.SilenceUsage = true

	parser, err := cfg.Expression.Parser()
	if err != nil {
		return fmt.Errorf("invalid expression separators: %w", err)
	}

	palette, err := styles.Resolve(cfg.TUI.Theme, cfg.TUI.ThemeFile)
	if err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	r, seed, err := generateRoster(cfg)
	if err != nil {
		logger.Error("failed to generate roster", "error", err.Error())
		return err
	}
	logger = logger.WithRunID(uuid.NewString()).WithSeed(seed)
	logger.Info("roster generated", "count", r.Count(), "articles", parser.Compact(r.Articles()))

	if useTUI(cfg) {
		final, err := tui.Run(cmd.Context(), r, parser, logger, palette)
		if errors.Is(err, tui.ErrCanceled) {
			return nil
		}
		if err != nil {
			return err
		}
		logger.Info("session finished", "remaining", final.Count())
		return nil
	}

	session := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), parser, logger)
	session.SetPalette(palette)

	final, err := session.Run(cmd.Context(), r)
	if err != nil {
		logger.Warn("session ended early", "error", err.Error())
		return fmt.Errorf("session ended: %w", err)
	}
	logger.Info("session finished", "remaining", final.Count())
	return nil
}

// useTUI reports whether the full-screen interface should run. It needs both
// the config switch and a terminal on stdin and stdout.
func useTUI(cfg *config.Config) bool {
	if !cfg.TUI.Enabled {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// newLogger opens the session log described by cfg.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLogger(cfg.Logging.ResolveDir(), cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// newPopulation builds the generator described by cfg. It returns the seed
// actually used so a run can be reproduced with --seed.
func newPopulation(cfg *config.Config) (*generator.Population, uint64, error) {
	names, err := generator.LoadNamesOrDefault(cfg.Roster.NamesFile, generator.DefaultNames())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load first names: %w", err)
	}
	surnames, err := generator.LoadNamesOrDefault(cfg.Roster.SurnamesFile, generator.DefaultSurnames())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load surnames: %w", err)
	}

	seed := cfg.Roster.Seed
	for seed == 0 {
		seed = rand.Uint64()
	}

	pop := generator.NewPopulation(generator.NewRand(seed))
	pop.Size = cfg.Roster.Size
	pop.Names = names
	pop.Surnames = surnames
	pop.Articles = generator.RandomArticles{
		First: cfg.Roster.FirstArticle,
		Count: cfg.Roster.ArticleCount,
		Rand:  pop.Rand,
	}
	return pop, seed, nil
}

func generateRoster(cfg *config.Config) (roster.Roster, uint64, error) {
	pop, seed, err := newPopulation(cfg)
	if err != nil {
		return roster.Roster{}, 0, err
	}
	prisoners, err := pop.Generate()
	if err != nil {
		return roster.Roster{}, 0, fmt.Errorf("failed to generate roster: %w", err)
	}
	return roster.New(prisoners), seed, nil
}
