package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	// Verify default roster config
	if cfg.Roster.Size != 10 {
		t.Errorf("Roster.Size = %d, want 10", cfg.Roster.Size)
	}
	if cfg.Roster.FirstArticle != 1 {
		t.Errorf("Roster.FirstArticle = %d, want 1", cfg.Roster.FirstArticle)
	}
	if cfg.Roster.ArticleCount != 15 {
		t.Errorf("Roster.ArticleCount = %d, want 15", cfg.Roster.ArticleCount)
	}
	if cfg.Roster.Seed != 0 {
		t.Errorf("Roster.Seed = %d, want 0", cfg.Roster.Seed)
	}

	// Verify default expression config
	if cfg.Expression.Separator != "," {
		t.Errorf("Expression.Separator = %q, want %q", cfg.Expression.Separator, ",")
	}
	if cfg.Expression.RangeSeparator != "-" {
		t.Errorf("Expression.RangeSeparator = %q, want %q", cfg.Expression.RangeSeparator, "-")
	}

	// Verify default TUI config
	if cfg.TUI.Enabled {
		t.Error("TUI.Enabled should be false by default")
	}
	if cfg.TUI.Theme != "default" {
		t.Errorf("TUI.Theme = %q, want %q", cfg.TUI.Theme, "default")
	}

	// Verify default logging config
	if !cfg.Logging.Enabled {
		t.Error("Logging.Enabled should be true by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestExpressionConfig_Parser(t *testing.T) {
	tests := []struct {
		name      string
		sep       string
		rangeSep  string
		wantErr   bool
		wantSep   rune
		wantRange rune
	}{
		{name: "defaults", sep: ",", rangeSep: "-", wantSep: ',', wantRange: '-'},
		{name: "custom", sep: ";", rangeSep: ":", wantSep: ';', wantRange: ':'},
		{name: "multibyte rune", sep: "·", rangeSep: "~", wantSep: '·', wantRange: '~'},
		{name: "empty separator", sep: "", rangeSep: "-", wantErr: true},
		{name: "two characters", sep: ",,", rangeSep: "-", wantErr: true},
		{name: "same separators", sep: "-", rangeSep: "-", wantErr: true},
		{name: "digit", sep: "5", rangeSep: "-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := ExpressionConfig{Separator: tt.sep, RangeSeparator: tt.rangeSep}
			p, err := e.Parser()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parser() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if p.Separator != tt.wantSep || p.RangeSeparator != tt.wantRange {
				t.Errorf("Parser() = {%q %q}, want {%q %q}", p.Separator, p.RangeSeparator, tt.wantSep, tt.wantRange)
			}
		})
	}
}

func TestLoggingConfig_ResolveDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name string
		dir  string
		want string
	}{
		{name: "empty uses config dir", dir: "", want: filepath.Join(ConfigDir(), "logs")},
		{name: "absolute", dir: "/var/log/roster", want: "/var/log/roster"},
		{name: "tilde", dir: "~", want: home},
		{name: "tilde prefix", dir: "~/logs", want: filepath.Join(home, "logs")},
		{name: "relative", dir: "logs", want: "logs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := LoggingConfig{Dir: tt.dir}
			if got := l.ResolveDir(); got != tt.want {
				t.Errorf("ResolveDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		xdg := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdg)

		if got := ConfigDir(); got != filepath.Join(xdg, "roster") {
			t.Errorf("ConfigDir() = %q, want %q", got, filepath.Join(xdg, "roster"))
		}
		if got := ConfigFile(); got != filepath.Join(xdg, "roster", "config.yaml") {
			t.Errorf("ConfigFile() = %q", got)
		}
	})

	t.Run("falls back to home", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		if !strings.HasSuffix(ConfigDir(), filepath.Join(".config", "roster")) && ConfigDir() != ".roster" {
			t.Errorf("ConfigDir() = %q, want ~/.config/roster", ConfigDir())
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("defaults load and validate", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		SetDefaults()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if cfg.Roster.Size != 10 {
			t.Errorf("Roster.Size = %d, want 10", cfg.Roster.Size)
		}
	})

	t.Run("reads config file", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		SetDefaults()

		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "roster:\n  size: 25\n  seed: 99\nexpression:\n  separator: \";\"\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			t.Fatalf("ReadInConfig() error: %v", err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if cfg.Roster.Size != 25 {
			t.Errorf("Roster.Size = %d, want 25", cfg.Roster.Size)
		}
		if cfg.Roster.Seed != 99 {
			t.Errorf("Roster.Seed = %d, want 99", cfg.Roster.Seed)
		}
		if cfg.Expression.Separator != ";" {
			t.Errorf("Expression.Separator = %q, want %q", cfg.Expression.Separator, ";")
		}
		// Untouched keys keep their defaults
		if cfg.Expression.RangeSeparator != "-" {
			t.Errorf("Expression.RangeSeparator = %q, want %q", cfg.Expression.RangeSeparator, "-")
		}
	})

	t.Run("invalid values fail and Get falls back", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		SetDefaults()
		viper.Set("roster.size", -5)

		if _, err := Load(); err == nil {
			t.Error("Load() expected validation error")
		}
		if got := Get(); got.Roster.Size != 10 {
			t.Errorf("Get().Roster.Size = %d, want default 10", got.Roster.Size)
		}
	})
}
