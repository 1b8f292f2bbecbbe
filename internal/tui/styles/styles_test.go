package styles

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const validTheme = `name: Test Theme
version: "1"
colors:
  primary: "#112233"
  secondary: "#445566"
  warning: "#778899"
  error: "#AABBCC"
  muted: "#DDEEFF"
  text: "#FFF"
  border: "#000"
`

func writeTheme(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write theme: %v", err)
	}
	return path
}

func TestGetPalette(t *testing.T) {
	for _, name := range BuiltinThemes() {
		p := GetPalette(ThemeName(name))
		if p == nil {
			t.Fatalf("GetPalette(%q) returned nil", name)
		}
		if p.Primary == "" || p.Article == "" {
			t.Errorf("GetPalette(%q) has empty colors: %+v", name, p)
		}
	}

	if GetPalette("unknown").Primary != DefaultPalette().Primary {
		t.Error("unknown theme should fall back to the default palette")
	}
}

func TestIsValidTheme(t *testing.T) {
	if !IsValidTheme("nord") {
		t.Error("nord should be valid")
	}
	if IsValidTheme("solarized") {
		t.Error("solarized is not a built-in theme")
	}
}

func TestLoadThemeFile(t *testing.T) {
	theme, err := LoadThemeFile(writeTheme(t, validTheme))
	if err != nil {
		t.Fatalf("LoadThemeFile() error: %v", err)
	}

	if theme.Name != "Test Theme" {
		t.Errorf("Name = %q, want %q", theme.Name, "Test Theme")
	}

	p := theme.ToPalette()
	if p.Primary != "#112233" {
		t.Errorf("Primary = %q, want %q", p.Primary, "#112233")
	}
	// Article falls back to primary
	if p.Article != "#112233" {
		t.Errorf("Article = %q, want primary color", p.Article)
	}
}

func TestLoadThemeFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "missing name", content: strings.Replace(validTheme, "name: Test Theme\n", "", 1), wantErr: "name is required"},
		{name: "wrong version", content: strings.Replace(validTheme, `version: "1"`, `version: "2"`, 1), wantErr: "unsupported theme version"},
		{name: "bad color", content: strings.Replace(validTheme, `"#112233"`, `"purple"`, 1), wantErr: "invalid format"},
		{name: "missing color", content: strings.Replace(validTheme, "  border: \"#000\"\n", "", 1), wantErr: "'border' is required"},
		{name: "bad article color", content: validTheme + "  article: \"#12\"\n", wantErr: "'article'"},
		{name: "not yaml", content: "colors: [", wantErr: "parsing theme file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadThemeFile(writeTheme(t, tt.content))
			if err == nil {
				t.Fatal("LoadThemeFile() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestExportTheme(t *testing.T) {
	data, err := ExportTheme(ThemeDracula)
	if err != nil {
		t.Fatalf("ExportTheme() error: %v", err)
	}

	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		t.Fatalf("exported theme is not YAML: %v", err)
	}
	if err := theme.Validate(); err != nil {
		t.Errorf("exported theme does not validate: %v", err)
	}
	if theme.Colors.Article != string(DraculaPalette().Article) {
		t.Errorf("Article = %q, want %q", theme.Colors.Article, DraculaPalette().Article)
	}
}

func TestResolve(t *testing.T) {
	p, err := Resolve("monokai", "")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if p.Primary != MonokaiPalette().Primary {
		t.Errorf("Resolve(monokai) Primary = %q", p.Primary)
	}

	p, err = Resolve("monokai", writeTheme(t, validTheme))
	if err != nil {
		t.Fatalf("Resolve() with file error: %v", err)
	}
	if p.Primary != "#112233" {
		t.Errorf("theme file should win over theme name, got %q", p.Primary)
	}

	if _, err := Resolve("", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Resolve() expected error for missing theme file")
	}
}

func TestNewForWriter_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	s := NewForWriter(&buf, nil)

	// A buffer is not a terminal, so no escape sequences are emitted.
	if got := s.Title.Render("Prison"); got != "Prison" {
		t.Errorf("Title.Render() = %q, want plain text", got)
	}
	if s.Palette == nil {
		t.Error("nil palette should default")
	}
}
