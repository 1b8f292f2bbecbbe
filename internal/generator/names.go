package generator

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed data/names.txt
var defaultNames []byte

//go:embed data/surnames.txt
var defaultSurnames []byte

// ErrEmptyNameList is returned when a name list has no usable lines.
var ErrEmptyNameList = errors.New("name list is empty")

// LoadNames reads a line-delimited name list from path. Blank lines are
// skipped and surrounding whitespace is trimmed.
func LoadNames(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open name list: %w", err)
	}
	defer file.Close()

	names, err := readNames(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return names, nil
}

// DefaultNames returns the built-in first name list.
func DefaultNames() []string {
	names, _ := readNames(bytes.NewReader(defaultNames))
	return names
}

// DefaultSurnames returns the built-in surname list.
func DefaultSurnames() []string {
	names, _ := readNames(bytes.NewReader(defaultSurnames))
	return names
}

// LoadNamesOrDefault loads path, or returns fallback when path is empty.
func LoadNamesOrDefault(path string, fallback []string) ([]string, error) {
	if path == "" {
		return fallback, nil
	}
	return LoadNames(path)
}

func readNames(r io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrEmptyNameList
	}
	return names, nil
}
