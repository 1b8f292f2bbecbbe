// Package expression parses the text a user types to pick articles for
// release. An expression is a list of tokens joined by a separator, each token
// either a single article number or an inclusive range:
//
//	5,3,5     -> article N3, article N5
//	1-3       -> article N1, article N2, article N3
//	3-1,7     -> article N1, article N2, article N3, article N7
//
// Parsing is all-or-nothing: one malformed token rejects the whole expression
// with a [*ValidationError] and no codes are returned.
package expression

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/Iron-Ham/roster/internal/article"
)

// Default separators.
const (
	DefaultSeparator      = ','
	DefaultRangeSeparator = '-'
)

// MaxRangeLength is the most codes a single range token may expand to.
const MaxRangeLength = 1_000_000

// Parser turns expression text into an article.Set.
// The zero value is not usable; start from Default.
type Parser struct {
	// Separator splits the expression into tokens.
	Separator rune
	// RangeSeparator splits a token into the two bounds of a range.
	RangeSeparator rune
}

// Default returns a Parser using "," between tokens and "-" inside ranges.
func Default() Parser {
	return Parser{
		Separator:      DefaultSeparator,
		RangeSeparator: DefaultRangeSeparator,
	}
}

// Parse parses text with the default separators.
func Parse(text string) (article.Set, error) {
	return Default().Parse(text)
}

// Validate checks that the separators can produce parseable tokens.
func (p Parser) Validate() error {
	switch {
	case p.Separator == 0 || p.RangeSeparator == 0:
		return fmt.Errorf("separators must be set")
	case p.Separator == p.RangeSeparator:
		return fmt.Errorf("separator and range separator must differ (both %q)", p.Separator)
	case unicode.IsDigit(p.Separator) || unicode.IsDigit(p.RangeSeparator):
		return fmt.Errorf("separators must not be digits (got %q and %q)", p.Separator, p.RangeSeparator)
	case unicode.IsSpace(p.Separator) || unicode.IsSpace(p.RangeSeparator):
		return fmt.Errorf("separators must not be whitespace (got %q and %q)", p.Separator, p.RangeSeparator)
	}
	return nil
}

// Parse splits text into tokens, expands ranges and returns the
// deduplicated, ascending set of codes.
//
// Range bounds must be positive. Single numbers are taken as parsed, so "0"
// on its own is accepted while "0-2" is not.
func (p Parser) Parse(text string) (article.Set, error) {
	var codes []article.Code

	for _, token := range strings.Split(text, string(p.Separator)) {
		var (
			expanded []article.Code
			err      error
		)
		if strings.ContainsRune(token, p.RangeSeparator) {
			expanded, err = p.expandRange(token)
		} else {
			expanded, err = parseSingle(token)
		}
		if err != nil {
			return nil, &ValidationError{Input: text, Token: token, Err: err}
		}
		codes = append(codes, expanded...)
	}

	return article.FromCodes(codes), nil
}

func parseSingle(token string) ([]article.Code, error) {
	n, err := parseInt(token)
	if err != nil {
		return nil, err
	}
	return []article.Code{article.Code(n)}, nil
}

// expandRange walks from the first bound to the second, in whichever
// direction that takes, and always includes both ends.
func (p Parser) expandRange(token string) ([]article.Code, error) {
	bounds := strings.Split(token, string(p.RangeSeparator))
	if len(bounds) != 2 {
		return nil, ErrRangeArity
	}

	first, err := parseInt(bounds[0])
	if err != nil {
		return nil, err
	}
	last, err := parseInt(bounds[1])
	if err != nil {
		return nil, err
	}
	if first <= 0 || last <= 0 {
		return nil, ErrNonPositiveBound
	}

	step := 1
	if first > last {
		step = -1
	}

	// Both bounds fit in 32 bits, so the span cannot overflow int64.
	span := int64(last) - int64(first)
	if span < 0 {
		span = -span
	}
	if span >= MaxRangeLength {
		return nil, ErrRangeTooLong
	}

	codes := make([]article.Code, 0, span+1)
	for n := first; n != last; n += step {
		codes = append(codes, article.Code(n))
	}
	return append(codes, article.Code(last)), nil
}

// parseInt accepts an optional sign and surrounding whitespace. Numbers
// outside the 32-bit range are not integers as far as articles go.
func parseInt(s string) (int, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, ErrNotInteger
	}
	return int(n), nil
}

// Format renders the set as a comma separated list of labels, the form used
// in release confirmations.
func (p Parser) Format(set article.Set) string {
	return set.Join(", ")
}

// Compact renders set back into an expression that parses to it, collapsing
// runs of consecutive positive numbers into ranges. Negative codes cannot be
// written with the default range separator and do not round-trip.
func (p Parser) Compact(set article.Set) string {
	var sb strings.Builder
	ints := set.Ints()

	for i := 0; i < len(ints); {
		j := i
		for j+1 < len(ints) && ints[j+1] == ints[j]+1 && ints[i] > 0 {
			j++
		}
		if sb.Len() > 0 {
			sb.WriteRune(p.Separator)
		}
		sb.WriteString(strconv.Itoa(ints[i]))
		if j > i {
			sb.WriteRune(p.RangeSeparator)
			sb.WriteString(strconv.Itoa(ints[j]))
		}
		i = j + 1
	}

	return sb.String()
}
