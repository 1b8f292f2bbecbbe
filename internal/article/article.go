// Package article defines the article code a prisoner is convicted under and
// the normalized sets of codes used when releasing prisoners.
package article

import (
	"slices"
	"strconv"
	"strings"
)

// labelPrefix is prepended to the integer when rendering a Code.
const labelPrefix = "article N"

// Code identifies an article by number. Codes compare and order by their
// integer value.
type Code int

// String renders the code as its display label, e.g. "article N7".
func (c Code) String() string {
	return labelPrefix + strconv.Itoa(int(c))
}

// Set is a deduplicated, ascending list of codes. Build one with NewSet or
// FromCodes; the zero value is an empty set.
type Set []Code

// NewSet normalizes the given article numbers into a Set.
func NewSet(numbers ...int) Set {
	codes := make([]Code, len(numbers))
	for i, n := range numbers {
		codes[i] = Code(n)
	}
	return FromCodes(codes)
}

// FromCodes sorts and deduplicates codes into a Set. The input is not modified.
func FromCodes(codes []Code) Set {
	if len(codes) == 0 {
		return Set{}
	}
	s := slices.Clone(codes)
	slices.Sort(s)
	return Set(slices.Compact(s))
}

// Contains reports whether c is in the set.
func (s Set) Contains(c Code) bool {
	_, found := slices.BinarySearch(s, c)
	return found
}

// Len returns the number of codes in the set.
func (s Set) Len() int {
	return len(s)
}

// Labels renders every code in ascending order.
func (s Set) Labels() []string {
	labels := make([]string, len(s))
	for i, c := range s {
		labels[i] = c.String()
	}
	return labels
}

// Ints returns the article numbers in ascending order.
func (s Set) Ints() []int {
	ints := make([]int, len(s))
	for i, c := range s {
		ints[i] = int(c)
	}
	return ints
}

// Join renders the labels separated by sep.
func (s Set) Join(sep string) string {
	return strings.Join(s.Labels(), sep)
}
