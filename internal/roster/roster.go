// Package roster holds the prisoners of a prison and releases them by article.
//
// A [Roster] is an immutable value: [Roster.Release] returns a new Roster and
// leaves the receiver untouched, so callers thread the current roster through
// their loop instead of mutating shared state.
package roster

import (
	"slices"

	"github.com/Iron-Ham/roster/internal/article"
)

// Prisoner is a named inmate convicted under a single article.
type Prisoner struct {
	Name    string       `json:"name" yaml:"name"`
	Article article.Code `json:"article" yaml:"article"`
}

// Roster is an ordered list of prisoners.
type Roster struct {
	prisoners []Prisoner
}

// New creates a Roster holding a copy of prisoners.
func New(prisoners []Prisoner) Roster {
	return Roster{prisoners: slices.Clone(prisoners)}
}

// Count returns the number of prisoners.
func (r Roster) Count() int {
	return len(r.prisoners)
}

// IsEmpty reports whether nobody is left.
func (r Roster) IsEmpty() bool {
	return len(r.prisoners) == 0
}

// Prisoners returns a copy of the prisoners in roster order.
func (r Roster) Prisoners() []Prisoner {
	return slices.Clone(r.prisoners)
}

// Articles returns the distinct articles held by the prisoners, ascending.
func (r Roster) Articles() article.Set {
	codes := make([]article.Code, len(r.prisoners))
	for i, p := range r.prisoners {
		codes[i] = p.Article
	}
	return article.FromCodes(codes)
}

// CountByArticle returns how many prisoners are held under each article.
func (r Roster) CountByArticle() map[article.Code]int {
	counts := make(map[article.Code]int)
	for _, p := range r.prisoners {
		counts[p.Article]++
	}
	return counts
}

// Release returns a new Roster without the prisoners whose article is in
// excluded. Remaining prisoners keep their order.
func (r Roster) Release(excluded article.Set) Roster {
	return Roster{prisoners: Filter(r.prisoners, excluded)}
}

// Filter returns a new slice holding the prisoners whose article is not in
// excluded, in their original order. An empty excluded set returns an equal
// copy. Filtering twice with the same set gives the same result as once.
func Filter(prisoners []Prisoner, excluded article.Set) []Prisoner {
	kept := make([]Prisoner, 0, len(prisoners))
	for _, p := range prisoners {
		if !excluded.Contains(p.Article) {
			kept = append(kept, p)
		}
	}
	return kept
}
