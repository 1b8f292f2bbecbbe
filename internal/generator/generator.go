// Package generator builds the initial prison population.
//
// Generation is the only place randomness enters the program. The random
// source is injected so a fixed seed reproduces the same roster, and both the
// population and the article assignment sit behind small interfaces so tests
// can substitute deterministic versions.
package generator

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/Iron-Ham/roster/internal/article"
	"github.com/Iron-Ham/roster/internal/roster"
)

// Defaults used when a Population field is left zero.
const (
	DefaultSize         = 10
	DefaultFirstArticle = 1
	DefaultArticleCount = 15
)

// Generator produces a population of prisoners.
type Generator interface {
	Generate() ([]roster.Prisoner, error)
}

// ArticleSource assigns an article to a new prisoner.
type ArticleSource interface {
	Next() article.Code
}

// RandomArticles picks articles uniformly from First..First+Count-1.
type RandomArticles struct {
	First int
	Count int
	Rand  *rand.Rand
}

// Next returns a random article in range.
func (a RandomArticles) Next() article.Code {
	return article.Code(a.First + a.Rand.IntN(a.Count))
}

// Population generates Size prisoners named "<name> <surname>" with articles
// drawn from Articles.
type Population struct {
	Size     int
	Names    []string
	Surnames []string
	Articles ArticleSource
	Rand     *rand.Rand
}

// NewRand returns a random source. A zero seed draws from the runtime's
// entropy; any other value makes the sequence reproducible.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// NewPopulation returns a Population with the built-in name lists and
// articles 1..15 drawn from rng.
func NewPopulation(rng *rand.Rand) *Population {
	return &Population{
		Size:     DefaultSize,
		Names:    DefaultNames(),
		Surnames: DefaultSurnames(),
		Articles: RandomArticles{First: DefaultFirstArticle, Count: DefaultArticleCount, Rand: rng},
		Rand:     rng,
	}
}

// Generate implements Generator.
func (p *Population) Generate() ([]roster.Prisoner, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	prisoners := make([]roster.Prisoner, 0, p.Size)
	for range p.Size {
		name := pick(p.Rand, p.Names)
		surname := pick(p.Rand, p.Surnames)
		prisoners = append(prisoners, roster.Prisoner{
			Name:    fmt.Sprintf("%s %s", name, surname),
			Article: p.Articles.Next(),
		})
	}
	return prisoners, nil
}

func (p *Population) validate() error {
	switch {
	case p.Size < 0:
		return fmt.Errorf("population size must be non-negative (got %d)", p.Size)
	case len(p.Names) == 0:
		return fmt.Errorf("first names: %w", ErrEmptyNameList)
	case len(p.Surnames) == 0:
		return fmt.Errorf("surnames: %w", ErrEmptyNameList)
	case p.Articles == nil:
		return errors.New("article source is required")
	case p.Rand == nil:
		return errors.New("random source is required")
	}
	return nil
}

func pick(rng *rand.Rand, list []string) string {
	return list[rng.IntN(len(list))]
}
