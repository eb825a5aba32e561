package menu

import (
	"math/rand"
	"sync"
)

// Pools maps each category to its ordered recipe pool
type Pools map[Category][]Recipe

// Clone deep-copies every pool
func (p Pools) Clone() Pools {
	out := make(Pools, len(p))
	for category, recipes := range p {
		cloned := make([]Recipe, len(recipes))
		for i, r := range recipes {
			cloned[i] = r.Clone()
		}
		out[category] = cloned
	}
	return out
}

// Total returns the number of recipes across all pools
func (p Pools) Total() int {
	total := 0
	for _, recipes := range p {
		total += len(recipes)
	}
	return total
}

// RandomSource picks a uniform index in [0, n)
type RandomSource interface {
	Intn(n int) int
}

type globalSource struct{}

func (globalSource) Intn(n int) int {
	return rand.Intn(n)
}

// lockedSource makes a seeded *rand.Rand safe for concurrent draws
type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

// NewSeededSource returns a deterministic RandomSource for reproducible menus
func NewSeededSource(seed int64) RandomSource {
	return &lockedSource{rnd: rand.New(rand.NewSource(seed))}
}

// RecipeSource is what the generation engine draws from
type RecipeSource interface {
	RandomFrom(category Category) Recipe
	RandomBreakfast(isWeekday, isSaturday bool) Recipe
}

// Catalog owns the categorized recipe pools. It is read-only once built.
type Catalog struct {
	pools Pools
	rnd   RandomSource
}

// CatalogOption configures a Catalog
type CatalogOption func(*Catalog)

// WithRandomSource injects the selection randomness
func WithRandomSource(rnd RandomSource) CatalogOption {
	return func(c *Catalog) {
		if rnd != nil {
			c.rnd = rnd
		}
	}
}

// NewCatalog builds a catalog over a private copy of pools
func NewCatalog(pools Pools, opts ...CatalogOption) *Catalog {
	if pools == nil {
		pools = Pools{}
	}
	c := &Catalog{
		pools: pools.Clone(),
		rnd:   globalSource{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RandomFrom uniformly selects a recipe from the category's pool.
// An empty or unknown pool yields the category's default recipe.
func (c *Catalog) RandomFrom(category Category) Recipe {
	pool := c.pools[category]
	if len(pool) == 0 {
		return DefaultRecipe(category)
	}
	return pool[c.rnd.Intn(len(pool))].Clone()
}

// RandomBreakfast selects from the Saturday pool when isSaturday is set,
// otherwise the Mon-Fri pool for weekdays and the Sunday pool for the rest.
func (c *Catalog) RandomBreakfast(isWeekday, isSaturday bool) Recipe {
	switch {
	case isSaturday:
		return c.RandomFrom(CategoryBreakfastSaturday)
	case isWeekday:
		return c.RandomFrom(CategoryBreakfastMonFri)
	default:
		return c.RandomFrom(CategoryBreakfastSunday)
	}
}

// Count returns the size of a category's pool
func (c *Catalog) Count(category Category) int {
	return len(c.pools[category])
}

// Counts returns the pool size of every recognized category
func (c *Catalog) Counts() map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, category := range Categories {
		counts[category] = len(c.pools[category])
	}
	return counts
}

// Pools returns a deep copy of the catalog contents
func (c *Catalog) Pools() Pools {
	return c.pools.Clone()
}
