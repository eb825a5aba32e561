// Package menu contains the core domain model for weekly facility menus.
// Recipes are drawn from a categorized catalog and assembled into a
// seven-day WeeklyMenu that shares one breakfast special across all days.
package menu

import "slices"

// Category identifies a pool of recipes in the catalog
type Category string

const (
	CategorySoups             Category = "soups"
	CategorySpecials          Category = "specials"
	CategorySalads            Category = "salads"
	CategoryBurgers           Category = "burgers"
	CategoryBreakfastMonFri   Category = "breakfast_monfri"
	CategoryBreakfastSaturday Category = "breakfast_saturday"
	CategoryBreakfastSunday   Category = "breakfast_sunday"
)

// Categories lists every recognized category in catalog order
var Categories = []Category{
	CategorySoups,
	CategorySpecials,
	CategorySalads,
	CategoryBurgers,
	CategoryBreakfastMonFri,
	CategoryBreakfastSaturday,
	CategoryBreakfastSunday,
}

// IsKnown reports whether c is one of the recognized categories
func (c Category) IsKnown() bool {
	return slices.Contains(Categories, c)
}

// Recipe is an immutable value drawn from the catalog.
// Instructions are an ordered, numbered procedure.
type Recipe struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Notes        string   `json:"notes,omitempty"`
}

// Clone returns a deep copy so callers never share slices with the catalog
func (r Recipe) Clone() Recipe {
	out := r
	out.Ingredients = cloneStrings(r.Ingredients)
	out.Instructions = cloneStrings(r.Instructions)
	return out
}

// Equal compares two recipes field by field
func (r Recipe) Equal(other Recipe) bool {
	return r.Name == other.Name &&
		r.Description == other.Description &&
		r.Notes == other.Notes &&
		slices.Equal(r.Ingredients, other.Ingredients) &&
		slices.Equal(r.Instructions, other.Instructions)
}

// HasNotes reports whether the optional notes are present
func (r Recipe) HasNotes() bool {
	return r.Notes != ""
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
