// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"
	"time"

	"github.com/alchemorsel/menugen/internal/domain/menu"
	"github.com/brianvoe/gofakeit/v6"
)

// RecipeFactory provides methods to create test recipes
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a new recipe factory with seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{
		faker: gofakeit.New(seed),
	}
}

// Recipe builds a recipe with a few ingredients and steps
func (f *RecipeFactory) Recipe() menu.Recipe {
	ingredients := make([]string, f.faker.Number(2, 6))
	for i := range ingredients {
		ingredients[i] = fmt.Sprintf("%s - %d lbs", f.faker.Vegetable(), f.faker.Number(1, 10))
	}

	instructions := make([]string, f.faker.Number(1, 4))
	for i := range instructions {
		instructions[i] = f.faker.Sentence(6)
	}

	r := menu.Recipe{
		Name:         f.faker.Dinner(),
		Description:  f.faker.Sentence(8),
		Ingredients:  ingredients,
		Instructions: instructions,
	}
	if f.faker.Bool() {
		r.Notes = f.faker.Sentence(5)
	}
	return r
}

// Pools builds perCategory recipes for every known category
func (f *RecipeFactory) Pools(perCategory int) menu.Pools {
	pools := make(menu.Pools, len(menu.Categories))
	for _, category := range menu.Categories {
		list := make([]menu.Recipe, perCategory)
		for i := range list {
			list[i] = f.Recipe()
		}
		pools[category] = list
	}
	return pools
}

// WeeklyMenu builds a structurally valid menu with one shared breakfast
// special and distinct daily items.
func (f *RecipeFactory) WeeklyMenu(week string, servingSize int) *menu.WeeklyMenu {
	breakfast := f.Recipe()
	m := &menu.WeeklyMenu{
		Week:              week,
		ServingSize:       servingSize,
		GeneratedAt:       time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC),
		WeeklyBreakfastSP: &breakfast,
		Days:              make([]menu.DayMenu, 0, menu.DaysPerWeek),
	}

	for i, name := range menu.WeekDays {
		soup, special, salad, burger := f.Recipe(), f.Recipe(), f.Recipe(), f.Recipe()
		m.Days = append(m.Days, menu.DayMenu{
			Day:         name,
			DayIndex:    i,
			BreakfastSP: m.WeeklyBreakfastSP,
			Soup:        &soup,
			Special:     &special,
			Salad:       &salad,
			Burger:      &burger,
			ServingSize: servingSize,
		})
	}
	return m
}
