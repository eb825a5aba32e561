package export

import (
	"strconv"
	"strings"

	"github.com/alchemorsel/menugen/internal/domain/menu"
)

// TimestampLayout formats the Generated header line
const TimestampLayout = "2006-01-02 15:04:05"

var ruleLine = strings.Repeat("=", 70)

// RenderText produces the plain-text menu layout
func RenderText(m *menu.WeeklyMenu) []byte {
	var b strings.Builder

	b.WriteString("=== ASSISTED LIVING WEEKLY MENU ===\n")
	b.WriteString("Week of: " + m.Week + "\n")
	b.WriteString("Serving Size: " + strconv.Itoa(m.ServingSize) + " residents\n")
	b.WriteString("Generated: " + m.GeneratedAt.Format(TimestampLayout) + "\n")
	b.WriteString(ruleLine + "\n\n")

	for _, day := range m.Days {
		b.WriteString(ruleLine + "\n")
		b.WriteString(strings.ToUpper(day.Day) + "\n")
		b.WriteString(ruleLine + "\n\n")

		for _, item := range dayItems(day) {
			writeTextRecipe(&b, item.label, item.recipe)
		}

		b.WriteString("\n")
	}

	return []byte(b.String())
}

func writeTextRecipe(b *strings.Builder, label string, r *menu.Recipe) {
	if r == nil {
		return
	}

	b.WriteString("\n--- " + label + ": " + r.Name + " ---\n")
	b.WriteString(r.Description + "\n\n")

	if len(r.Ingredients) > 0 {
		b.WriteString("Ingredients:\n")
		for _, ingredient := range r.Ingredients {
			b.WriteString("  • " + ingredient + "\n")
		}
	}

	if len(r.Instructions) > 0 {
		b.WriteString("\nInstructions:\n")
		for i, step := range r.Instructions {
			b.WriteString("  " + strconv.Itoa(i+1) + ". " + step + "\n")
		}
	}

	if r.HasNotes() {
		b.WriteString("\nNotes: " + r.Notes + "\n")
	}

	b.WriteString("\n")
}

type labeledRecipe struct {
	label  string
	recipe *menu.Recipe
}

// dayItems returns the five items of a day in export order
func dayItems(day menu.DayMenu) []labeledRecipe {
	return []labeledRecipe{
		{"Breakfast", day.BreakfastSP},
		{"Soup", day.Soup},
		{"Daily Special", day.Special},
		{"Salad", day.Salad},
		{"Burger", day.Burger},
	}
}
