package export

import (
	"strings"

	"github.com/alchemorsel/menugen/internal/domain/menu"
)

const (
	csvHeader    = "Day,Item Type,Name,Description,Ingredients,Instructions,Notes\n"
	csvListJoint = " | "
)

// csvItemTypes are the Item Type column values, aligned with dayItems
var csvItemTypes = [...]string{"Breakfast", "Soup", "Special", "Salad", "Burger"}

// RenderCSV produces one row per day and item type, 35 rows for a full week.
// Fields are quoted only when they contain a comma, quote or newline.
func RenderCSV(m *menu.WeeklyMenu) []byte {
	var b strings.Builder
	b.WriteString(csvHeader)

	for _, day := range m.Days {
		for i, item := range dayItems(day) {
			if item.recipe == nil {
				continue
			}
			r := item.recipe
			writeCSVRow(&b,
				day.Day,
				csvItemTypes[i],
				r.Name,
				r.Description,
				strings.Join(r.Ingredients, csvListJoint),
				strings.Join(r.Instructions, csvListJoint),
				r.Notes,
			)
		}
	}

	return []byte(b.String())
}

func writeCSVRow(b *strings.Builder, fields ...string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeCSV(field))
	}
	b.WriteByte('\n')
}

// escapeCSV leaves plain fields bare, including empty ones
func escapeCSV(field string) string {
	if !strings.ContainsAny(field, ",\"\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
