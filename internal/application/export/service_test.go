package export

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/alchemorsel/menugen/internal/domain/menu"
	"github.com/alchemorsel/menugen/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

func fixtureMenu() *menu.WeeklyMenu {
	breakfast := &menu.Recipe{
		Name:         "Oatmeal",
		Description:  "Warm oats",
		Ingredients:  []string{"Oats - 5 lbs", "Milk - 1 gallon"},
		Instructions: []string{"Boil water", "Stir in oats"},
		Notes:        "Serve hot",
	}
	m := &menu.WeeklyMenu{
		Week:              "2024-10",
		ServingSize:       25,
		GeneratedAt:       time.Date(2024, 3, 4, 9, 30, 5, 0, time.UTC),
		WeeklyBreakfastSP: breakfast,
		Days:              make([]menu.DayMenu, menu.DaysPerWeek),
	}
	for i := range m.Days {
		m.Days[i] = menu.DayMenu{
			Day:         menu.WeekDays[i],
			DayIndex:    i,
			BreakfastSP: breakfast,
			Soup:        &menu.Recipe{Name: "Split Pea Soup", Description: "Thick", Ingredients: []string{}, Instructions: []string{}},
			Special:     &menu.Recipe{Name: `Mac & Cheese, Deluxe "Style"`, Description: "Baked", Ingredients: []string{"Macaroni", "Cheddar"}, Instructions: []string{}},
			Salad:       &menu.Recipe{Name: "Garden Salad", Description: "Fresh greens\nwith dressing", Ingredients: []string{}, Instructions: []string{}},
			Burger:      &menu.Recipe{Name: "Turkey Burger", Description: "Lean", Ingredients: []string{}, Instructions: []string{"Grill"}, Notes: "Cook to 165°F"},
			ServingSize: 25,
		}
	}
	return m
}

// ExportServiceTestSuite covers the export serializer
type ExportServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	service *ExportService
	menu    *menu.WeeklyMenu
}

func (suite *ExportServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.service = NewExportService(nil, nil, zap.NewNop())
	suite.menu = fixtureMenu()
}

func (suite *ExportServiceTestSuite) TestText() {
	suite.Run("Header_ShouldMatchLayout", func() {
		rule := strings.Repeat("=", 70)
		expected := "=== ASSISTED LIVING WEEKLY MENU ===\n" +
			"Week of: 2024-10\n" +
			"Serving Size: 25 residents\n" +
			"Generated: 2024-03-04 09:30:05\n" +
			rule + "\n\n" +
			rule + "\nMONDAY\n" + rule + "\n\n" +
			"\n--- Breakfast: Oatmeal ---\n"

		payload, err := suite.service.Export(suite.ctx, suite.menu, "text")

		require.NoError(suite.T(), err)
		assert.True(suite.T(), strings.HasPrefix(string(payload.Data), expected))
		assert.Equal(suite.T(), "Weekly_Menu_2024_10.txt", payload.Filename)
	})

	suite.Run("Recipe_ShouldRenderListsAndNotes", func() {
		var b strings.Builder

		writeTextRecipe(&b, "Breakfast", suite.menu.WeeklyBreakfastSP)

		assert.Equal(suite.T(),
			"\n--- Breakfast: Oatmeal ---\nWarm oats\n\n"+
				"Ingredients:\n  • Oats - 5 lbs\n  • Milk - 1 gallon\n"+
				"\nInstructions:\n  1. Boil water\n  2. Stir in oats\n"+
				"\nNotes: Serve hot\n\n",
			b.String())
	})

	suite.Run("EmptyLists_ShouldBeOmitted", func() {
		var b strings.Builder

		writeTextRecipe(&b, "Soup", suite.menu.Days[0].Soup)

		assert.Equal(suite.T(), "\n--- Soup: Split Pea Soup ---\nThick\n\n\n", b.String())
	})

	suite.Run("EveryDay_ShouldHaveFiveSections", func() {
		text := string(RenderText(suite.menu))

		for _, day := range menu.WeekDays {
			assert.Contains(suite.T(), text, "\n"+strings.ToUpper(day)+"\n")
		}
		for _, label := range []string{"Breakfast", "Soup", "Daily Special", "Salad", "Burger"} {
			assert.Equal(suite.T(), 7, strings.Count(text, "--- "+label+": "), label)
		}
	})
}

func (suite *ExportServiceTestSuite) TestCSV() {
	suite.Run("Rows_ShouldCoverEveryDayAndItem", func() {
		payload, err := suite.service.Export(suite.ctx, suite.menu, "csv")

		require.NoError(suite.T(), err)
		out := string(payload.Data)
		assert.True(suite.T(), strings.HasPrefix(out, "Day,Item Type,Name,Description,Ingredients,Instructions,Notes\n"))
		assert.Equal(suite.T(), 36+7, strings.Count(out, "\n"), "35 rows, header and 7 embedded newlines")
		assert.Equal(suite.T(), "Weekly_Menu_2024_10.csv", payload.Filename)
	})

	suite.Run("Fields_ShouldBeEscapedOnlyWhenNeeded", func() {
		out := string(RenderCSV(suite.menu))

		assert.Contains(suite.T(), out, `Monday,Special,"Mac & Cheese, Deluxe ""Style""",Baked,Macaroni | Cheddar,,`+"\n")
		assert.Contains(suite.T(), out, "Monday,Breakfast,Oatmeal,Warm oats,Oats - 5 lbs | Milk - 1 gallon,Boil water | Stir in oats,Serve hot\n")
		assert.Contains(suite.T(), out, "Monday,Salad,Garden Salad,\"Fresh greens\nwith dressing\",,,\n")
		assert.Contains(suite.T(), out, "Sunday,Burger,Turkey Burger,Lean,,Grill,Cook to 165°F\n")
	})

	suite.Run("RowOrder_ShouldFollowItemTypes", func() {
		lines := strings.Split(string(RenderCSV(fixtureWithoutNewlines())), "\n")

		require.Len(suite.T(), lines, 37)
		assert.True(suite.T(), strings.HasPrefix(lines[1], "Monday,Breakfast,"))
		assert.True(suite.T(), strings.HasPrefix(lines[2], "Monday,Soup,"))
		assert.True(suite.T(), strings.HasPrefix(lines[3], "Monday,Special,"))
		assert.True(suite.T(), strings.HasPrefix(lines[4], "Monday,Salad,"))
		assert.True(suite.T(), strings.HasPrefix(lines[5], "Monday,Burger,"))
		assert.True(suite.T(), strings.HasPrefix(lines[35], "Sunday,Burger,"))
		assert.Equal(suite.T(), "", lines[36])
	})
}

func fixtureWithoutNewlines() *menu.WeeklyMenu {
	m := fixtureMenu()
	for i := range m.Days {
		salad := *m.Days[i].Salad
		salad.Description = "Fresh greens"
		m.Days[i].Salad = &salad
	}
	return m
}

func (suite *ExportServiceTestSuite) TestJSON() {
	suite.Run("RoundTrip_ShouldPreserveStructure", func() {
		payload, err := suite.service.Export(suite.ctx, suite.menu, "json")
		require.NoError(suite.T(), err)

		var decoded menu.WeeklyMenu
		require.NoError(suite.T(), json.Unmarshal(payload.Data, &decoded))

		assert.Equal(suite.T(), suite.menu.Week, decoded.Week)
		assert.Equal(suite.T(), suite.menu.ServingSize, decoded.ServingSize)
		assert.Len(suite.T(), decoded.Days, 7)
		assert.NoError(suite.T(), decoded.CheckInvariants())
		assert.Equal(suite.T(), "application/json", payload.ContentType)
	})

	suite.Run("Formatting_ShouldIndentAndNotEscape", func() {
		m := fixtureMenu()
		m.Week = "2024/10 <draft>"

		data, err := RenderJSON(m)

		require.NoError(suite.T(), err)
		assert.True(suite.T(), strings.HasPrefix(string(data), "{\n    \"week\": \"2024/10 <draft>\""))
		assert.False(suite.T(), strings.HasSuffix(string(data), "\n"))
		assert.Contains(suite.T(), string(data), `"ingredients": []`)
	})
}

func (suite *ExportServiceTestSuite) TestPDF() {
	text, err := suite.service.Export(suite.ctx, suite.menu, "text")
	require.NoError(suite.T(), err)

	pdf, err := suite.service.Export(suite.ctx, suite.menu, "pdf")
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), text.Data, pdf.Data)
	assert.Equal(suite.T(), "Weekly_Menu_2024_10.pdf", pdf.Filename)
}

func (suite *ExportServiceTestSuite) TestFailures() {
	suite.Run("UnknownFormat_ShouldNameIt", func() {
		payload, err := suite.service.Export(suite.ctx, suite.menu, "xml")

		assert.Nil(suite.T(), payload)
		require.True(suite.T(), errors.Is(err, errors.CodeUnsupportedFormat))
		assert.Contains(suite.T(), err.Error(), `"xml"`)
		assert.ErrorIs(suite.T(), err, menu.ErrUnsupportedFormat)
	})

	suite.Run("FormatNames_ShouldBeCaseSensitive", func() {
		_, err := suite.service.Export(suite.ctx, suite.menu, "CSV")
		assert.True(suite.T(), errors.Is(err, errors.CodeUnsupportedFormat))
	})

	suite.Run("UnknownFormatWithoutMenu_ShouldStillBeUnsupported", func() {
		_, err := suite.service.Export(suite.ctx, nil, "xml")
		assert.True(suite.T(), errors.Is(err, errors.CodeUnsupportedFormat))
	})

	suite.Run("NilMenu_ShouldFailWithNoMenu", func() {
		_, err := suite.service.Export(suite.ctx, nil, "csv")
		assert.True(suite.T(), errors.Is(err, errors.CodeNoMenu))
	})

	suite.Run("InvalidMenu_ShouldFail", func() {
		m := fixtureMenu()
		m.Days = m.Days[:6]

		_, err := suite.service.Export(suite.ctx, m, "text")

		assert.True(suite.T(), errors.Is(err, errors.CodeInvalidMenu))
	})

	suite.Run("DisabledFormat_ShouldBeUnsupported", func() {
		limited := NewExportService([]string{"csv", "json"}, nil, zap.NewNop())

		_, err := limited.Export(suite.ctx, suite.menu, "pdf")

		assert.True(suite.T(), errors.Is(err, errors.CodeUnsupportedFormat))
		assert.Equal(suite.T(), []string{"csv", "json"}, limited.SupportedFormats())
	})
}

func TestExportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExportServiceTestSuite))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Weekly_Menu_2024_W05.txt", Filename("2024-W05", FormatText))
	assert.Equal(t, "Weekly_Menu_spring_menu.json", Filename("spring_menu", FormatJSON))
	assert.Equal(t, "Weekly_Menu_.csv", Filename("", FormatCSV))
}

func TestEscapeCSV(t *testing.T) {
	cases := map[string]string{
		"":                             "",
		"plain":                        "plain",
		"a,b":                          `"a,b"`,
		`say "hi"`:                     `"say ""hi"""`,
		"two\nlines":                   "\"two\nlines\"",
		`Mac & Cheese, Deluxe "Style"`: `"Mac & Cheese, Deluxe ""Style"""`,
	}
	for in, expected := range cases {
		assert.Equal(t, expected, escapeCSV(in), in)
	}
}
