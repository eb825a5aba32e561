package menu

import "time"

const (
	// DaysPerWeek is the fixed length of a weekly menu
	DaysPerWeek = 7

	MinServingSize     = 10
	MaxServingSize     = 100
	DefaultServingSize = 25
)

// WeekDays are the fixed day names, index-aligned with DayMenu.DayIndex
var WeekDays = [DaysPerWeek]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayMenu is one calendar day's selections.
// BreakfastSP points at the weekly-shared breakfast special.
type DayMenu struct {
	Day         string  `json:"day"`
	DayIndex    int     `json:"day_index"`
	BreakfastSP *Recipe `json:"breakfast_sp"`
	Soup        *Recipe `json:"soup"`
	Special     *Recipe `json:"special"`
	Salad       *Recipe `json:"salad"`
	Burger      *Recipe `json:"burger"`
	ServingSize int     `json:"serving_size"`
}

// WeeklyMenu is the aggregate root handed to and from callers.
// Week is an opaque caller-supplied label and is never parsed.
type WeeklyMenu struct {
	Week              string    `json:"week"`
	ServingSize       int       `json:"serving_size"`
	GeneratedAt       time.Time `json:"generated_at"`
	WeeklyBreakfastSP *Recipe   `json:"weekly_breakfast_sp"`
	Days              []DayMenu `json:"days"`
}

// Validate checks the structural invariants: days present, exactly seven
// of them and a serving size within bounds. Any week label is accepted,
// including the empty one. It never repairs.
func (m *WeeklyMenu) Validate() error {
	if m == nil {
		return ErrNoMenu
	}
	if m.Days == nil {
		return ErrMissingDays
	}
	if len(m.Days) != DaysPerWeek {
		return ErrWrongDayCount
	}
	if m.ServingSize < MinServingSize || m.ServingSize > MaxServingSize {
		return ErrServingSizeRange
	}
	if m.WeeklyBreakfastSP == nil {
		return ErrMissingRecipe
	}
	for i := range m.Days {
		if !m.Days[i].complete() {
			return ErrMissingRecipe
		}
	}
	return nil
}

// CheckInvariants runs Validate and additionally verifies day alignment
// and that every day carries the weekly breakfast special.
func (m *WeeklyMenu) CheckInvariants() error {
	if err := m.Validate(); err != nil {
		return err
	}
	for i, d := range m.Days {
		if d.DayIndex != i {
			return ErrDayIndexMismatch
		}
		if !d.BreakfastSP.Equal(*m.WeeklyBreakfastSP) {
			return ErrBreakfastDiverged
		}
	}
	return nil
}

// Day returns the day at index, or ErrInvalidDayIndex
func (m *WeeklyMenu) Day(index int) (*DayMenu, error) {
	if m == nil {
		return nil, ErrNoMenu
	}
	if index < 0 || index >= DaysPerWeek || index >= len(m.Days) {
		return nil, ErrInvalidDayIndex
	}
	return &m.Days[index], nil
}

// IsWeekday reports whether a day index falls Monday through Friday
func IsWeekday(dayIndex int) bool {
	return dayIndex >= 0 && dayIndex <= 4
}

// IsSaturday reports whether a day index is Saturday
func IsSaturday(dayIndex int) bool {
	return dayIndex == 5
}

func (d DayMenu) complete() bool {
	return d.BreakfastSP != nil && d.Soup != nil && d.Special != nil && d.Salad != nil && d.Burger != nil
}
