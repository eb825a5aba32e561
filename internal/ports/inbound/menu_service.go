// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"

	"github.com/alchemorsel/menugen/internal/domain/menu"
)

// MenuService defines the weekly menu use cases.
// It holds no menu between calls; callers pass the current menu in and
// persist what comes back.
type MenuService interface {
	GenerateWeeklyMenu(ctx context.Context, week string, servingSize int) (*menu.WeeklyMenu, error)
	RegenerateSingleDay(ctx context.Context, current *menu.WeeklyMenu, dayIndex int) (*menu.WeeklyMenu, error)
	RegenerateWeeklyBreakfastSP(ctx context.Context, current *menu.WeeklyMenu) (*menu.WeeklyMenu, error)
	ValidateMenu(m *menu.WeeklyMenu) bool
}

// ExportService renders a menu into a downloadable payload
type ExportService interface {
	Export(ctx context.Context, m *menu.WeeklyMenu, format string) (*ExportPayload, error)
	SupportedFormats() []string
}

// CatalogService exposes read access to the loaded recipe catalog
type CatalogService interface {
	Summary(ctx context.Context) CatalogSummary
}

// GenerateMenuCommand is the request body for weekly menu generation.
// Zero values are replaced with configured defaults.
type GenerateMenuCommand struct {
	Week        string `json:"week" validate:"omitempty,max=64,week_label"`
	ServingSize int    `json:"serving_size" validate:"omitempty,min=10,max=100"`
}

// ExportPayload is the rendered export with its suggested filename
type ExportPayload struct {
	Format      string `json:"format"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// CatalogSummary reports how the catalog was loaded and its pool sizes
type CatalogSummary struct {
	Outcome string         `json:"outcome"`
	Reason  string         `json:"reason,omitempty"`
	Total   int            `json:"total"`
	Counts  map[string]int `json:"counts"`
}
