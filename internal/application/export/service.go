package export

import (
	"context"

	"github.com/alchemorsel/menugen/internal/domain/menu"
	"github.com/alchemorsel/menugen/internal/ports/inbound"
	"github.com/alchemorsel/menugen/internal/ports/outbound"
	"github.com/alchemorsel/menugen/pkg/errors"
	"go.uber.org/zap"
)

// ExportService implements inbound.ExportService
type ExportService struct {
	metrics outbound.MenuMetrics
	logger  *zap.Logger
	enabled map[Format]bool
}

// NewExportService creates an exporter limited to the enabled format names.
// An empty list enables every supported format.
func NewExportService(enabled []string, metrics outbound.MenuMetrics, logger *zap.Logger) *ExportService {
	if metrics == nil {
		metrics = outbound.NoopMetrics{}
	}
	s := &ExportService{
		metrics: metrics,
		logger:  logger.Named("export-service"),
		enabled: make(map[Format]bool, len(Formats)),
	}
	for _, name := range enabled {
		if f, ok := ParseFormat(name); ok {
			s.enabled[f] = true
		}
	}
	if len(s.enabled) == 0 {
		for _, f := range Formats {
			s.enabled[f] = true
		}
	}
	return s
}

// SupportedFormats lists the enabled format names
func (s *ExportService) SupportedFormats() []string {
	out := make([]string, 0, len(s.enabled))
	for _, f := range Formats {
		if s.enabled[f] {
			out = append(out, string(f))
		}
	}
	return out
}

// Export renders m in the named format. The format is checked before the
// menu so an unknown name is always reported as UNSUPPORTED_FORMAT.
func (s *ExportService) Export(_ context.Context, m *menu.WeeklyMenu, format string) (*inbound.ExportPayload, error) {
	f, ok := ParseFormat(format)
	if !ok || !s.enabled[f] {
		s.metrics.MenuExported(format, false)
		return nil, errors.NewUnsupportedFormatError(format).WithCause(menu.ErrUnsupportedFormat)
	}

	if m == nil {
		s.metrics.MenuExported(format, false)
		return nil, errors.NewNoMenuError().WithCause(menu.ErrNoMenu)
	}
	if err := m.Validate(); err != nil {
		s.metrics.MenuExported(format, false)
		return nil, errors.NewInvalidMenuError(err)
	}

	data, err := Render(m, f)
	if err != nil {
		s.metrics.MenuExported(format, false)
		return nil, errors.Wrap(err, "failed to render menu")
	}

	s.metrics.MenuExported(format, true)
	s.logger.Info("Menu exported",
		zap.String("week", m.Week),
		zap.String("format", format),
		zap.Int("bytes", len(data)),
	)

	return &inbound.ExportPayload{
		Format:      string(f),
		Filename:    Filename(m.Week, f),
		ContentType: f.ContentType(),
		Data:        data,
	}, nil
}

// Render dispatches to the renderer for f
func Render(m *menu.WeeklyMenu, f Format) ([]byte, error) {
	switch f {
	case FormatText, FormatPDF:
		return RenderText(m), nil
	case FormatCSV:
		return RenderCSV(m), nil
	case FormatJSON:
		return RenderJSON(m)
	default:
		return nil, errors.NewUnsupportedFormatError(string(f)).WithCause(menu.ErrUnsupportedFormat)
	}
}

var _ inbound.ExportService = (*ExportService)(nil)
