// Package menu provides the application layer for weekly menu generation
// This implements the use cases defined in the inbound ports
package menu

import (
	"context"
	"time"

	domain "github.com/alchemorsel/menugen/internal/domain/menu"
	"github.com/alchemorsel/menugen/internal/ports/inbound"
	"github.com/alchemorsel/menugen/internal/ports/outbound"
	"github.com/alchemorsel/menugen/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// MenuService implements the menu use cases over a recipe source.
// It keeps no menu between calls.
type MenuService struct {
	recipes domain.RecipeSource
	metrics outbound.MenuMetrics
	logger  *zap.Logger
	tracer  trace.Tracer
	now     func() time.Time
}

// Option configures a MenuService
type Option func(*MenuService)

// WithClock overrides the generation timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *MenuService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMetrics records generation activity
func WithMetrics(metrics outbound.MenuMetrics) Option {
	return func(s *MenuService) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// NewMenuService creates a new menu service
func NewMenuService(recipes domain.RecipeSource, logger *zap.Logger, opts ...Option) *MenuService {
	s := &MenuService{
		recipes: recipes,
		metrics: outbound.NoopMetrics{},
		logger:  logger.Named("menu-service"),
		tracer:  otel.Tracer("menugen/menu"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateWeeklyMenu builds a fresh seven-day menu. The breakfast special is
// drawn once from the Mon-Fri pool and shared by every day. servingSize is
// stored as given; ValidateMenu is the separate gate for its bounds.
func (s *MenuService) GenerateWeeklyMenu(ctx context.Context, week string, servingSize int) (*domain.WeeklyMenu, error) {
	_, span := s.tracer.Start(ctx, "menu.generate",
		trace.WithAttributes(
			attribute.String("menu.week", week),
			attribute.Int("menu.serving_size", servingSize),
		),
	)
	defer span.End()

	breakfast := s.recipes.RandomBreakfast(true, false)
	m := &domain.WeeklyMenu{
		Week:              week,
		ServingSize:       servingSize,
		GeneratedAt:       s.now(),
		WeeklyBreakfastSP: &breakfast,
		Days:              make([]domain.DayMenu, domain.DaysPerWeek),
	}

	for i, name := range domain.WeekDays {
		m.Days[i] = domain.DayMenu{
			Day:         name,
			DayIndex:    i,
			BreakfastSP: m.WeeklyBreakfastSP,
			ServingSize: servingSize,
		}
		s.drawDailyItems(&m.Days[i])
	}

	s.metrics.MenuGenerated(servingSize)
	s.logger.Info("Weekly menu generated",
		zap.String("week", week),
		zap.Int("serving_size", servingSize),
		zap.String("breakfast_special", breakfast.Name),
	)

	return m, nil
}

// RegenerateSingleDay redraws soup, special, salad and burger for one day.
// Every other day and the weekly breakfast special are left untouched.
// A menu without a weekly breakfast special fails with INVALID_MENU.
func (s *MenuService) RegenerateSingleDay(ctx context.Context, current *domain.WeeklyMenu, dayIndex int) (*domain.WeeklyMenu, error) {
	_, span := s.tracer.Start(ctx, "menu.regenerate_day",
		trace.WithAttributes(attribute.Int("menu.day_index", dayIndex)),
	)
	defer span.End()

	if current == nil {
		err := errors.NewInvalidIndexError(dayIndex).WithCause(domain.ErrNoMenu)
		recordError(span, err)
		return nil, err
	}

	day, err := current.Day(dayIndex)
	if err != nil {
		appErr := errors.NewInvalidIndexError(dayIndex).WithCause(err)
		recordError(span, appErr)
		return nil, appErr
	}

	if current.WeeklyBreakfastSP == nil {
		appErr := errors.NewInvalidMenuError(domain.ErrMissingRecipe)
		recordError(span, appErr)
		return nil, appErr
	}

	s.drawDailyItems(day)
	day.BreakfastSP = current.WeeklyBreakfastSP

	s.metrics.MenuRegenerated(outbound.ScopeDay)
	s.logger.Info("Day regenerated",
		zap.String("week", current.Week),
		zap.String("day", day.Day),
		zap.Int("day_index", dayIndex),
	)

	return current, nil
}

// RegenerateWeeklyBreakfastSP draws a new breakfast special and points every
// day at it in one step.
func (s *MenuService) RegenerateWeeklyBreakfastSP(ctx context.Context, current *domain.WeeklyMenu) (*domain.WeeklyMenu, error) {
	_, span := s.tracer.Start(ctx, "menu.regenerate_breakfast_special")
	defer span.End()

	if current == nil {
		err := errors.NewNoMenuError().WithCause(domain.ErrNoMenu)
		recordError(span, err)
		return nil, err
	}

	breakfast := s.recipes.RandomBreakfast(true, false)
	current.WeeklyBreakfastSP = &breakfast
	for i := range current.Days {
		current.Days[i].BreakfastSP = current.WeeklyBreakfastSP
	}

	s.metrics.MenuRegenerated(outbound.ScopeBreakfastSpecial)
	s.logger.Info("Weekly breakfast special regenerated",
		zap.String("week", current.Week),
		zap.String("breakfast_special", breakfast.Name),
	)

	return current, nil
}

// ValidateMenu reports whether m satisfies the structural invariants.
// It never mutates or repairs m.
func (s *MenuService) ValidateMenu(m *domain.WeeklyMenu) bool {
	return m.Validate() == nil
}

// Validate is ValidateMenu with the failure reason as an INVALID_MENU error
func (s *MenuService) Validate(m *domain.WeeklyMenu) error {
	if err := m.Validate(); err != nil {
		return errors.NewInvalidMenuError(err)
	}
	return nil
}

func (s *MenuService) drawDailyItems(day *domain.DayMenu) {
	soup := s.recipes.RandomFrom(domain.CategorySoups)
	special := s.recipes.RandomFrom(domain.CategorySpecials)
	salad := s.recipes.RandomFrom(domain.CategorySalads)
	burger := s.recipes.RandomFrom(domain.CategoryBurgers)

	day.Soup = &soup
	day.Special = &special
	day.Salad = &salad
	day.Burger = &burger
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

var _ inbound.MenuService = (*MenuService)(nil)
