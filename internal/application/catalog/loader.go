// Package catalog loads the recipe catalog from storage, falling back to
// the built-in dataset when storage is absent or unreadable.
package catalog

import (
	"context"
	stderrors "errors"

	"github.com/alchemorsel/menugen/internal/domain/menu"
	"github.com/alchemorsel/menugen/internal/ports/inbound"
	"github.com/alchemorsel/menugen/internal/ports/outbound"
	"github.com/alchemorsel/menugen/pkg/errors"
	"go.uber.org/zap"
)

// Outcome says which path LoadCatalog took
type Outcome string

const (
	OutcomeLoaded    Outcome = "loaded"
	OutcomeDefaulted Outcome = "defaulted"
)

// Degradation reasons
const (
	ReasonNotFound  = "catalog storage not found"
	ReasonMalformed = "catalog storage is malformed"
	ReasonReadError = "catalog storage could not be read"
)

// LoadResult is the catalog plus how it was obtained.
// Degraded is set only when Outcome is OutcomeDefaulted and carries the
// CATALOG_LOAD_DEGRADED condition; it is never returned as an error.
type LoadResult struct {
	Catalog   *menu.Catalog
	Outcome   Outcome
	Reason    string
	Degraded  *errors.AppError
	Persisted bool
}

// LoadCatalog reads the pools from repo. A readable document is used as is,
// even with empty pools, since draws from an empty pool yield the category's
// default recipe. Any failure yields the default dataset, which is then
// saved back; a failed save is only logged.
func LoadCatalog(ctx context.Context, repo outbound.CatalogRepository, logger *zap.Logger, opts ...menu.CatalogOption) LoadResult {
	logger = logger.Named("catalog-loader")

	pools, err := repo.Load(ctx)
	if err == nil {
		logger.Info("Recipe catalog loaded", zap.Int("recipes", pools.Total()))
		return LoadResult{
			Catalog: menu.NewCatalog(pools, opts...),
			Outcome: OutcomeLoaded,
		}
	}

	reason := reasonFor(err)
	logger.Warn("Recipe catalog unavailable, using default dataset",
		zap.String("reason", reason),
		zap.Error(err),
	)

	defaults := menu.DefaultPools()
	result := LoadResult{
		Catalog:  menu.NewCatalog(defaults, opts...),
		Outcome:  OutcomeDefaulted,
		Reason:   reason,
		Degraded: errors.NewCatalogDegradedError(reason, err),
	}

	if saveErr := repo.Save(ctx, defaults); saveErr != nil {
		logger.Warn("Failed to persist default recipe catalog", zap.Error(saveErr))
		return result
	}
	result.Persisted = true
	return result
}

func reasonFor(err error) string {
	switch {
	case stderrors.Is(err, menu.ErrCatalogNotFound):
		return ReasonNotFound
	case stderrors.Is(err, menu.ErrCatalogMalformed):
		return ReasonMalformed
	default:
		return ReasonReadError
	}
}

// Service holds the catalog loaded at startup; it is read-only afterwards.
type Service struct {
	result LoadResult
}

// NewService loads the catalog once and records the outcome in metrics
func NewService(ctx context.Context, repo outbound.CatalogRepository, metrics outbound.MenuMetrics, logger *zap.Logger, opts ...menu.CatalogOption) *Service {
	result := LoadCatalog(ctx, repo, logger, opts...)
	if metrics != nil {
		metrics.CatalogLoaded(string(result.Outcome), result.Catalog.Counts())
	}
	return &Service{result: result}
}

// Catalog returns the loaded catalog
func (s *Service) Catalog() *menu.Catalog {
	return s.result.Catalog
}

// Result returns the full load result
func (s *Service) Result() LoadResult {
	return s.result
}

// Summary reports the load outcome and pool sizes
func (s *Service) Summary(_ context.Context) inbound.CatalogSummary {
	result := s.Result()
	counts := make(map[string]int, len(menu.Categories))
	total := 0
	for category, n := range result.Catalog.Counts() {
		counts[string(category)] = n
		total += n
	}
	return inbound.CatalogSummary{
		Outcome: string(result.Outcome),
		Reason:  result.Reason,
		Total:   total,
		Counts:  counts,
	}
}

var _ inbound.CatalogService = (*Service)(nil)
