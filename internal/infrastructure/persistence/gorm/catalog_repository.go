package gorm

import (
	"context"
	"fmt"

	"github.com/alchemorsel/menugen/internal/domain/menu"
	"github.com/alchemorsel/menugen/internal/ports/outbound"
	"gorm.io/gorm"
)

// CatalogRepository stores the recipe catalog in the menu_recipes table
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Load reads every recipe grouped by category in position order.
// An empty table is reported as menu.ErrCatalogNotFound.
func (r *CatalogRepository) Load(ctx context.Context) (menu.Pools, error) {
	var models []RecipeModel

	result := r.db.WithContext(ctx).
		Order("category ASC").
		Order("position ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", result.Error)
	}

	if len(models) == 0 {
		return nil, menu.ErrCatalogNotFound
	}

	pools := make(menu.Pools)
	for _, model := range models {
		category := menu.Category(model.Category)
		pools[category] = append(pools[category], model.ToDomain())
	}

	return pools, nil
}

// Save replaces the whole catalog in one transaction
func (r *CatalogRepository) Save(ctx context.Context, pools menu.Pools) error {
	models := make([]RecipeModel, 0, pools.Total())
	for category, recipes := range pools {
		for i, recipe := range recipes {
			models = append(models, RecipeToModel(category, i, recipe))
		}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&RecipeModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear catalog: %w", err)
		}
		if len(models) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(models, 100).Error; err != nil {
			return fmt.Errorf("failed to save catalog: %w", err)
		}
		return nil
	})
}

var _ outbound.CatalogRepository = (*CatalogRepository)(nil)
