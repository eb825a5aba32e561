// Package testutils provides database testing utilities
package testutils

import (
	"context"
	"testing"

	"github.com/alchemorsel/menugen/internal/domain/menu"
	gormrepo "github.com/alchemorsel/menugen/internal/infrastructure/persistence/gorm"
	"github.com/alchemorsel/menugen/internal/infrastructure/persistence/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDatabase wraps an in-memory, migrated catalog database
type TestDatabase struct {
	DB      *gorm.DB
	Catalog *gormrepo.CatalogRepository
	t       *testing.T
}

// SetupTestDatabase opens an in-memory sqlite catalog database that is
// closed when the test ends.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	db, err := sqlite.SetupDatabase(":memory:", logger.Silent)
	require.NoError(t, err, "Failed to set up test database")

	td := &TestDatabase{
		DB:      db,
		Catalog: gormrepo.NewCatalogRepository(db),
		t:       t,
	}
	t.Cleanup(td.Cleanup)
	return td
}

// SeedCatalog stores pools, or the built-in dataset when pools is nil
func (td *TestDatabase) SeedCatalog(pools menu.Pools) {
	td.t.Helper()
	if pools == nil {
		pools = menu.DefaultPools()
	}
	require.NoError(td.t, td.Catalog.Save(context.Background(), pools), "Failed to seed catalog")
}

// CountRecipes returns the number of stored recipe rows
func (td *TestDatabase) CountRecipes() int64 {
	var count int64
	require.NoError(td.t, td.DB.Model(&gormrepo.RecipeModel{}).Count(&count).Error)
	return count
}

// Cleanup closes the database
func (td *TestDatabase) Cleanup() {
	if sqlDB, err := td.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
