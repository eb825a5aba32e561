// Package testutils provides mock implementations for testing
package testutils

import (
	"context"
	"time"

	"github.com/alchemorsel/menugen/internal/domain/menu"
	"github.com/alchemorsel/menugen/internal/ports/outbound"
	"github.com/stretchr/testify/mock"
)

// MockCatalogRepository provides a mock implementation of CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

// Load loads the catalog
func (m *MockCatalogRepository) Load(ctx context.Context) (menu.Pools, error) {
	args := m.Called(ctx)
	pools, _ := args.Get(0).(menu.Pools)
	return pools, args.Error(1)
}

// Save saves the catalog
func (m *MockCatalogRepository) Save(ctx context.Context, pools menu.Pools) error {
	return m.Called(ctx, pools).Error(0)
}

// MockCacheRepository provides a mock implementation of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

var (
	_ outbound.CatalogRepository = (*MockCatalogRepository)(nil)
	_ outbound.CacheRepository   = (*MockCacheRepository)(nil)
)
