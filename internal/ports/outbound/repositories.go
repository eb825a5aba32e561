// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/alchemorsel/menugen/internal/domain/menu"
)

// ErrCacheMiss is returned by CacheRepository.Get when the key is absent
var ErrCacheMiss = errors.New("cache miss")

// CatalogRepository loads and stores the categorized recipe pools.
// Load returns menu.ErrCatalogNotFound when nothing has been stored yet
// and menu.ErrCatalogMalformed when stored data cannot be decoded.
type CatalogRepository interface {
	Load(ctx context.Context) (menu.Pools, error)
	Save(ctx context.Context, pools menu.Pools) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// MenuSessionRepository keeps the current weekly menu of each session.
// Load returns (nil, nil) when the session has no usable menu.
type MenuSessionRepository interface {
	NewSessionID() string
	Load(ctx context.Context, sessionID string) (*menu.WeeklyMenu, error)
	Save(ctx context.Context, sessionID string, m *menu.WeeklyMenu) error
	Delete(ctx context.Context, sessionID string) error
}

// MenuMetrics records menu activity
type MenuMetrics interface {
	MenuGenerated(servingSize int)
	MenuRegenerated(scope string)
	MenuExported(format string, success bool)
	CatalogLoaded(outcome string, counts map[menu.Category]int)
}

// Regeneration scopes reported to MenuMetrics
const (
	ScopeDay              = "day"
	ScopeBreakfastSpecial = "breakfast_special"
)

// NoopMetrics discards every measurement
type NoopMetrics struct{}

func (NoopMetrics) MenuGenerated(int) {}
func (NoopMetrics) MenuRegenerated(string) {}
func (NoopMetrics) MenuExported(string, bool) {}
func (NoopMetrics) CatalogLoaded(string, map[menu.Category]int) {}
