// Package session keeps each visitor's current weekly menu between requests
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alchemorsel/menugen/internal/domain/menu"
	"github.com/alchemorsel/menugen/internal/ports/outbound"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultKeyPrefix namespaces session keys in a shared cache
const DefaultKeyPrefix = "menugen:session:"

// MenuValidator gates menus read back from storage
type MenuValidator interface {
	ValidateMenu(m *menu.WeeklyMenu) bool
}

// MenuSessionStore stores one WeeklyMenu per session id as JSON in a cache
type MenuSessionStore struct {
	cache     outbound.CacheRepository
	validator MenuValidator
	prefix    string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewMenuSessionStore creates a store on top of cache. Menus that fail the
// validator on load are dropped and reported as absent.
func NewMenuSessionStore(cache outbound.CacheRepository, validator MenuValidator, prefix string, ttl time.Duration, logger *zap.Logger) *MenuSessionStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &MenuSessionStore{
		cache:     cache,
		validator: validator,
		prefix:    prefix,
		ttl:       ttl,
		logger:    logger.Named("menu-session"),
	}
}

// NewSessionID returns a random session identifier
func (s *MenuSessionStore) NewSessionID() string {
	return uuid.NewString()
}

func (s *MenuSessionStore) key(sessionID string) string {
	return s.prefix + sessionID + ":menu"
}

// Load returns the stored menu or nil when there is none or it is unusable
func (s *MenuSessionStore) Load(ctx context.Context, sessionID string) (*menu.WeeklyMenu, error) {
	if sessionID == "" {
		return nil, nil
	}

	data, err := s.cache.Get(ctx, s.key(sessionID))
	if errors.Is(err, outbound.ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session menu: %w", err)
	}

	var m menu.WeeklyMenu
	if err := json.Unmarshal(data, &m); err != nil {
		s.discard(ctx, sessionID, err)
		return nil, nil
	}

	if !s.validator.ValidateMenu(&m) {
		s.discard(ctx, sessionID, m.Validate())
		return nil, nil
	}

	relinkBreakfast(&m)
	return &m, nil
}

// Save stores m under sessionID, replacing any previous menu
func (s *MenuSessionStore) Save(ctx context.Context, sessionID string, m *menu.WeeklyMenu) error {
	if m == nil {
		return menu.ErrNoMenu
	}

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode session menu: %w", err)
	}

	if err := s.cache.Set(ctx, s.key(sessionID), data, s.ttl); err != nil {
		return fmt.Errorf("failed to save session menu: %w", err)
	}
	return nil
}

// Delete forgets the session's menu
func (s *MenuSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, s.key(sessionID))
}

func (s *MenuSessionStore) discard(ctx context.Context, sessionID string, reason error) {
	s.logger.Warn("Discarding unusable session menu",
		zap.String("session_id", sessionID),
		zap.Error(reason))

	if err := s.cache.Delete(ctx, s.key(sessionID)); err != nil {
		s.logger.Warn("Failed to delete unusable session menu",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
}

// relinkBreakfast restores the shared breakfast special reference that JSON
// decoding splits into per-day copies.
func relinkBreakfast(m *menu.WeeklyMenu) {
	if m.WeeklyBreakfastSP == nil {
		return
	}
	for i := range m.Days {
		if sp := m.Days[i].BreakfastSP; sp != nil && sp.Equal(*m.WeeklyBreakfastSP) {
			m.Days[i].BreakfastSP = m.WeeklyBreakfastSP
		}
	}
}

var _ outbound.MenuSessionRepository = (*MenuSessionStore)(nil)
