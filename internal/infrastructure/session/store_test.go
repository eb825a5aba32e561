package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alchemorsel/menugen/internal/domain/menu"
	"github.com/alchemorsel/menugen/internal/infrastructure/persistence/memory"
	"github.com/alchemorsel/menugen/test/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

type structuralValidator struct{}

func (structuralValidator) ValidateMenu(m *menu.WeeklyMenu) bool {
	return m.Validate() == nil
}

type MenuSessionStoreTestSuite struct {
	suite.Suite
	cache   *memory.CacheRepository
	store   *MenuSessionStore
	logs    *observer.ObservedLogs
	factory *testutils.RecipeFactory
	ctx     context.Context
}

func (suite *MenuSessionStoreTestSuite) SetupTest() {
	core, logs := observer.New(zapcore.WarnLevel)
	suite.logs = logs
	suite.cache = memory.NewCacheRepository()
	suite.store = NewMenuSessionStore(suite.cache, structuralValidator{}, "", time.Hour, zap.New(core))
	suite.factory = testutils.NewRecipeFactory(42)
	suite.ctx = context.Background()
}

func (suite *MenuSessionStoreTestSuite) TearDownTest() {
	suite.cache.Close()
}

func (suite *MenuSessionStoreTestSuite) TestNewSessionID() {
	id := suite.store.NewSessionID()

	_, err := uuid.Parse(id)
	suite.NoError(err)
	suite.NotEqual(id, suite.store.NewSessionID())
}

func (suite *MenuSessionStoreTestSuite) TestLoad_Empty() {
	suite.Run("UnknownSession_ShouldReturnNil", func() {
		m, err := suite.store.Load(suite.ctx, "unknown")
		suite.NoError(err)
		suite.Nil(m)
	})

	suite.Run("BlankSessionID_ShouldReturnNil", func() {
		m, err := suite.store.Load(suite.ctx, "")
		suite.NoError(err)
		suite.Nil(m)
	})
}

func (suite *MenuSessionStoreTestSuite) TestSaveThenLoad() {
	// Arrange
	id := suite.store.NewSessionID()
	original := suite.factory.WeeklyMenu("2024-10", 30)

	// Act
	suite.Require().NoError(suite.store.Save(suite.ctx, id, original))
	loaded, err := suite.store.Load(suite.ctx, id)

	// Assert
	suite.Require().NoError(err)
	suite.Require().NotNil(loaded)
	suite.Equal("2024-10", loaded.Week)
	suite.Equal(30, loaded.ServingSize)
	suite.NoError(loaded.CheckInvariants())
	for i := range loaded.Days {
		suite.Same(loaded.WeeklyBreakfastSP, loaded.Days[i].BreakfastSP)
	}

	exists, _ := suite.cache.Exists(suite.ctx, DefaultKeyPrefix+id+":menu")
	suite.True(exists)
}

func (suite *MenuSessionStoreTestSuite) TestLoad_InvalidMenuIsDiscarded() {
	id := suite.store.NewSessionID()
	broken := suite.factory.WeeklyMenu("2024-10", 25)
	broken.Days = broken.Days[:6]
	data, err := json.Marshal(broken)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.cache.Set(suite.ctx, DefaultKeyPrefix+id+":menu", data, time.Hour))

	loaded, err := suite.store.Load(suite.ctx, id)

	suite.NoError(err)
	suite.Nil(loaded)
	suite.Equal(1, suite.logs.FilterMessage("Discarding unusable session menu").Len())
	exists, _ := suite.cache.Exists(suite.ctx, DefaultKeyPrefix+id+":menu")
	suite.False(exists)
}

func (suite *MenuSessionStoreTestSuite) TestLoad_GarbageIsDiscarded() {
	id := suite.store.NewSessionID()
	suite.Require().NoError(suite.cache.Set(suite.ctx, DefaultKeyPrefix+id+":menu", []byte("{not json"), time.Hour))

	loaded, err := suite.store.Load(suite.ctx, id)

	suite.NoError(err)
	suite.Nil(loaded)
}

func (suite *MenuSessionStoreTestSuite) TestSave_NilMenu() {
	suite.ErrorIs(suite.store.Save(suite.ctx, "id", nil), menu.ErrNoMenu)
}

func (suite *MenuSessionStoreTestSuite) TestDelete() {
	id := suite.store.NewSessionID()
	suite.Require().NoError(suite.store.Save(suite.ctx, id, suite.factory.WeeklyMenu("2024-10", 25)))

	suite.Require().NoError(suite.store.Delete(suite.ctx, id))

	loaded, err := suite.store.Load(suite.ctx, id)
	suite.NoError(err)
	suite.Nil(loaded)
}

func TestMenuSessionStoreTestSuite(t *testing.T) {
	suite.Run(t, new(MenuSessionStoreTestSuite))
}

func TestMenuSessionStore_CacheFailures(t *testing.T) {
	cache := new(testutils.MockCacheRepository)
	store := NewMenuSessionStore(cache, structuralValidator{}, "test:", 10*time.Minute, zap.NewNop())
	ctx := context.Background()
	boom := errors.New("connection refused")

	cache.On("Get", ctx, "test:abc:menu").Return(nil, boom).Once()
	cache.On("Set", ctx, "test:abc:menu", mock.Anything, 10*time.Minute).Return(boom).Once()

	_, err := store.Load(ctx, "abc")
	assert.ErrorIs(t, err, boom)

	err = store.Save(ctx, "abc", testutils.NewRecipeFactory(1).WeeklyMenu("2024-01", 10))
	assert.ErrorIs(t, err, boom)

	cache.AssertExpectations(t)
}
