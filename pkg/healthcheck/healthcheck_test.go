package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alchemorsel/menugen/internal/infrastructure/persistence/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

func fixed(status Status, message string) *CustomChecker {
	return NewCustomChecker("fixed", func(context.Context) (Status, string, interface{}) {
		return status, message, nil
	})
}

type HealthCheckTestSuite struct {
	suite.Suite
	hc *HealthCheck
}

func (suite *HealthCheckTestSuite) SetupTest() {
	suite.hc = New("1.0.0", zap.NewNop())
	suite.hc.SetCacheTTL(0)
}

func (suite *HealthCheckTestSuite) TestAggregateStatus() {
	suite.Run("NoCheckers_ShouldBeHealthy", func() {
		suite.Equal(StatusHealthy, suite.hc.Check(context.Background()).Status)
	})

	suite.Run("Degraded_ShouldDegradeOverall", func() {
		suite.hc.Register("catalog", fixed(StatusDegraded, "defaults in use"))
		suite.hc.Register("sessions", fixed(StatusHealthy, ""))

		resp := suite.hc.Check(context.Background())

		suite.Equal(StatusDegraded, resp.Status)
		suite.Require().Len(resp.Checks, 2)
		suite.Equal("catalog", resp.Checks[0].Name)
		suite.Equal("sessions", resp.Checks[1].Name)
	})

	suite.Run("Unhealthy_ShouldWin", func() {
		suite.hc.Register("redis", fixed(StatusUnhealthy, "connection refused"))

		suite.Equal(StatusUnhealthy, suite.hc.Check(context.Background()).Status)
	})
}

func (suite *HealthCheckTestSuite) TestHandler() {
	suite.hc.Register("redis", fixed(StatusUnhealthy, "connection refused"))

	rec := httptest.NewRecorder()
	suite.hc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	suite.Equal(http.StatusServiceUnavailable, rec.Code)
	var body map[string]interface{}
	suite.Require().NoError(json.NewDecoder(rec.Body).Decode(&body))
	suite.Equal("unhealthy", body["status"])
	suite.Equal("1.0.0", body["version"])
	suite.Contains(body, "total_duration_ms")
}

func (suite *HealthCheckTestSuite) TestLivenessHandler() {
	suite.hc.Register("redis", fixed(StatusUnhealthy, "down"))

	rec := httptest.NewRecorder()
	suite.hc.LivenessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "alive")
}

func TestHealthCheckTestSuite(t *testing.T) {
	suite.Run(t, new(HealthCheckTestSuite))
}

func TestCheck_IsCached(t *testing.T) {
	hc := New("1.0.0", zap.NewNop())
	hc.SetCacheTTL(time.Minute)
	calls := 0
	hc.Register("counter", NewCustomChecker("counter", func(context.Context) (Status, string, interface{}) {
		calls++
		return StatusHealthy, "", nil
	}))

	hc.Check(context.Background())
	hc.Check(context.Background())

	assert.Equal(t, 1, calls)
}

func TestDatabaseChecker(t *testing.T) {
	db, err := sqlite.SetupDatabase(":memory:", logger.Silent)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	check := NewDatabaseChecker(sqlDB).Check(context.Background())
	assert.Equal(t, StatusHealthy, check.Status)

	require.NoError(t, sqlDB.Close())
	check = NewDatabaseChecker(sqlDB).Check(context.Background())
	assert.Equal(t, StatusUnhealthy, check.Status)
	assert.NotEmpty(t, check.Message)
}
