// Package integration runs the menu API end to end over a SQLite catalog
//go:build integration
// +build integration

package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alchemorsel/menugen/internal/application/catalog"
	"github.com/alchemorsel/menugen/internal/application/export"
	menuapp "github.com/alchemorsel/menugen/internal/application/menu"
	"github.com/alchemorsel/menugen/internal/domain/menu"
	"github.com/alchemorsel/menugen/internal/infrastructure/config"
	"github.com/alchemorsel/menugen/internal/infrastructure/container"
	"github.com/alchemorsel/menugen/internal/infrastructure/http/apiserver"
	"github.com/alchemorsel/menugen/internal/infrastructure/http/handlers"
	"github.com/alchemorsel/menugen/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/menugen/internal/infrastructure/monitoring"
	"github.com/alchemorsel/menugen/internal/infrastructure/persistence/memory"
	"github.com/alchemorsel/menugen/internal/infrastructure/security"
	"github.com/alchemorsel/menugen/internal/infrastructure/session"
	"github.com/alchemorsel/menugen/pkg/healthcheck"
	"github.com/alchemorsel/menugen/test/testutils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type menuResponse struct {
	Success bool            `json:"success"`
	Data    menu.WeeklyMenu `json:"data"`
}

// MenuAPITestSuite drives the assembled server the way a browser session would
type MenuAPITestSuite struct {
	suite.Suite
	testDB *testutils.TestDatabase
	server *httptest.Server
	client *http.Client
	http   *testutils.HTTPAssertions
	menus  *testutils.MenuAssertions
	ctx    context.Context
}

func (suite *MenuAPITestSuite) SetupTest() {
	suite.ctx = context.Background()
	logger := zap.NewNop()

	suite.testDB = testutils.SetupTestDatabase(suite.T())
	suite.testDB.SeedCatalog(nil)

	cfg := &config.Config{
		App:    config.AppConfig{Name: "menugen", Version: "test", Environment: "test"},
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 8080, RequestTimeout: 5 * time.Second},
		Session: config.SessionConfig{
			CookieName: "menugen_session",
			TTL:        time.Hour,
			KeyPrefix:  session.DefaultKeyPrefix,
		},
		Menu:   config.MenuConfig{DefaultServingSize: 25},
		Export: config.ExportConfig{Formats: []string{"text", "csv", "json", "pdf"}},
		Monitoring: config.MonitoringConfig{
			EnableMetrics:   true,
			MetricsPath:     "/metrics",
			HealthCheckPath: "/health",
		},
	}

	metrics := monitoring.NewMetricsCollector(prometheus.NewRegistry(), logger)
	catalogService := catalog.NewService(suite.ctx, suite.testDB.Catalog, metrics, logger)
	menuService := menuapp.NewMenuService(catalogService.Catalog(), logger, menuapp.WithMetrics(metrics))

	cache := memory.NewCacheRepository()
	suite.T().Cleanup(func() { cache.Close() })

	h := handlers.NewMenuHandlers(
		menuService,
		export.NewExportService(cfg.Export.Formats, metrics, logger),
		catalogService,
		session.NewMenuSessionStore(cache, menuService, cfg.Session.KeyPrefix, cfg.Session.TTL, logger),
		security.NewValidationService(logger),
		cfg,
		logger,
	)

	sqlDB, err := suite.testDB.DB.DB()
	require.NoError(suite.T(), err)
	health := healthcheck.New(cfg.App.Version, logger)
	health.Register("catalog", container.CatalogChecker(catalogService))
	health.Register("database", healthcheck.NewDatabaseChecker(sqlDB))

	api := apiserver.NewServer(cfg, logger, h, middleware.New(cfg, logger), metrics, health)
	suite.server = httptest.NewServer(api.Handler())
	suite.T().Cleanup(suite.server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(suite.T(), err)
	suite.client = &http.Client{Jar: jar}
	suite.http = testutils.NewHTTPAssertions(suite.T())
	suite.menus = testutils.NewMenuAssertions(suite.T())
}

func (suite *MenuAPITestSuite) do(method, path, body string) *http.Response {
	req, err := http.NewRequestWithContext(suite.ctx, method, suite.server.URL+path, strings.NewReader(body))
	require.NoError(suite.T(), err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := suite.client.Do(req)
	require.NoError(suite.T(), err)
	return resp
}

func (suite *MenuAPITestSuite) readMenu(resp *http.Response) *menu.WeeklyMenu {
	var envelope menuResponse
	suite.http.JSONResponse(resp, &envelope)
	suite.True(envelope.Success)
	return &envelope.Data
}

func (suite *MenuAPITestSuite) TestWeeklyMenuLifecycle() {
	suite.Run("Generate_ShouldStoreMenuInSession", func() {
		resp := suite.do(http.MethodPost, "/api/v1/menu/generate", `{"week":"2024-10","serving_size":40}`)
		suite.http.StatusCode(resp, http.StatusOK)

		generated := suite.readMenu(resp)
		suite.menus.ValidMenu(generated)
		suite.Equal("2024-10", generated.Week)
		suite.Equal(40, generated.ServingSize)

		current := suite.readMenu(suite.do(http.MethodGet, "/api/v1/menu", ""))
		suite.Equal(generated.Days, current.Days)
	})

	suite.Run("RegenerateDay_ShouldLeaveOtherDaysAlone", func() {
		before := suite.readMenu(suite.do(http.MethodGet, "/api/v1/menu", ""))

		resp := suite.do(http.MethodPost, "/api/v1/menu/days/3/regenerate", "")
		suite.http.StatusCode(resp, http.StatusOK)
		after := suite.readMenu(resp)

		suite.menus.ValidMenu(after)
		suite.menus.DaysUnchangedExcept(before, after, 3)
	})

	suite.Run("RegenerateBreakfastSpecial_ShouldStayShared", func() {
		resp := suite.do(http.MethodPost, "/api/v1/menu/breakfast-special/regenerate", "")
		suite.http.StatusCode(resp, http.StatusOK)
		after := suite.readMenu(resp)

		suite.menus.ValidMenu(after)
		for _, day := range after.Days {
			suite.Require().NotNil(day.BreakfastSP)
			suite.True(day.BreakfastSP.Equal(*after.WeeklyBreakfastSP), day.Day)
		}
	})

	suite.Run("DownloadCSV_ShouldAttachFile", func() {
		resp := suite.do(http.MethodGet, "/api/v1/menu/export/download?format=csv", "")
		defer resp.Body.Close()
		suite.http.StatusCode(resp, http.StatusOK)
		suite.http.Header(resp, "Content-Disposition", `attachment; filename="Weekly_Menu_2024_10.csv"`)

		body, err := io.ReadAll(resp.Body)
		suite.Require().NoError(err)
		suite.Equal(36, strings.Count(string(body), "\n"))
	})

	suite.Run("OutOfRangeDay_ShouldBeRejected", func() {
		resp := suite.do(http.MethodPost, "/api/v1/menu/days/7/regenerate", "")

		suite.http.StatusCode(resp, http.StatusBadRequest)
		suite.http.ErrorCode(resp, "INVALID_INDEX")
	})
}

func (suite *MenuAPITestSuite) TestHealth_ReportsCatalogAndDatabase() {
	resp := suite.do(http.MethodGet, "/health", "")
	suite.http.StatusCode(resp, http.StatusOK)

	var report healthcheck.Response
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&report))
	resp.Body.Close()

	suite.Equal(healthcheck.StatusHealthy, report.Status)
	suite.Require().Len(report.Checks, 2)
	suite.Equal("catalog", report.Checks[0].Name)
	suite.Equal("database", report.Checks[1].Name)
}

func (suite *MenuAPITestSuite) TestCatalogSummary_ComesFromDatabase() {
	var envelope struct {
		Data struct {
			Outcome string         `json:"outcome"`
			Counts  map[string]int `json:"counts"`
		} `json:"data"`
	}
	resp := suite.do(http.MethodGet, "/api/v1/catalog", "")
	suite.http.StatusCode(resp, http.StatusOK)
	suite.http.JSONResponse(resp, &envelope)

	suite.Equal(string(catalog.OutcomeLoaded), envelope.Data.Outcome)
	suite.Equal(5, envelope.Data.Counts[string(menu.CategorySoups)])
}

func TestMenuAPITestSuite(t *testing.T) {
	suite.Run(t, new(MenuAPITestSuite))
}
