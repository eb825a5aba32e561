//go:build integration
// +build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alchemorsel/menugen/internal/domain/menu"
	"github.com/alchemorsel/menugen/internal/infrastructure/config"
	gormrepo "github.com/alchemorsel/menugen/internal/infrastructure/persistence/gorm"
	"github.com/docker/go-connections/nat"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

const (
	testImage    = "postgres:15-alpine"
	testDatabase = "menugen_test"
	testUser     = "test_user"
	testPassword = "test_password"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	dsnFor := func(host string, port nat.Port) string {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			testUser, testPassword, host, port.Port(), testDatabase)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       testDatabase,
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", dsnFor).
				WithStartupTimeout(60 * time.Second),
			Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw"},
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start postgres container")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return dsnFor(host, port)
}

func TestConnect_MigratesAndStoresCatalog(t *testing.T) {
	ctx := context.Background()
	dsn := startPostgres(t)
	cfg := config.CatalogConfig{
		Driver:       config.CatalogDriverPostgres,
		DSN:          dsn,
		ReplicaDSNs:  []string{dsn},
		MaxOpenConns: 4,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	}

	db, err := Connect(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	repo := gormrepo.NewCatalogRepository(db)

	_, err = repo.Load(ctx)
	assert.ErrorIs(t, err, menu.ErrCatalogNotFound)

	require.NoError(t, repo.Save(ctx, menu.DefaultPools()))
	pools, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, menu.DefaultPools().Total(), pools.Total())
	assert.Equal(t, menu.DefaultPools()[menu.CategorySoups], pools[menu.CategorySoups])

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// migrations already applied: a second connect must be a no-op upgrade
	again, err := Connect(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	pools, err = gormrepo.NewCatalogRepository(again).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, menu.DefaultPools().Total(), pools.Total())
}
