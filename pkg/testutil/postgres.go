// Package testutil arranca un PostgreSQL efímero con testcontainers para las pruebas de integración.
package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/packstock-api/pkg/config"
)

// PostgresContainer contenedor PostgreSQL de prueba con la configuración lista para postgres.NewPool.
type PostgresContainer struct {
	*postgres.PostgresContainer
	DB config.DBConfig
}

// PostgresContainerConfig configuración del contenedor.
type PostgresContainerConfig struct {
	Database string
	Username string
	Password string
	Image    string // por defecto postgres:15-alpine
	Timezone string
}

// DefaultPostgresConfig valores por defecto para pruebas.
func DefaultPostgresConfig() PostgresContainerConfig {
	return PostgresContainerConfig{
		Database: "packstock_test",
		Username: "test",
		Password: "test",
		Image:    "postgres:15-alpine",
		Timezone: "Africa/Lagos",
	}
}

// NewPostgresContainer arranca el contenedor y espera a que acepte conexiones.
// Requiere Docker; el llamador decide si el error significa saltar la prueba.
func NewPostgresContainer(ctx context.Context, cfg PostgresContainerConfig) (*PostgresContainer, error) {
	def := DefaultPostgresConfig()
	if cfg.Image == "" {
		cfg.Image = def.Image
	}
	if cfg.Database == "" {
		cfg.Database = def.Database
	}
	if cfg.Username == "" {
		cfg.Username = def.Username
	}
	if cfg.Password == "" {
		cfg.Password = def.Password
	}

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage(cfg.Image),
		postgres.WithDatabase(cfg.Database),
		postgres.WithUsername(cfg.Username),
		postgres.WithPassword(cfg.Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("arrancar contenedor postgres: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("connection string: %w", err)
	}

	return &PostgresContainer{
		PostgresContainer: container,
		DB:                config.DBConfig{DatabaseURL: dsn, Timezone: cfg.Timezone, AutoMigrate: true},
	}, nil
}
