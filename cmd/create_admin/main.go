// create_admin crea el primer administrador y un código de invitación de 30 días.
//
// Uso: go run ./cmd/create_admin [--force]
// Lee FIRST_ADMIN_USERNAME, FIRST_ADMIN_EMAIL y FIRST_ADMIN_PASSWORD (o .env).
// Sin --force no hace nada si ya existe algún administrador.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/packstock-api/internal/application/auth"
	"github.com/jhoicas/packstock-api/internal/domain"
	"github.com/jhoicas/packstock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/packstock-api/pkg/config"
	"github.com/jhoicas/packstock-api/pkg/logger"
)

func main() {
	force := flag.Bool("force", false, "crear el administrador aunque ya existan otros")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if cfg.FirstAdmin.Username == "" || cfg.FirstAdmin.Email == "" || cfg.FirstAdmin.Password == "" {
		log.Fatal().Msg("definir FIRST_ADMIN_USERNAME, FIRST_ADMIN_EMAIL y FIRST_ADMIN_PASSWORD")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if _, err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	uc := auth.NewAuthUseCase(
		postgres.NewAdminRepository(pool),
		postgres.NewInviteCodeRepository(pool),
		postgres.NewTxRunner(pool),
		auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
	)
	admin, invite, err := uc.CreateFirstAdmin(ctx, auth.FirstAdminInput{
		Username: cfg.FirstAdmin.Username,
		Email:    cfg.FirstAdmin.Email,
		Password: cfg.FirstAdmin.Password,
		Force:    *force,
	})
	switch {
	case errors.Is(err, domain.ErrConflict):
		log.Warn().Msg("ya existen administradores; usar --force para crear otro")
		return
	case errors.Is(err, domain.ErrInvalidInput):
		log.Fatal().Msg("datos inválidos: la contraseña requiere 8+ caracteres con mayúscula, minúscula, número y carácter especial")
	case errors.Is(err, domain.ErrDuplicate):
		log.Fatal().Str("username", cfg.FirstAdmin.Username).Msg("username o email ya registrados")
	case err != nil:
		log.Fatal().Err(err).Msg("crear administrador")
	}

	log.Info().Str("id", admin.ID).Str("username", admin.Username).Msg("administrador creado")
	fmt.Printf("Código de invitación: %s\n", invite.Code)
	if invite.ExpiresAt != nil {
		fmt.Printf("Vence: %s\n", invite.ExpiresAt.Format(time.RFC3339))
	}
}
