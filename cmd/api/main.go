package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/packstock-api/internal/application/auth"
	"github.com/jhoicas/packstock-api/internal/application/inventory"
	"github.com/jhoicas/packstock-api/internal/application/notification"
	"github.com/jhoicas/packstock-api/internal/application/usecase"
	"github.com/jhoicas/packstock-api/internal/infrastructure/email"
	"github.com/jhoicas/packstock-api/internal/infrastructure/messaging"
	infrapdf "github.com/jhoicas/packstock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/packstock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/packstock-api/internal/interfaces/http"
	"github.com/jhoicas/packstock-api/pkg/config"
	"github.com/jhoicas/packstock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Strs("applied", applied).Msg("migraciones al día")
	}

	itemRepo := postgres.NewInventoryItemRepository(pool)
	profitRepo := postgres.NewProfitRepository(pool)
	adminRepo := postgres.NewAdminRepository(pool)
	inviteRepo := postgres.NewInviteCodeRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	saleUC := inventory.NewSaleUseCase(txRunner)
	restockUC := inventory.NewRestockUseCase(txRunner)
	replenishUC := inventory.NewReplenishUseCase(txRunner)
	inventoryUC := usecase.NewInventoryUseCase(itemRepo)
	profitUC := usecase.NewProfitUseCase(profitRepo, infrapdf.NewMarotoProfitReport(cfg.App.Name))
	authUC := auth.NewAuthUseCase(adminRepo, inviteRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Canales de alerta de stock bajo: ninguno es obligatorio.
	var alerters []notification.Alerter
	if cfg.SMTP.Enabled() {
		alerters = append(alerters, email.NewLowStockMailer(cfg.SMTP))
	}
	var rabbit *messaging.RabbitAlerter
	if cfg.AMQP.Enabled() {
		rabbit, err = messaging.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.App.Name, log.Component("rabbitmq"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		alerters = append(alerters, rabbit)
	}
	if len(alerters) == 0 {
		log.Warn().Msg("sin canales de alerta configurados: el stock bajo solo se registra en el log")
	}
	notifier := notification.NewLowStockNotifier(itemRepo, log.Component("low_stock"), alerters...)

	loc, err := time.LoadLocation(cfg.Notify.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("tz", cfg.Notify.Timezone).Msg("zona horaria de notificaciones")
	}
	dailyCheck := notification.NewDailyScheduler(notifier, cfg.Notify.Hour, loc, log.Component("daily_check"))
	replenishScheduler := inventory.NewReplenishScheduler(replenishUC, cfg.Replenish.Interval(), log.Component("replenish"))

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	}, log.Component("http"))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PackStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sales:           saleUC,
		Restock:         restockUC,
		Inventory:       inventoryUC,
		Replenish:       replenishScheduler,
		Profit:          profitUC,
		Notifications:   notifier,
		Auth:            authUC,
		JWTSecret:       cfg.JWT.Secret,
		RateLimitMax:    cfg.RateLimit.Max,
		RateLimitWindow: cfg.RateLimit.Window(),
	})

	replenishScheduler.Start(ctx)
	dailyCheck.Start(ctx)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// Primero se detienen los timers; una reposición en curso termina antes de cerrar el pool.
	replenishScheduler.Stop()
	dailyCheck.Stop()
	replenishScheduler.Wait()

	if rabbit != nil {
		if err := rabbit.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar conexión RabbitMQ")
		}
	}

	log.Info().Msg("aplicación detenida")
}
