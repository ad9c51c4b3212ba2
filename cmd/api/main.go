package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/bodega-api/internal/application/auth"
	"github.com/jhoicas/bodega-api/internal/application/ledger"
	"github.com/jhoicas/bodega-api/internal/application/order"
	"github.com/jhoicas/bodega-api/internal/application/partner"
	"github.com/jhoicas/bodega-api/internal/application/report"
	infraai "github.com/jhoicas/bodega-api/internal/infrastructure/ai"
	"github.com/jhoicas/bodega-api/internal/infrastructure/bolt"
	infrapdf "github.com/jhoicas/bodega-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/bodega-api/internal/interfaces/http"
	"github.com/jhoicas/bodega-api/pkg/config"
	"github.com/jhoicas/bodega-api/pkg/logger"
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
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if dir := filepath.Dir(cfg.Store.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Fatal().Err(err).Str("dir", dir).Msg("crear directorio de datos")
		}
	}
	store, err := bolt.Open(cfg.Store.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Store.Path).Msg("abrir almacén")
	}
	defer store.Close()

	productRepo := bolt.NewProductRepository(store.DB())
	checkoutRepo := bolt.NewCheckoutRepository(store.DB())
	userRepo := bolt.NewUserRepository(store.DB())
	partnerRepo := bolt.NewPartnerRepository(store.DB())
	orderRepo := bolt.NewOrderRepository(store.DB())
	txRunner := bolt.NewTxRunner(store)

	ledgerUC := ledger.NewLedgerUseCase(txRunner, productRepo, checkoutRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	partnerUC := partner.NewPartnerUseCase(partnerRepo)

	geminiSvc := infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	orderUC := order.NewOrderUseCase(orderRepo, geminiSvc)

	labelGenerator := infrapdf.NewMarotoLabelGenerator()
	reportUC := report.NewReportUseCase(productRepo, checkoutRepo, labelGenerator)

	// Primer arranque: cuenta admin/admin para poder entrar al sistema.
	seeded, err := authUC.SeedDefaultAdmin()
	if err != nil {
		log.Fatal().Err(err).Msg("seed de usuario admin")
	}
	if seeded {
		log.Warn().Msg("usuario admin/admin creado; cambie la contraseña de inmediato")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:  ledgerUC,
		AuthUC:    authUC,
		PartnerUC: partnerUC,
		OrderUC:   orderUC,
		ReportUC:  reportUC,
		JWTSecret: cfg.JWT.Secret,
	})

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

	log.Info().Msg("aplicación detenida")
}
