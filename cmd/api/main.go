package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"

	"github.com/jhoicas/Creditos-api/internal/application/auth"
	"github.com/jhoicas/Creditos-api/internal/application/dto"
	"github.com/jhoicas/Creditos-api/internal/application/ports"
	"github.com/jhoicas/Creditos-api/internal/application/store"
	"github.com/jhoicas/Creditos-api/internal/application/usecase"
	"github.com/jhoicas/Creditos-api/internal/domain/repository"
	infracache "github.com/jhoicas/Creditos-api/internal/infrastructure/cache"
	"github.com/jhoicas/Creditos-api/internal/infrastructure/mail"
	"github.com/jhoicas/Creditos-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Creditos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Creditos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Creditos-api/internal/infrastructure/supabase"
	httpRouter "github.com/jhoicas/Creditos-api/internal/interfaces/http"
	"github.com/jhoicas/Creditos-api/pkg/config"
	"github.com/jhoicas/Creditos-api/pkg/format"
	"github.com/jhoicas/Creditos-api/pkg/logger"
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
	mode := cfg.Backend.Mode()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("mode", mode.String()).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Backend: PostgreSQL en modo conectado, dataset de ejemplo en memoria en demo.
	var backend repository.Backend
	if mode == config.ModeConnected {
		pool, err := postgres.NewPool(ctx, cfg.DB, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, log); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		backend = postgres.NewBackend(pool)
	} else {
		backend = memory.NewWithSampleData()
	}

	dataStore, err := store.New(ctx, backend, store.Options{Locale: cfg.Locale.Tag, Logger: log})
	if err != nil {
		log.Fatal().Err(err).Msg("carga inicial de datos")
	}

	// Caché de simulaciones
	var simCache ports.SimulationCache
	if cfg.Cache.RedisAddr != "" {
		rc := infracache.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword)
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis no responde; las simulaciones se recalculan")
		}
		simCache = rc
	} else {
		simCache = infracache.NewMemoryCache(time.Duration(cfg.Cache.TTLMinutes) * time.Minute)
	}

	// Correo de invitación: sin proveedor lo envía el servicio de auth.
	var mailer ports.Mailer
	switch cfg.Mail.Provider {
	case "smtp":
		mailer = mail.NewSMTPMailer(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.SMTPUser, cfg.Mail.SMTPPassword, cfg.Mail.Sender, log)
	case "mailgun":
		mailer = mail.NewMailgunMailer(cfg.Mail.MailgunDomain, cfg.Mail.MailgunAPIKey, cfg.Mail.Sender, log)
	case "log":
		mailer = mail.NewLogMailer(log)
	}

	// Auth solo en modo conectado; en demo todas las rutas quedan abiertas.
	var authProvider ports.AuthProvider
	if mode == config.ModeConnected {
		authProvider = supabase.NewAuthClient(cfg.Backend.URL, cfg.Backend.AnonKey, cfg.Backend.ServiceRoleKey)
	}
	authUC := auth.NewAuthUseCase(authProvider, dataStore, auth.Config{
		JWTSecret:            cfg.Backend.JWTSecret,
		BootstrapMasterEmail: cfg.Backend.BootstrapMasterEmail,
	}, log)
	var verifier httpRouter.TokenVerifier
	if authProvider != nil {
		verifier = authUC
	}

	formatter := format.New(cfg.Locale.Tag, cfg.Locale.Currency)
	simulationUC := usecase.NewSimulationUseCase(simCache, time.Duration(cfg.Cache.TTLMinutes)*time.Minute, formatter, log)
	dashboardUC := usecase.NewDashboardUseCase(dataStore, formatter)
	overdueUC := usecase.NewOverdueUseCase(dataStore, log)
	inviteUC := usecase.NewInviteUseCase(dataStore, authProvider, mailer, usecase.InviteConfig{
		Enabled:    cfg.Backend.InvitesEnabled(),
		RedirectTo: cfg.Mail.InviteRedirectURL,
	}, log)

	// Barrido periódico de cuotas vencidas
	var scheduler *cron.Cron
	if cfg.OverdueCron != "" {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.OverdueCron, func() {
			if _, err := overdueUC.Run(context.Background(), time.Now()); err != nil {
				log.Error().Err(err).Msg("barrido de cuotas vencidas")
			}
		})
		if err != nil {
			log.Fatal().Err(err).Str("spec", cfg.OverdueCron).Msg("OVERDUE_CRON inválido")
		}
		scheduler.Start()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Créditos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "mode": mode.String()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Store:        dataStore,
		AuthUC:       authUC,
		Verifier:     verifier,
		SimulationUC: simulationUC,
		DashboardUC:  dashboardUC,
		OverdueUC:    overdueUC,
		InviteUC:     inviteUC,
		PDF:          infrapdf.NewStatementGenerator(formatter),
		Status: dto.StatusResponse{
			Mode:           mode.String(),
			InvitesEnabled: inviteUC.Enabled(),
			Locale:         cfg.Locale.Tag,
			Currency:       cfg.Locale.Currency,
		},
		Log: log,
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

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
