package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/Hoteleria-api/internal/application/analytics"
	"github.com/jhoicas/Hoteleria-api/internal/application/auth"
	"github.com/jhoicas/Hoteleria-api/internal/application/reports"
	"github.com/jhoicas/Hoteleria-api/internal/application/usecase"
	"github.com/jhoicas/Hoteleria-api/internal/infrastructure/cache"
	infraexport "github.com/jhoicas/Hoteleria-api/internal/infrastructure/export"
	"github.com/jhoicas/Hoteleria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Hoteleria-api/internal/interfaces/http"
	"github.com/jhoicas/Hoteleria-api/pkg/config"
	"github.com/jhoicas/Hoteleria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
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

	reservationRepo := postgres.NewReservationRepository(pool)
	roomRepo := postgres.NewRoomRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	metricsRepo := postgres.NewMetricsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de KPIs opcional: sin REDIS_ADDR el dashboard consulta directo.
	var kpiCache appanalytics.SnapshotCache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewKpiCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisCache.Close()
		kpiCache = redisCache
	}

	dashboardUC := appanalytics.NewDashboardUseCase(
		metricsRepo, kpiCache, time.Duration(cfg.Redis.KpiTTLSeconds)*time.Second,
	)
	reservationUC := usecase.NewReservationUseCase(reservationRepo, roomRepo, txRunner)
	roomUC := usecase.NewRoomUseCase(roomRepo, metricsRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	exportUC := reports.NewExportUseCase(
		reservationRepo, roomRepo, userRepo, metricsRepo,
		map[string]reports.Renderer{
			reports.FormatPDF:   infraexport.NewPDFRenderer(),
			reports.FormatCSV:   infraexport.NewCSVRenderer(),
			reports.FormatExcel: infraexport.NewXLSXRenderer(),
		},
	)
	jobManager := reports.NewJobManager(exportUC, int64(cfg.Reports.MaxConcurrent), log.Zerolog())

	// Janitor: purga trabajos de reporte vencidos cada 10 minutos.
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal().Err(err).Msg("crear scheduler")
	}
	retention := time.Duration(cfg.Reports.RetentionMinutes) * time.Minute
	_, err = scheduler.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(func() { jobManager.PurgeExpired(retention) }),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("programar janitor de reportes")
	}
	scheduler.Start()
	defer func() { _ = scheduler.Shutdown() }()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Hotelería API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		DashboardUC:   dashboardUC,
		ReservationUC: reservationUC,
		RoomUC:        roomUC,
		UserUC:        userUC,
		ReportJobs:    jobManager,
		JWTSecret:     cfg.JWT.Secret,
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
