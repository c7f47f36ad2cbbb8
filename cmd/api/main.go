package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/jhoicas/prateleira-api/internal/application/alert"
	appanalytics "github.com/jhoicas/prateleira-api/internal/application/analytics"
	"github.com/jhoicas/prateleira-api/internal/application/inventory"
	"github.com/jhoicas/prateleira-api/internal/application/usecase"
	"github.com/jhoicas/prateleira-api/internal/domain"
	"github.com/jhoicas/prateleira-api/internal/domain/repository"
	"github.com/jhoicas/prateleira-api/internal/infrastructure/memory"
	"github.com/jhoicas/prateleira-api/internal/infrastructure/messaging"
	"github.com/jhoicas/prateleira-api/internal/infrastructure/metrics"
	"github.com/jhoicas/prateleira-api/internal/infrastructure/observability"
	"github.com/jhoicas/prateleira-api/internal/infrastructure/postgres"
	"github.com/jhoicas/prateleira-api/internal/infrastructure/redislock"
	httpRouter "github.com/jhoicas/prateleira-api/internal/interfaces/http"
	"github.com/jhoicas/prateleira-api/pkg/config"
	"github.com/jhoicas/prateleira-api/pkg/logger"
)

// repositories agrupa los adaptadores de persistencia elegidos al arrancar.
type repositories struct {
	products   repository.ProductRepository
	movements  repository.MovementRepository
	alerts     repository.AlertRepository
	shelves    repository.ShelfRepository
	categories repository.CategoryRepository
	analytics  repository.AnalyticsRepository
	txRunner   inventory.TxRunner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Tracing, cfg.App.Env)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Error().Err(err).Msg("cerrar tracing")
		}
	}()

	var repos repositories
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("aplicar migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		repos = repositories{
			products:   postgres.NewProductRepository(pool),
			movements:  postgres.NewMovementRepository(pool),
			alerts:     postgres.NewAlertRepository(pool),
			shelves:    postgres.NewShelfRepository(pool),
			categories: postgres.NewCategoryRepository(pool),
			analytics:  postgres.NewAnalyticsRepository(pool),
			txRunner:   postgres.NewTxRunner(pool),
		}
	} else {
		log.Warn().Msg("sin base de datos configurada: usando almacén en memoria")
		store := memory.NewStore()
		repos = repositories{
			products:   memory.NewProductRepository(store),
			movements:  memory.NewMovementRepository(store),
			alerts:     memory.NewAlertRepository(store),
			shelves:    memory.NewShelfRepository(store),
			categories: memory.NewCategoryRepository(store),
			analytics:  memory.NewAnalyticsRepository(store),
			txRunner:   memory.NewTxRunner(store),
		}
	}

	promMetrics := metrics.New("prateleira")

	alertOpts := []alert.Option{
		alert.WithMetrics(promMetrics),
		alert.WithLogger(log.Component("alerts")),
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redislock.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		alertOpts = append(alertOpts, alert.WithScanLocker(redislock.NewScanLocker(rdb, cfg.Redis.LockTTL)))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("lock distribuido de escaneos activo")
	}

	if len(cfg.Kafka.Brokers) > 0 {
		publisher := messaging.NewAlertPublisher(messaging.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.AlertsTopic))
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar publicador kafka")
			}
		}()
		alertOpts = append(alertOpts, alert.WithPublisher(publisher))
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.AlertsTopic).Msg("publicación de alertas activa")
	}

	shelfCapacity := inventory.NewShelfCapacityUseCase(repos.shelves, repos.products)
	ledger := inventory.NewLedgerUseCase(repos.txRunner, repos.products, repos.movements,
		inventory.WithMovementMetrics(promMetrics))
	alertEngine := alert.NewEngineUseCase(repos.products, repos.alerts, alertOpts...)
	productUC := usecase.NewProductUseCase(repos.products, repos.categories, shelfCapacity)
	shelfUC := usecase.NewShelfUseCase(repos.shelves)
	categoryUC := usecase.NewCategoryUseCase(repos.categories)
	dashboardUC := appanalytics.NewDashboardUseCase(repos.analytics)
	replenishmentUC := inventory.NewReplenishmentUseCase(repos.analytics)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(promMetrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Prateleira API",
	}))

	app.Get("/metrics", promMetrics.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:         productUC,
		ShelfUC:           shelfUC,
		CategoryUC:        categoryUC,
		Ledger:            ledger,
		ShelfCapacity:     shelfCapacity,
		Replenishment:     replenishmentUC,
		AlertEngine:       alertEngine,
		DashboardUC:       dashboardUC,
		JWTSecret:         cfg.JWT.Secret,
		JWTIssuer:         cfg.JWT.Issuer,
		WarningDays:       cfg.Alerts.WarningDays,
		LowStockThreshold: cfg.Alerts.LowStockThreshold,
	})

	scanCtx, stopScans := context.WithCancel(ctx)
	defer stopScans()
	if cfg.Alerts.ScanInterval > 0 {
		go runScheduledScans(scanCtx, alertEngine, cfg.Alerts, log.Component("scheduler"))
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopScans()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// runScheduledScans ejecuta ambos escaneos en cada tick hasta que ctx se cancela.
// Un lock tomado por otra instancia no es un error.
func runScheduledScans(ctx context.Context, engine *alert.EngineUseCase, cfg config.AlertsConfig, log zerolog.Logger) {
	ticker := time.NewTicker(cfg.ScanInterval)
	defer ticker.Stop()
	log.Info().Dur("interval", cfg.ScanInterval).Msg("escaneo periódico de alertas activo")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := engine.ScanExpirations(ctx, cfg.WarningDays); err != nil && !errors.Is(err, domain.ErrConflict) {
				log.Error().Err(err).Msg("escaneo de vencimientos")
			}
			if _, err := engine.ScanLowStock(ctx, cfg.LowStockThreshold); err != nil && !errors.Is(err, domain.ErrConflict) {
				log.Error().Err(err).Msg("escaneo de stock bajo")
			}
		}
	}
}
