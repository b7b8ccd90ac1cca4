package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/pizzeria-pos/internal/application/service"
	"github.com/sangkips/pizzeria-pos/internal/config"
	"github.com/sangkips/pizzeria-pos/internal/infrastructure/database"
	"github.com/sangkips/pizzeria-pos/internal/infrastructure/repository"
	"github.com/sangkips/pizzeria-pos/internal/infrastructure/snapshot"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/handler"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/middleware"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/routes"
	"github.com/sangkips/pizzeria-pos/pkg/logging"
	"github.com/sangkips/pizzeria-pos/pkg/printer"
	"github.com/sangkips/pizzeria-pos/pkg/utils"
)

const idempotencySweepInterval = time.Hour

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg := config.Load()
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	if err := database.SeedDefaultData(db); err != nil {
		slog.Warn("failed to seed default data", "error", err)
	}

	// The open order survives restarts in a local file
	store, err := snapshot.New(cfg.Snapshot.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(db)
	menuItemRepo := repository.NewMenuItemRepository(db)
	groupRepo := repository.NewModifierGroupRepository(db)
	ingredientRepo := repository.NewPizzaIngredientRepository(db)
	basePriceRepo := repository.NewPizzaBasePriceRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	closureRepo := repository.NewClosureRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(printer.Config{
		Type:       cfg.Printer.Type,
		USBPath:    cfg.Printer.USBPath,
		Address:    cfg.Printer.Address,
		ChunkSize:  cfg.Printer.ChunkSize,
		ChunkDelay: cfg.Printer.ChunkDelay,
	})
	if err != nil {
		slog.Warn("failed to initialize printer, printing disabled", "error", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()

	// Initialize services
	loc := cfg.App.Location()
	settingsService := service.NewSettingsService(settingsRepo)
	authService := service.NewAuthService(staffRepo, jwtManager, cfg.PIN.AttemptsPerMinute, cfg.PIN.Burst)
	staffService := service.NewStaffService(staffRepo)
	categoryService := service.NewCategoryService(categoryRepo, menuItemRepo, groupRepo)
	modifierService := service.NewModifierService(groupRepo)
	pizzaService := service.NewPizzaService(ingredientRepo, basePriceRepo)
	printerService := service.NewPrinterService(thermalPrinter, cfg.Printer.Type, cfg.Printer.QueueSize, settingsService)
	messageService := service.NewMessageService(cfg.Messaging.WhatsAppBaseURL)
	sessionService := service.NewSessionService(store, categoryService, modifierService, pizzaService, authService, settingsService)
	orderService := service.NewOrderService(saleRepo, sessionService, settingsService, printerService, messageService, loc)
	reportService := service.NewReportService(saleRepo, closureRepo, loc)

	printerService.Start(ctx)
	defer printerService.Stop()

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(cfg.RateLimit.Requests) / float64(max(cfg.RateLimit.Duration, 1)),
		BurstSize:         cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	defer rateLimiter.Close()

	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Session:  handler.NewSessionHandler(sessionService, orderService),
		Sale:     handler.NewSaleHandler(orderService),
		Report:   handler.NewReportHandler(reportService),
		Menu:     handler.NewMenuHandler(categoryService),
		Modifier: handler.NewModifierHandler(modifierService),
		Pizza:    handler.NewPizzaHandler(pizzaService),
		Settings: handler.NewSettingsHandler(settingsService),
		Staff:    handler.NewStaffHandler(staffService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		AuthService:     authService,
		SettingsService: settingsService,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	go sweepIdempotencyKeys(ctx, idempotencyRepo)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "name", cfg.App.Name, "port", port, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type expiredKeyDeleter interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

func sweepIdempotencyKeys(ctx context.Context, repo expiredKeyDeleter) {
	ticker := time.NewTicker(idempotencySweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := repo.DeleteExpired(ctx, now)
			if err != nil {
				slog.Warn("failed to delete expired idempotency keys", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("expired idempotency keys deleted", "count", n)
			}
		}
	}
}
