package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vetadmin/config"
	deliveryHttp "vetadmin/internal/delivery/http"
	"vetadmin/internal/delivery/http/handler"
	"vetadmin/internal/delivery/http/middleware"
	"vetadmin/internal/domain/gateway"
	"vetadmin/internal/gateway/memory"
	"vetadmin/internal/gateway/rest"
	"vetadmin/internal/infrastructure/cache"
	"vetadmin/internal/infrastructure/database"
	"vetadmin/internal/repository"
	"vetadmin/internal/service"
	"vetadmin/internal/usecase"
	"vetadmin/pkg/jwt"
	"vetadmin/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// newGateways selects the clinic API backing. Live mode talks to the remote
// REST API; demo mode serves a seeded in-memory store so the panel can be
// exercised without the clinic backend.
func newGateways(cfg *config.Config, log *logrus.Logger) (gateway.AccountGateway, gateway.StaffGateway, gateway.CatalogGateway) {
	if cfg.App.Mode == config.ModeDemo {
		store := memory.NewStore()
		return memory.NewAccountGateway(store), memory.NewStaffGateway(store), memory.NewCatalogGateway(store)
	}

	client := rest.NewClient(cfg.ClinicAPI, log)
	return rest.NewAccountGateway(client), rest.NewStaffGateway(client), rest.NewCatalogGateway(client)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()
	log.Infof("Clinic API mode: %s", cfg.App.Mode)

	// Initialize clinic API gateways
	accountGateway, staffGateway, catalogGateway := newGateways(cfg, log)

	// Initialize repositories and services
	auditRepo := repository.NewAuditLogRepository()
	auditService := service.NewAuditService(db, log, auditRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, accountGateway, jwtService, redisClient, auditService)
	staffUsecase := usecase.NewStaffUsecase(log, customValidator, accountGateway, staffGateway, catalogGateway, auditService)
	catalogUsecase := usecase.NewCatalogUsecase(log, catalogGateway, redisClient)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	staffHandler := handler.NewStaffHandler(staffUsecase)
	catalogHandler := handler.NewCatalogHandler(catalogUsecase)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, staffHandler, catalogHandler, auditLogHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
