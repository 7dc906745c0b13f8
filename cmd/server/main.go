package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"iotdash/internal/auth"
	"iotdash/internal/config"
	"iotdash/internal/handler"
	"iotdash/internal/middleware"
	"iotdash/internal/repository/postgres"
	postgresInv "iotdash/internal/repository/postgres/inventory"
	serviceInv "iotdash/internal/service/inventory"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.IsDev() {
		logLevel = slog.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, "server", cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
		"auth_enabled", cfg.AuthEnabled(),
	)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	logger.Info("database connected", "tables", tables.All())

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	locationRepo := postgresInv.NewLocationRepository(repoConfig)
	deviceRepo := postgresInv.NewDeviceRepository(repoConfig)
	dataPointRepo := postgresInv.NewDataPointRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	locationService := serviceInv.NewLocationService(
		locationRepo,
		deviceRepo,
		dataPointRepo,
		txManager,
		serviceInv.NewTextSanitizer(),
		logger,
	)
	treeService := serviceInv.NewTreeService(locationRepo, logger)
	deviceService := serviceInv.NewDeviceService(deviceRepo, dataPointRepo, logger)

	handlers := &handler.Handlers{
		Tree:     handler.NewTreeHandler(treeService, logger),
		Location: handler.NewLocationHandler(locationService, logger),
		Device:   handler.NewDeviceHandler(deviceService, logger),
	}

	var protect func(http.Handler) http.Handler
	if cfg.AuthEnabled() {
		jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer jwtVerifier.Close()
		protect = middleware.AuthMiddleware(jwtVerifier, logger)
	} else {
		logger.Warn("JWKS_URL not set, API is unauthenticated")
	}

	logger.Info("services initialized")

	// Go 1.22+ enhanced patterns
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handlers, protect)

	// Order: CORS → Recovery → Routes (auth wraps each /api route)
	var root http.Handler = mux
	root = middleware.Recovery(logger)(root)

	// CORS must see OPTIONS pre-flight requests before auth does
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
