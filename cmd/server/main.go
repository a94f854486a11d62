package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prepmate/interview/internal/aggregator"
	"prepmate/interview/internal/assistant"
	"prepmate/interview/internal/config"
	"prepmate/interview/internal/evaluator"
	"prepmate/interview/internal/handlers"
	"prepmate/interview/internal/jobs"
	"prepmate/interview/internal/llm"
	_ "prepmate/interview/internal/llm/gemini"
	"prepmate/interview/internal/metrics"
	"prepmate/interview/internal/performance"
	"prepmate/interview/internal/prompts"
	"prepmate/interview/internal/questionbank"
	"prepmate/interview/internal/routers"
	"prepmate/interview/internal/session"
	"prepmate/interview/internal/storage"
	"prepmate/interview/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func registerRoutes(router *chi.Mux, sessionHandler *handlers.SessionHandler, questionHandler *handlers.QuestionHandler, assistantHandler *handlers.AssistantHandler, healthHandler *handlers.HealthHandler) {
	routers.HealthRoutes(router, healthHandler)
	routers.SessionRoutes(router, sessionHandler, questionHandler, assistantHandler)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// initStore builds the persistence backend selected by STORE_BACKEND.
func initStore(cfg *config.Config, logger *zap.Logger) (storage.Store, error) {
	switch cfg.StoreBackend {
	case "memory":
		return storage.NewMemoryStore(), nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr))
		return storage.NewRedisStore(rdb, "interview"), nil
	case "gorm":
		db, err := initDatabase()
		if err != nil {
			return nil, err
		}
		return storage.NewGormStore(db)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.StoreBackend)
	}
}

// initDatabase opens PostgreSQL when POSTGRES_HOST is set, otherwise a local
// SQLite file, so the service runs without a database server in development.
func initDatabase() (*gorm.DB, error) {
	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		path := getEnv("SQLITE_PATH", "interview.db")
		db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return db, nil
	}

	user := getEnv("POSTGRES_USER", "postgres")
	password := getEnv("POSTGRES_PASSWORD", "postgres")
	dbname := getEnv("POSTGRES_DB", "postgres")
	port := getEnv("POSTGRES_PORT", "5432")
	sslmode := getEnv("POSTGRES_SSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func main() {
	// load .env if present; real deployments set env vars directly
	_ = godotenv.Load()

	logger := utils.GetLogger()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.String("store", cfg.StoreBackend))

	catalog, err := questionbank.LoadCatalog()
	if err != nil {
		logger.Fatal("Failed to load question catalog", zap.Error(err))
	}
	bank := questionbank.NewBank(catalog, cfg.CatalogSeed)
	logger.Info("Question catalog loaded", zap.Int("questions", len(catalog)))

	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	// the oracle is advisory; a missing provider degrades to deterministic
	// fallbacks rather than failing startup
	var provider llm.Provider
	if cfg.Provider != "" {
		provider, err = llm.NewProvider(cfg.Provider)
		if err != nil {
			logger.Warn("Oracle provider unavailable, running with fallback feedback", zap.Error(err))
			provider = nil
		}
	}

	store, err := initStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize store", zap.Error(err))
	}

	eval := evaluator.New(provider, promptManager, cfg.OracleTimeout, logger)
	agg := aggregator.New(aggregator.Policy{
		ConsistencyBonus:       cfg.ConsistencyBonus,
		LowVarianceThreshold:   cfg.LowVarianceThreshold,
		SlowThresholdSeconds:   cfg.SlowThresholdSeconds,
		SlowPenalty:            cfg.SlowPenalty,
		RushedThresholdSeconds: cfg.RushedThresholdSeconds,
		RushedPenalty:          cfg.RushedPenalty,
	})
	tracker := performance.NewTracker(store, logger)

	manager := session.NewManager(bank, eval, agg, tracker, store, logger, session.Options{
		HistoryLimit:           cfg.HistoryLimit,
		EvaluationHistoryLimit: cfg.EvaluationHistoryLimit,
		RetentionDays:          cfg.RetentionDays,
	})

	coach := assistant.New(provider, promptManager, cfg.OracleTimeout, logger)

	sessionHandler := handlers.NewSessionHandler(manager, logger)
	questionHandler := handlers.NewQuestionHandler(bank)
	assistantHandler := handlers.NewAssistantHandler(coach, logger)
	healthHandler := handlers.NewHealthHandler(provider, bank)

	retentionJob := jobs.NewRetentionJob(manager, cfg.RetentionSchedule, logger)
	if err := retentionJob.Start(); err != nil {
		logger.Error("Failed to start retention job", zap.Error(err))
	} else {
		logger.Info("Retention job started", zap.String("schedule", cfg.RetentionSchedule))
	}

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, middleware.Timeout(60*time.Second))
	router.Use(metrics.Middleware)

	registerRoutes(router, sessionHandler, questionHandler, assistantHandler, healthHandler)

	serverAddr := ":" + cfg.Port

	// http server with timeouts
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("Interview service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Interview service shutting down...")

	retentionJob.Stop()

	// graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("Interview service exited")
}
