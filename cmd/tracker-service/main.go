package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang-rival-tracker/internal/tracker/config"
	"golang-rival-tracker/internal/tracker/delivery/consumer"
	"golang-rival-tracker/internal/tracker/repository"
	"golang-rival-tracker/internal/tracker/service"
	"golang-rival-tracker/internal/tracker/strategy"
	"golang-rival-tracker/pkg/common"
	"golang-rival-tracker/pkg/logger"
	"golang-rival-tracker/pkg/postgres"
	"golang-rival-tracker/pkg/redis"
	"golang-rival-tracker/pkg/telegram"

	"google.golang.org/genai"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the tracker service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Tracker Service", zap.String("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", zap.Error(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// MKSTREAM creates the stream if it doesn't exist
	if err := redisClient.XGroupCreateMkStream(context.Background(), common.RedisStreamTrackerTasks, common.RedisStreamGroup, "0").Err(); err != nil {
		if err.Error() != "BUSYGROUP Consumer Group name already exists" {
			appLogger.Fatal("Failed to create consumer group", logger.ErrorField(err))
		}
	}

	// Initialize repositories
	companyRepo := repository.NewCompanyRepository(db.DB)
	changeEventRepo := repository.NewChangeEventRepository(db.DB)
	metricRepo := repository.NewMetricRepository(db.DB)
	metricHistoryRepo := repository.NewMetricHistoryRepository(db.DB)
	auditLogRepo := repository.NewAuditLogRepository(db.DB)
	scheduleRepo := repository.NewTrackScheduleRepository(db.DB)
	websiteRepo := repository.NewWebsiteRepository(cfg, appLogger)
	reviewsRepo := repository.NewGoogleReviewsRepository(cfg, appLogger)

	// Initialize AI provider
	var aiRepo repository.AIRepository
	switch cfg.AI.Provider {
	case "gemini":
		genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", zap.Error(err))
		}
		repo, err := repository.NewGeminiAIRepository(cfg, appLogger, genAiClient)
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI repository", zap.Error(err))
		}
		aiRepo = repo
	default:
		appLogger.Fatal("Invalid AI provider specified in config", zap.String("provider", cfg.AI.Provider))
	}

	// Initialize Telegram notifier
	var telegramNotifier telegram.Notifier
	if cfg.Telegram.BotToken != "" {
		telegramNotifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", zap.Error(err))
		}
	} else {
		appLogger.Info("No Telegram bot token configured, alerts disabled")
		telegramNotifier = telegram.NoopNotifier{}
	}

	// Initialize the ingestion pipeline
	detector := service.NewChangeDetector()
	deriver := service.NewMetricDeriver(reviewsRepo, appLogger)
	recorder := service.NewMetricHistoryRecorder(metricHistoryRepo, appLogger)
	ingestionSvc := service.NewIngestionService(
		db.DB,
		appLogger,
		companyRepo,
		changeEventRepo,
		metricRepo,
		auditLogRepo,
		websiteRepo,
		aiRepo,
		detector,
		deriver,
		recorder,
	)

	// Initialize strategies
	strategies := []strategy.TrackingStrategy{
		strategy.NewCompanyRefreshStrategy(ingestionSvc, telegramNotifier, appLogger),
		strategy.NewMetricBackfillStrategy(companyRepo, aiRepo, recorder, appLogger),
	}

	// Initialize worker and scheduler services
	workerSvc := service.NewWorkerService(redisClient.Client, appLogger, cfg, strategies)
	schedulerSvc := service.NewSchedulerService(scheduleRepo, redisClient.Client, appLogger, cfg)

	go schedulerSvc.Start(ctx)

	// Initialize and start the Redis consumer
	redisConsumer := consumer.NewRedisConsumer(cfg, redisClient.Client, workerSvc, appLogger)
	redisConsumer.Start(ctx)

	appLogger.Info("Tracker service started. Waiting for tasks...")

	// Wait for interrupt signal to gracefully shut down the service
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down tracker service...")
	cancel()
	redisConsumer.Stop()
	appLogger.Info("Tracker service stopped.")
}

func main() {
	rootCmd := &cobra.Command{Use: "tracker-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-tracker.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing tracker-service CLI: %s\n", err)
		os.Exit(1)
	}
}
