package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/linkroom/linkroom-api/internal/api"
	"github.com/linkroom/linkroom-api/internal/core/domain"
	"github.com/linkroom/linkroom-api/internal/core/service"
	"github.com/linkroom/linkroom-api/internal/infrastructure/config"
	mongodb "github.com/linkroom/linkroom-api/internal/infrastructure/db/mongo"
	redisdb "github.com/linkroom/linkroom-api/internal/infrastructure/db/redis"
	"github.com/linkroom/linkroom-api/internal/infrastructure/mail"
	"github.com/linkroom/linkroom-api/internal/infrastructure/payment/paystack"
	"github.com/linkroom/linkroom-api/internal/infrastructure/queue"
	"github.com/linkroom/linkroom-api/internal/infrastructure/scheduler"
	"github.com/linkroom/linkroom-api/pkg/logger"
)

const tokenTTL = 24 * time.Hour

func main() {
	// Bootstrap logging for the config phase only. The zerolog logger the
	// rest of the process uses needs the configured level, which is not
	// known until the config has loaded.
	bootstrap := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := config.Load(bootstrap)

	log := logger.New("linkroom-api", logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	log.Info().
		Str("mongo_db", cfg.Mongo.Database).
		Str("redis_addr", cfg.Redis.Addr).
		Msg("storage connected")

	// --- Repositories ---
	accountRepo := mongodb.NewAccountRepository(db)
	organisationRepo := mongodb.NewOrganisationRepository(db)
	jobRepo := mongodb.NewJobRepository(db)
	applicationRepo := mongodb.NewApplicationRepository(db)
	settlementRepo := mongodb.NewSettlementRepository(db)
	planRepo := mongodb.NewPlanRepository(db)
	alertRepo := mongodb.NewAlertRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"accounts":     accountRepo.EnsureIndexes,
		"jobs":         jobRepo.EnsureIndexes,
		"applications": applicationRepo.EnsureIndexes,
		"settlements":  settlementRepo.EnsureIndexes,
		"job_alerts":   alertRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	if err := planRepo.Seed(ctx, domain.DefaultPlans()); err != nil {
		log.Fatal().Err(err).Msg("plan catalog seed failed")
	}

	// --- Outbound adapters ---
	paystackClient := paystack.NewClient(cfg.Paystack.SecretKey, cfg.Paystack.BaseURL)
	mailSender := mail.NewSender(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, log)

	dispatcher := queue.NewDispatcher(cfg.Alerts.Workers, mailSender, log)
	dispatcher.Start(ctx)

	// --- Services ---
	listingCache := redisdb.NewApplicationListingCache(rdb)
	authService := service.NewAuthService(accountRepo, organisationRepo, cfg.JWTSecret, tokenTTL)
	jobService := service.NewJobService(accountRepo, jobRepo, log)
	applicationService := service.NewApplicationService(accountRepo, jobRepo, applicationRepo, listingCache, log)
	paymentService := service.NewPaymentService(accountRepo, organisationRepo, planRepo, settlementRepo, paystackClient, log)
	alertService := service.NewAlertService(alertRepo, jobRepo, dispatcher, log)

	// --- Background runners ---
	retention := time.Duration(cfg.Sweep.RetentionDays) * 24 * time.Hour
	sweepRunner := scheduler.NewSweepRunner(jobService, cfg.Sweep.Interval, retention, log)
	sweepRunner.Start()
	defer sweepRunner.Stop()

	alertRunner := scheduler.NewAlertRunner(alertService, cfg.Alerts.Interval, log)
	alertRunner.Start()
	defer alertRunner.Stop()

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		JWTSecret:    cfg.JWTSecret,
		IngestAPIKey: cfg.IngestAPIKey,
		JobRetention: retention,
		Logger:       log,
		Mongo:        db,
		Redis:        rdb,
		Auth:         authService,
		Jobs:         jobService,
		Applications: applicationService,
		Payments:     paymentService,
		Alerts:       alertService,
		ListingCache: listingCache,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
