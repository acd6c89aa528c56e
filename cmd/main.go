package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/auth"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/handler"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/mailer"
	natsAdapter "github.com/Abdurahmanit/GroupProject/tutoring-service/internal/messaging/nats"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/middleware"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/platform/tracer"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/repository"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/repository/cache"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/repository/memory"
	mongoRepo "github.com/Abdurahmanit/GroupProject/tutoring-service/internal/repository/mongodb"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/router"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/usecase"
	"go.uber.org/zap"
)

type store struct {
	users    repository.UserRepository
	teachers repository.TeacherRepository
	health   repository.Pinger
	close    func(ctx context.Context) error
}

func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*store, error) {
	if cfg.StoreDriver == "memory" {
		log.Warn("Using in-memory store, data will not survive a restart")
		return &store{
			users:    memory.NewUserRepository(),
			teachers: memory.NewTeacherRepository(),
			health:   memory.HealthChecker{},
			close:    func(context.Context) error { return nil },
		}, nil
	}

	client, err := mongoRepo.NewConnection(cfg.MongoURI, cfg.MongoConnectTimeout)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDatabase)

	users, err := mongoRepo.NewUserRepository(ctx, db, log)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("init user repository: %w", err)
	}
	teachers, err := mongoRepo.NewTeacherRepository(ctx, db, log)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("init teacher repository: %w", err)
	}
	log.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	return &store{
		users:    users,
		teachers: teachers,
		health:   mongoRepo.NewHealthChecker(client),
		close:    client.Disconnect,
	}, nil
}

func newMailer(cfg *config.Config, log *logger.Logger) usecase.Mailer {
	smtpCfg := cfg.SMTP()
	if !smtpCfg.IsComplete() {
		log.Warn("SMTP is not configured, confirmation links will only be logged")
		return mailer.NewLogMailer(log)
	}
	m, err := mailer.NewSMTPMailer(smtpCfg, log)
	if err != nil {
		log.Warn("Failed to initialize SMTP mailer, falling back to log mailer", zap.Error(err))
		return mailer.NewLogMailer(log)
	}
	return m
}

func main() {
	appLogger := logger.NewLogger(nil)
	defer func() { _ = appLogger.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	appLogger = appLogger.With(zap.String("service_name", cfg.ServiceName))
	appLogger.Info("Configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("store_driver", cfg.StoreDriver),
		zap.Bool("redis_enabled", cfg.RedisAddr != ""),
		zap.Bool("nats_enabled", cfg.NATSURL != ""),
		zap.Bool("metrics_enabled", cfg.MetricsEnabled),
	)
	if cfg.UsesInsecureSecret() {
		appLogger.Warn("JWT_SECRET is the built-in default, set a real secret before deploying")
	}

	tp := tracer.InitTracer(cfg.ServiceName, cfg.OTLPEndpoint, appLogger)

	ctx := context.Background()
	st, err := openStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}

	var teacherCache usecase.TeacherCache
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, appLogger)
		if err != nil {
			appLogger.Warn("Redis unavailable, teacher profiles will not be cached", zap.Error(err))
		} else {
			defer redisClient.Close()
			teacherCache = cache.NewTeacherCache(redisClient, cfg.TeacherCacheTTL, appLogger)
		}
	}

	var publisher interface {
		usecase.EventPublisher
		Close()
	} = natsAdapter.NoopPublisher{}
	if cfg.NATSURL != "" {
		p, err := natsAdapter.NewPublisher(cfg.NATSURL, appLogger, cfg.ServiceName)
		if err != nil {
			appLogger.Warn("NATS unavailable, account events will not be published", zap.Error(err))
		} else {
			publisher = p
		}
	}

	var metricsManager *metrics.MetricsManager
	var workflowMetrics usecase.Metrics
	if cfg.MetricsEnabled {
		metricsManager = metrics.NewMetricsManager(cfg.ServiceName)
		workflowMetrics = metricsManager
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	userUsecase := usecase.NewUserUsecase(st.users, jwtManager, newMailer(cfg, appLogger), publisher, workflowMetrics,
		usecase.UserOptions{BaseURL: cfg.BaseURL, EmailTimeout: cfg.EmailSendTimeout}, appLogger)
	teacherUsecase := usecase.NewTeacherUsecase(st.teachers, jwtManager, teacherCache, publisher, workflowMetrics, appLogger)
	resolver := usecase.NewAccountResolver(st.users, st.teachers)

	r := router.NewRouter(router.Handlers{
		Users:    handler.NewUserHandler(userUsecase, teacherUsecase, appLogger),
		Teachers: handler.NewTeacherHandler(teacherUsecase, appLogger),
		Health:   handler.NewHealthHandler(st.health, appLogger),
	}, middleware.JWTAuth(jwtManager, resolver, appLogger), metricsManager, appLogger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	appLogger.Info("Waiting for pending confirmation emails...")
	userUsecase.WaitForEmails()
	publisher.Close()
	if err := st.close(shutdownCtx); err != nil {
		appLogger.Error("Failed to close store", zap.Error(err))
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Failed to shut down tracer provider", zap.Error(err))
	}
	appLogger.Info("Application stopped")
}
