package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/fishmaster-api/internal/audit"
	"github.com/BruksfildServices01/fishmaster-api/internal/auth"
	"github.com/BruksfildServices01/fishmaster-api/internal/config"
	dbpkg "github.com/BruksfildServices01/fishmaster-api/internal/db"
	"github.com/BruksfildServices01/fishmaster-api/internal/mailer"
	"github.com/BruksfildServices01/fishmaster-api/internal/middleware"
	"github.com/BruksfildServices01/fishmaster-api/internal/ratelimit"
	"github.com/BruksfildServices01/fishmaster-api/internal/routes"
	"github.com/BruksfildServices01/fishmaster-api/internal/storage"
	"github.com/BruksfildServices01/fishmaster-api/internal/validators"
)

const (
	auditQueueSize  = 256
	shutdownTimeout = 10 * time.Second
)

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if cfg.LogFormat == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

func main() {

	cfg := config.Load()
	logger := newLogger(cfg)

	if err := validators.Register(); err != nil {
		log.Fatalf("failed to register validators: %v", err)
	}

	db, err := dbpkg.NewDB(cfg.DBUrl)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// ======================================================
	// 📬 BACKGROUND WORKERS
	// ======================================================
	var sender mailer.Sender = mailer.NewLogSender(logger)
	if cfg.MailEnabled() {
		sender = mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	} else {
		logger.Warn("SMTP_HOST not set, verification emails will only be logged")
	}
	mail := mailer.NewDispatcher(sender, logger, cfg.MailQueueSize)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger, auditQueueSize)

	deps := routes.Deps{
		DB:       db,
		Config:   cfg,
		Tokens:   auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry),
		Log:      logger,
		Mail:     mail,
		Audit:    auditDispatcher,
		AuditLog: auditLogger,
	}

	// ======================================================
	// 🔌 OPTIONAL INTEGRATIONS
	// ======================================================
	if cfg.RateLimitEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		deps.Limiter = ratelimit.NewRedisLimiter(rdb, cfg.RateLimitMax, cfg.RateLimitWindow, "fishmaster:auth")
	}

	if cfg.PhotosEnabled() {
		deps.Photos = storage.NewS3Store(storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	}

	if cfg.CheckEmailDomain {
		deps.DomainCheck = validators.IsEmailDomainValid
	}

	// ======================================================
	// 🌍 HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.WithField("addr", cfg.Addr()).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server shutdown")
	}

	mail.Close()
	auditDispatcher.Close()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
