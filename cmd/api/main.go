package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"big5-survey/internal/config"
	"big5-survey/internal/db"
	"big5-survey/internal/email"
	apihttp "big5-survey/internal/http"
	"big5-survey/internal/instrument"
	"big5-survey/internal/repository"
	"big5-survey/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	def, err := instrument.Load(cfg.InstrumentPath)
	if err != nil {
		logger.Fatal("instrument load", zap.Error(err))
	}
	logger.Info("instrument loaded",
		zap.String("title", def.Title),
		zap.Int("items", len(def.Items)),
	)

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("db schema", zap.Error(err))
	}

	submissionRepo := repository.NewPgSubmissionRepository(pool)

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	var (
		limiter     service.SubmitRateLimiter
		tokenStore  service.RefreshTokenStore
		redisClient *redis.Client
	)
	rateWindow := time.Duration(cfg.SubmitRateWindowMinutes) * time.Minute
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			limiter = service.NewRedisSubmitRateLimiter(redisClient, rateWindow, cfg.SubmitRateMax)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}
	if limiter == nil {
		limiter = service.NewSubmitRateLimiter(rateWindow, cfg.SubmitRateMax)
	}

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	surveySvc := service.NewSurveyService(logger, def, submissionRepo, emailSender, limiter)
	exportSvc := service.NewExportService(def, submissionRepo)
	adminSvc := service.NewAdminService(logger, cfg.AdminUser, cfg.AdminPassword, cfg.AdminPasswordHash)

	surveyHandler := apihttp.NewSurveyHandler(logger, surveySvc)
	adminHandler := apihttp.NewAdminHandler(logger, adminSvc, jwtSvc, submissionRepo, exportSvc)
	router := apihttp.NewRouter(logger, surveyHandler, adminHandler, jwtSvc)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
