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

	"portfolio-backend/config"
	_ "portfolio-backend/docs" // Important for Swagger
	v1 "portfolio-backend/internal/delivery/http/v1"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/gateway"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/email"
	"portfolio-backend/pkg/emailjs"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/redis"
	"portfolio-backend/pkg/validation"
)

// @title           Portfolio Backend API
// @version         1.0
// @description     Portfolio content and contact form delivery.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting portfolio backend", "port", cfg.Port, "email_provider", cfg.EmailProvider)

	// 3. Load Portfolio Content
	content, err := config.LoadContent(cfg.ContentFile)
	if err != nil {
		logger.Log.Error("Failed to load portfolio content", "file", cfg.ContentFile, "error", err)
		os.Exit(1)
	}

	// 4. Setup Redis (optional, rate limiting only)
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		}
	}
	defer redis.Close()

	// 5. Setup Email Gateway
	emailGateway := newEmailGateway(cfg)
	if !emailGateway.IsConfigured() {
		logger.Log.Warn("Email gateway not fully configured - contact form will be unavailable", "provider", cfg.EmailProvider)
	}

	// 6. Setup UseCases
	validate := validation.New()
	sessions := usecase.NewFormSessionStore(cfg.ContactSessionTTL, cfg.ContactMaxSessions)
	defer sessions.Close()

	recipient := domain.Recipient{Name: cfg.ContactRecipientName, Email: cfg.ContactEmailTo}
	contactUC := usecase.NewContactUsecase(emailGateway, recipient, validate, sessions)
	portfolioUC := usecase.NewPortfolioUsecase(*content)
	healthUC := usecase.NewHealthUsecase(emailGateway)

	// 7. Setup Router
	shutdown := make(chan struct{})
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC:   contactUC,
		PortfolioUC: portfolioUC,
		HealthUC:    healthUC,
		Config:      cfg,
		Shutdown:    shutdown,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Shutdown waits for active handlers, so event streams must end first
	srv.RegisterOnShutdown(func() { close(shutdown) })

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// Long enough for an in-flight gateway call to finish
	ctx, cancel := context.WithTimeout(context.Background(), cfg.EmailJSTimeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

// newEmailGateway builds the configured provider. EmailJS credentials are
// registered exactly once here and the client is injected from then on.
func newEmailGateway(cfg *config.Config) domain.EmailGateway {
	if cfg.EmailProvider == config.EmailProviderSMTP {
		return gateway.NewSMTPGateway(email.NewEmailService(cfg))
	}

	client := emailjs.New(emailjs.Config{
		BaseURL:    cfg.EmailJSBaseURL,
		ServiceID:  cfg.EmailJSServiceID,
		PrivateKey: cfg.EmailJSPrivateKey,
		Timeout:    cfg.EmailJSTimeout,
	})
	if cfg.EmailJSPublicKey != "" {
		if err := client.Init(cfg.EmailJSPublicKey); err != nil {
			logger.Log.Error("EmailJS init failed", "error", err)
		}
	}
	return gateway.NewEmailJSGateway(client, cfg.EmailJSTemplateID)
}
