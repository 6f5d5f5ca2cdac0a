package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AnirbanSinha27/Issue-tracking-platform/config"
	"github.com/AnirbanSinha27/Issue-tracking-platform/db"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/apierror"
	authhandler "github.com/AnirbanSinha27/Issue-tracking-platform/internal/auth/handler"
	authrepo "github.com/AnirbanSinha27/Issue-tracking-platform/internal/auth/repository/postgres"
	authservice "github.com/AnirbanSinha27/Issue-tracking-platform/internal/auth/service"
	issuehandler "github.com/AnirbanSinha27/Issue-tracking-platform/internal/issue/handler"
	issuerepo "github.com/AnirbanSinha27/Issue-tracking-platform/internal/issue/repository/postgres"
	issueservice "github.com/AnirbanSinha27/Issue-tracking-platform/internal/issue/service"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/mailer"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/ratelimit"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	var m mailer.Mailer = mailer.Noop{Logger: logger}
	if cfg.SMTPHost != "" {
		m, err = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
		if err != nil {
			logger.Error("mailer setup failed", "error", err)
			os.Exit(1)
		}
	}

	userRepo := authrepo.NewPostgresRepository(pool)
	issueRepo := issuerepo.NewPostgresRepository(pool)

	tokenService := authservice.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	userService := authservice.NewUserService(userRepo, tokenService, m, logger)
	issueService := issueservice.NewIssueService(issueRepo, m, logger)

	authHandler := authhandler.NewAuthHandler(userService, tokenService, cfg.CookieSecure)
	issueHandler := issuehandler.NewIssueHandler(issueService)

	app := fiber.New(fiber.Config{
		ErrorHandler: apierror.FiberErrorHandler(logger),
	})

	limiter := ratelimit.New(cfg.RateLimitMax, time.Duration(cfg.RateLimitWindowMin)*time.Minute)
	authhandler.RegisterRoutes(app, authHandler, tokenService, limiter)
	issuehandler.RegisterRoutes(app, issueHandler, tokenService, limiter)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("starting server", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
