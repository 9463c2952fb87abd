package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"webinarbooking/config"
	_ "webinarbooking/docs"
	authadapter "webinarbooking/internal/adapters/auth"
	"webinarbooking/internal/adapters/email"
	"webinarbooking/internal/clock"
	httpdelivery "webinarbooking/internal/delivery/http"
	"webinarbooking/internal/delivery/http/controllers"
	"webinarbooking/internal/delivery/http/middleware"
	"webinarbooking/internal/repository/postgres"
	"webinarbooking/internal/services"
)

// @title Webinar Booking API
// @version 1.0
// @description REST API for booking seats on webinars. Registering for an event books a seat and notifies the organizer by email.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	if err := postgres.CreateSchema(ctx, db); err != nil {
		return err
	}

	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	userRepo := postgres.NewUserRepository(db)

	notifier, err := email.NewNotifier(email.NotifierConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	})
	if err != nil {
		return fmt.Errorf("create notifier: %w", err)
	}

	hasher := authadapter.NewBcryptHasher(0)
	issuer := authadapter.NewJWTIssuer(cfg.JWTSecret)
	verifier := authadapter.NewJWTVerifier(cfg.JWTSecret)
	clk := clock.NewSystem()

	var bookingOpts []services.BookingServiceOption
	if cfg.SeatAvailabilityCheck {
		bookingOpts = append(bookingOpts, services.WithSeatAvailabilityCheck())
	}
	bookingService := services.NewBookingService(eventRepo, registrationRepo, userRepo, notifier, clk, bookingOpts...)
	eventService := services.NewEventService(eventRepo, registrationRepo, clk, 5*time.Second)
	authService := services.NewAuthService(userRepo, hasher, issuer, cfg.TokenExpiry, clk)

	authController := controllers.NewAuthController(logger, authService)
	eventController := controllers.NewEventController(logger, eventService)
	bookingController := controllers.NewBookingController(logger, bookingService, userRepo)

	mux := httpdelivery.NewRouter(logger, verifier, authController, eventController, bookingController)
	handler := middleware.RequestID(middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux)))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, runCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-runCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}
