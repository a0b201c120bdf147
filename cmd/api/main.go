package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/coiffly/salon-api/internal/config"
	appointmentHandler "github.com/coiffly/salon-api/internal/handler/appointment"
	authHandler "github.com/coiffly/salon-api/internal/handler/auth"
	availabilityHandler "github.com/coiffly/salon-api/internal/handler/availability"
	catalogHandler "github.com/coiffly/salon-api/internal/handler/catalog"
	customerHandler "github.com/coiffly/salon-api/internal/handler/customer"
	healthHandler "github.com/coiffly/salon-api/internal/handler/health"
	salonHandler "github.com/coiffly/salon-api/internal/handler/salon"
	staffHandler "github.com/coiffly/salon-api/internal/handler/staff"
	"github.com/coiffly/salon-api/internal/middleware"
	"github.com/coiffly/salon-api/internal/repository/postgres"
	"github.com/coiffly/salon-api/internal/router"
	appointmentService "github.com/coiffly/salon-api/internal/service/appointment"
	authService "github.com/coiffly/salon-api/internal/service/auth"
	availabilityService "github.com/coiffly/salon-api/internal/service/availability"
	catalogService "github.com/coiffly/salon-api/internal/service/catalog"
	customerService "github.com/coiffly/salon-api/internal/service/customer"
	salonService "github.com/coiffly/salon-api/internal/service/salon"
	staffService "github.com/coiffly/salon-api/internal/service/staff"
	"github.com/coiffly/salon-api/pkg/auth"
	"github.com/coiffly/salon-api/pkg/logger"
	redisBroker "github.com/coiffly/salon-api/pkg/messaging/redis"
	"github.com/coiffly/salon-api/pkg/metrics"
	"github.com/coiffly/salon-api/pkg/security"
	"github.com/coiffly/salon-api/pkg/validator"
	"github.com/coiffly/salon-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	salonRepo := postgres.NewSalonRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	staffRepo := postgres.NewStaffRepository(db)
	workingHoursRepo := postgres.NewWorkingHoursRepository(db)
	absenceRepo := postgres.NewAbsenceRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Shared infrastructure
	m := metrics.NewMetrics("salon", "api")
	v := validator.New()
	hasher := security.NewBcryptHasher(0)
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Services
	salonSvc := salonService.NewService(salonRepo, cfg.Booking)
	catalogSvc := catalogService.NewService(serviceRepo)
	staffSvc := staffService.NewService(staffRepo, workingHoursRepo, absenceRepo, hasher)
	customerSvc := customerService.NewService(customerRepo)
	availabilitySvc := availabilityService.NewService(
		salonRepo, serviceRepo, staffRepo, workingHoursRepo,
		absenceRepo, appointmentRepo, cfg.Booking, m,
	)
	appointmentSvc := appointmentService.NewService(
		appointmentRepo, customerRepo, staffRepo, salonRepo,
		serviceRepo, availabilitySvc, m,
	)
	authSvc := authService.NewService(staffRepo, jwtSvc, hasher, cfg.JWT)

	// Handlers
	authMW := middleware.NewAuthMiddleware(jwtSvc)
	r := router.NewRouter(
		authMW,
		healthHandler.NewHandler(db),
		authHandler.NewHandler(authSvc, v),
		availabilityHandler.NewHandler(availabilitySvc),
		appointmentHandler.NewHandler(appointmentSvc, v),
		salonHandler.NewHandler(salonSvc, v),
		catalogHandler.NewHandler(catalogSvc, v),
		staffHandler.NewHandler(staffSvc, v),
		customerHandler.NewHandler(customerSvc, v),
		router.Config{
			RateLimit:  rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:  cfg.RateLimit.Burst,
			Timeout:    time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORSConfig: middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The outbox processor relays committed booking events to Redis.
	// Running it inside the API keeps single-node deployments simple;
	// SKIP LOCKED makes it safe next to a dedicated worker.
	broker, err := redisBroker.NewRedisBroker(redisBroker.Config{
		URL: fmt.Sprintf("redis://%s/%d", cfg.Redis.Addr, cfg.Redis.DB),
	}, &log.Logger)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, outbox relay disabled")
	} else {
		defer broker.Close()
		processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
			BatchSize:     cfg.Outbox.BatchSize,
			PollInterval:  cfg.Outbox.PollInterval,
			RetryAttempts: cfg.Outbox.MaxRetries,
			RetryDelay:    time.Second,
		}, appLogger, m)
		go processor.Start(ctx)
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	appLogger.Info("server started", "port", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
}
