package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/coiffly/salon-api/internal/config"
	"github.com/coiffly/salon-api/internal/email"
	"github.com/coiffly/salon-api/internal/model"
	"github.com/coiffly/salon-api/internal/repository/postgres"
	notificationService "github.com/coiffly/salon-api/internal/service/notification"
	"github.com/coiffly/salon-api/pkg/logger"
	"github.com/coiffly/salon-api/pkg/messaging"
	redisBroker "github.com/coiffly/salon-api/pkg/messaging/redis"
	"github.com/coiffly/salon-api/pkg/metrics"
	"github.com/coiffly/salon-api/pkg/worker"
)

// The notification worker does two jobs: it drains the outbox table
// into Redis, and it consumes the appointment topics to send customer
// emails. Both run until SIGTERM.
func main() {
	cfg, err := config.LoadWorkerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load worker config")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redisBroker.NewRedisBroker(redisBroker.Config{
		URL: fmt.Sprintf("redis://%s/%d", cfg.RedisAddr, cfg.RedisDB),
	}, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	outboxRepo := postgres.NewOutboxRepository(db)
	emailSvc := email.NewSMTPService(config.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
	notifier := notificationService.NewService(emailSvc, appLogger)

	processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		BatchSize:     cfg.BatchSize,
		PollInterval:  cfg.PollInterval,
		RetryAttempts: cfg.MaxRetries,
		RetryDelay:    cfg.PollInterval,
	}, appLogger, metrics.NewMetrics("salon", "worker"))

	startHealthServer(appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("shutting down")
		cancel()
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		processor.Start(ctx)
	}()

	topics := []string{
		model.EventAppointmentBooked,
		model.EventAppointmentConfirmed,
		model.EventAppointmentCancelled,
		model.EventAppointmentTransition,
	}
	for _, topic := range topics {
		wg.Add(1)
		go func(topic string) {
			defer wg.Done()
			consume(ctx, broker, topic, notifier, appLogger)
		}(topic)
	}

	wg.Wait()
}

func consume(ctx context.Context, broker messaging.Broker, topic string, notifier *notificationService.Service, l *logger.Logger) {
	messages, err := broker.Subscribe(ctx, topic)
	if err != nil {
		l.Error(err, "failed to subscribe", "topic", topic)
		return
	}
	l.Info("subscribed", "topic", topic)

	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-messages:
			if !ok {
				return
			}
			if err := notifier.HandleEvent(ctx, topic, payload); err != nil {
				l.Error(err, "failed to handle event", "topic", topic)
			}
		}
	}
}

func startHealthServer(l *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(":8081", mux); err != nil {
			l.Error(err, "health server failed")
			os.Exit(1)
		}
	}()
}
