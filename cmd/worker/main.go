package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/bootstrap"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/email"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	logger, err := bootstrap.NewLogger(cfg.Log)
	if err != nil {
		logrus.Fatalf("init logger: %v", err)
	}
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Fatal("kafka.brokers is required for the worker")
	}
	groupID := cfg.Kafka.GroupID
	if groupID == "" {
		groupID = "flight-notifier"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tickets := make([]domain.Ticket, 0, len(cfg.Booking.Tickets))
	for _, t := range cfg.Booking.Tickets {
		tickets = append(tickets, t.DomainTicket())
	}
	notifier := email.NewNotifier(
		email.NewSender(logger.WithField("component", "email")),
		logger,
		[]domain.User{cfg.Booking.DomainUser()},
		tickets,
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, groupID, cfg.Kafka.FlightsTopic, logger.WithField("component", "kafka"))
	defer consumer.Close()

	g, runCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithField("topic", cfg.Kafka.FlightsTopic).Info("consuming flight events")
		if err := consumer.Consume(runCtx, kafka.FlightEventHandler(logger, notifier.Handle)); err != nil {
			return fmt.Errorf("consume flight events: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Errorf("worker stopped: %v", err)
		return
	}
	logger.Info("worker stopped")
}
