package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightbooking/api"
	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/app"
	"github.com/Domenick1991/flightbooking/internal/bootstrap"
	"github.com/Domenick1991/flightbooking/internal/cache"
	"github.com/Domenick1991/flightbooking/internal/flightapi"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
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
	if logger.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var repo repository.FlightRepository
	switch cfg.Flights.Backend {
	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			logger.Fatalf("connect postgres: %v", err)
		}
		defer pool.Close()

		if err := repository.CreateFlightsTable(ctx, pool); err != nil {
			logger.Fatalf("create flights table: %v", err)
		}
		repo = repository.NewFlightRepository(pool)
	default:
		repo = flightapi.NewClient(cfg.Flights.BaseURL, cfg.Flights.Timeout())
	}

	opts := []flights.Option{flights.WithLogger(logger.WithField("component", "flights"))}
	if cfg.Redis.Addr != "" {
		opts = append(opts, flights.WithCache(cache.NewRedisCache(cfg.Redis, cfg.Flights.CacheTTL())))
	}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, logger.WithField("component", "kafka"))
		defer producer.Close()

		if err := producer.CheckConnection(ctx); err != nil {
			logger.WithError(err).Warn("kafka unreachable, flight events may be lost")
		}
		opts = append(opts, flights.WithEvents(producer, cfg.Kafka.FlightsTopic))
	}
	flightService := flights.NewFlightService(repo, opts...)

	feature := app.New(ctx, app.Options{
		Booking: app.BookingState(cfg.Booking),
		Flights: flightService,
		Logger:  logger,
	})
	defer feature.Close()

	router := api.NewRouter(feature.Facade, feature, logger.WithField("component", "http"))
	if err := bootstrap.NewServer(cfg.HTTP, router, logger).Run(ctx); err != nil {
		logger.Errorf("server error: %v", err)
	}
	if err := feature.Effects.Err(); err != nil {
		logger.WithError(err).Warn("booking effects stopped with an error")
	}
}
