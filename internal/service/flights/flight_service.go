package flights

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/booking"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/sirupsen/logrus"
)

type RouteCache interface {
	GetRoute(ctx context.Context, from, to string) ([]domain.Flight, error)
	SetRoute(ctx context.Context, from, to string, flights []domain.Flight) error
	InvalidateRoutes(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// FlightService is the flight data-access service the booking effects call.
// Cache and producer are optional.
type FlightService struct {
	repo     repository.FlightRepository
	cache    RouteCache
	producer Producer
	topic    string
	logger   logrus.FieldLogger
}

type Option func(*FlightService)

func WithCache(cache RouteCache) Option {
	return func(s *FlightService) {
		s.cache = cache
	}
}

func WithEvents(producer Producer, topic string) Option {
	return func(s *FlightService) {
		s.producer = producer
		s.topic = topic
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *FlightService) {
		s.logger = logger
	}
}

func NewFlightService(repo repository.FlightRepository, opts ...Option) *FlightService {
	s := &FlightService{repo: repo, logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FlightService) Find(ctx context.Context, from, to string) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetRoute(ctx, from, to); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			s.logger.WithError(err).Warn("route cache read failed")
		}
	}

	flights, err := s.repo.Find(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetRoute(ctx, from, to, flights); err != nil {
			s.logger.WithError(err).Warn("route cache write failed")
		}
	}
	return flights, nil
}

// Save stores the flight, drops cached searches and publishes a
// flight_saved event. Only the store error is returned.
func (s *FlightService) Save(ctx context.Context, flight domain.Flight) error {
	if err := s.repo.Save(ctx, flight); err != nil {
		return fmt.Errorf("save flight %d: %w", flight.ID, err)
	}

	logger := s.logger.WithField("flight_id", flight.ID)
	if s.cache != nil {
		if err := s.cache.InvalidateRoutes(ctx); err != nil {
			logger.WithError(err).Warn("route cache invalidation failed")
		}
	}
	if s.producer != nil && s.topic != "" {
		event := kafka.NewFlightEvent(kafka.EventFlightSaved, flight)
		if err := s.producer.Publish(ctx, s.topic, fmt.Sprint(flight.ID), event); err != nil {
			logger.WithError(err).Warn("failed to publish flight_saved event")
		}
	}
	return nil
}

var _ booking.FlightService = (*FlightService)(nil)
