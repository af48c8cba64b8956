package flights

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Find(ctx context.Context, from, to string) ([]domain.Flight, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Save(ctx context.Context, flight domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetRoute(ctx context.Context, from, to string) ([]domain.Flight, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetRoute(ctx context.Context, from, to string, flights []domain.Flight) error {
	args := m.Called(ctx, from, to, flights)
	return args.Error(0)
}

func (m *MockCache) InvalidateRoutes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func quietLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func sampleFlights() []domain.Flight {
	return []domain.Flight{
		{
			ID:      163,
			From:    "Graz",
			To:      "Hamburg",
			Date:    time.Date(2026, 10, 20, 8, 30, 0, 0, time.UTC),
			Delayed: false,
		},
	}
}

func TestFlightService_Find_CacheMiss(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, WithCache(mockCache), WithLogger(quietLogger()))

	ctx := context.Background()
	flights := sampleFlights()

	mockCache.On("GetRoute", ctx, "Graz", "Hamburg").Return(nil, nil).Once()
	mockRepo.On("Find", ctx, "Graz", "Hamburg").Return(flights, nil).Once()
	mockCache.On("SetRoute", ctx, "Graz", "Hamburg", flights).Return(nil).Once()

	result, err := service.Find(ctx, "Graz", "Hamburg")

	assert.NoError(t, err)
	assert.Equal(t, flights, result)
	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_Find_CacheHit(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, WithCache(mockCache), WithLogger(quietLogger()))

	ctx := context.Background()
	flights := sampleFlights()

	mockCache.On("GetRoute", ctx, "Graz", "Hamburg").Return(flights, nil).Once()

	result, err := service.Find(ctx, "Graz", "Hamburg")

	assert.NoError(t, err)
	assert.Equal(t, flights, result)
	mockRepo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything, mock.Anything)
	mockCache.AssertNotCalled(t, "SetRoute", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFlightService_Find_CacheErrorFallsBackToRepository(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, WithCache(mockCache), WithLogger(quietLogger()))

	ctx := context.Background()
	flights := sampleFlights()

	mockCache.On("GetRoute", ctx, "Graz", "Hamburg").Return(nil, errors.New("cache error")).Once()
	mockRepo.On("Find", ctx, "Graz", "Hamburg").Return(flights, nil).Once()
	mockCache.On("SetRoute", ctx, "Graz", "Hamburg", flights).Return(errors.New("cache full")).Once()

	result, err := service.Find(ctx, "Graz", "Hamburg")

	assert.NoError(t, err)
	assert.Equal(t, flights, result)
	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_Find_RepositoryError(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, WithCache(mockCache), WithLogger(quietLogger()))

	ctx := context.Background()
	expectedErr := errors.New("database error")

	mockCache.On("GetRoute", ctx, "Graz", "Hamburg").Return(nil, nil).Once()
	mockRepo.On("Find", ctx, "Graz", "Hamburg").Return(nil, expectedErr).Once()

	result, err := service.Find(ctx, "Graz", "Hamburg")

	assert.Nil(t, result)
	assert.Equal(t, expectedErr, err)
	mockCache.AssertNotCalled(t, "SetRoute", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFlightService_Find_NoCache(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo)

	ctx := context.Background()
	flights := sampleFlights()
	mockRepo.On("Find", ctx, "", "").Return(flights, nil).Once()

	result, err := service.Find(ctx, "", "")

	assert.NoError(t, err)
	assert.Equal(t, flights, result)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_Save(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}
	service := NewFlightService(mockRepo,
		WithCache(mockCache),
		WithEvents(mockProducer, "flights"),
		WithLogger(quietLogger()),
	)

	ctx := context.Background()
	flight := sampleFlights()[0]
	flight.Delayed = true

	mockRepo.On("Save", ctx, flight).Return(nil).Once()
	mockCache.On("InvalidateRoutes", ctx).Return(nil).Once()
	mockProducer.On("Publish", ctx, "flights", "163", mock.MatchedBy(func(e kafka.FlightEvent) bool {
		return e.Type == kafka.EventFlightSaved && e.FlightID == 163 && e.Delayed
	})).Return(nil).Once()

	err := service.Save(ctx, flight)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestFlightService_Save_PublishFailureIsNotReturned(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockProducer := &MockProducer{}
	service := NewFlightService(mockRepo, WithEvents(mockProducer, "flights"), WithLogger(quietLogger()))

	ctx := context.Background()
	flight := sampleFlights()[0]

	mockRepo.On("Save", ctx, flight).Return(nil).Once()
	mockProducer.On("Publish", ctx, "flights", "163", mock.Anything).Return(errors.New("broker down")).Once()

	assert.NoError(t, service.Save(ctx, flight))
	mockProducer.AssertExpectations(t)
}

func TestFlightService_Save_RepositoryError(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}
	service := NewFlightService(mockRepo,
		WithCache(mockCache),
		WithEvents(mockProducer, "flights"),
		WithLogger(quietLogger()),
	)

	ctx := context.Background()
	flight := sampleFlights()[0]
	dbErr := errors.New("constraint violation")
	mockRepo.On("Save", ctx, flight).Return(dbErr).Once()

	err := service.Save(ctx, flight)

	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "save flight 163")
	mockCache.AssertNotCalled(t, "InvalidateRoutes", mock.Anything)
	mockProducer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
