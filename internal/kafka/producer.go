package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const EventFlightSaved = "flight_saved"

type FlightEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	FlightID   int64     `json:"flight_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Date       time.Time `json:"date"`
	Delayed    bool      `json:"delayed"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewFlightEvent(eventType string, f domain.Flight) FlightEvent {
	return FlightEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		FlightID:   f.ID,
		From:       f.From,
		To:         f.To,
		Date:       f.Date,
		Delayed:    f.Delayed,
		OccurredAt: time.Now().UTC(),
	}
}

type Producer struct {
	brokers []string
	writer  *kafka.Writer
	logger  logrus.FieldLogger
}

func NewProducer(brokers []string, logger logrus.FieldLogger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	return &Producer{
		brokers: brokers,
		writer:  writer,
		logger:  logger,
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	logger := p.logger.WithFields(logrus.Fields{"topic": topic, "key": key})
	logger.Debug("publishing to kafka")

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	logger.Debug("published to kafka")
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// CheckConnection dials the first broker.
func (p *Producer) CheckConnection(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return fmt.Errorf("no kafka brokers configured")
	}
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions()
	if err != nil {
		return fmt.Errorf("failed to read partitions: %w", err)
	}

	p.logger.WithField("partitions", len(partitions)).Info("connected to kafka")
	return nil
}
