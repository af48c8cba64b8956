package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/sirupsen/logrus"
)

// Sender delivers flight notices. Delivery is a structured log line.
type Sender struct {
	logger logrus.FieldLogger
}

func NewSender(logger logrus.FieldLogger) *Sender {
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, to domain.User, event kafka.FlightEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{
		"to":        to.Username,
		"event":     event.Type,
		"event_id":  event.ID,
		"flight_id": event.FlightID,
		"delayed":   event.Delayed,
		"departure": event.Date,
	}).Info(subject(event))
	return nil
}

func subject(event kafka.FlightEvent) string {
	if event.Delayed {
		return fmt.Sprintf("flight %d %s -> %s is delayed", event.FlightID, event.From, event.To)
	}
	return fmt.Sprintf("flight %d %s -> %s was updated", event.FlightID, event.From, event.To)
}

type sender interface {
	Send(ctx context.Context, to domain.User, event kafka.FlightEvent) error
}

// Notifier sends a notice to every ticket holder of the flight an event is about.
type Notifier struct {
	sender  sender
	holders map[int64][]domain.User
	logger  logrus.FieldLogger
}

// NewNotifier indexes tickets by flight. Passengers without a known user get
// a placeholder username.
func NewNotifier(s sender, logger logrus.FieldLogger, users []domain.User, tickets []domain.Ticket) *Notifier {
	byPassenger := make(map[int64]domain.User, len(users))
	for _, u := range users {
		byPassenger[u.PassengerID] = u
	}

	holders := make(map[int64][]domain.User)
	for _, t := range tickets {
		u, ok := byPassenger[t.PassengerID]
		if !ok {
			u = domain.User{PassengerID: t.PassengerID, Username: fmt.Sprintf("passenger-%d", t.PassengerID)}
		}
		holders[t.FlightID] = append(holders[t.FlightID], u)
	}
	return &Notifier{sender: s, holders: holders, logger: logger}
}

func (n *Notifier) Handle(ctx context.Context, event kafka.FlightEvent) error {
	if event.Type != kafka.EventFlightSaved {
		return nil
	}
	holders := n.holders[event.FlightID]
	if len(holders) == 0 {
		n.logger.WithField("flight_id", event.FlightID).Debug("no ticket holders to notify")
		return nil
	}
	for _, u := range holders {
		if err := n.sender.Send(ctx, u, event); err != nil {
			return fmt.Errorf("notify passenger %d: %w", u.PassengerID, err)
		}
	}
	return nil
}
