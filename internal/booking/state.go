package booking

import "github.com/Domenick1991/flightbooking/internal/domain"

// State is the booking slice of the application state.
//
// TicketIDs is expected to hold exactly the keys of Tickets, and Flights at
// most one entry per ID. Neither is enforced.
type State struct {
	Flights   []domain.Flight
	Basket    any
	User      domain.User
	Tickets   map[int64]domain.Ticket
	TicketIDs []int64
}

// SeedTicket is a ticket known at startup.
type SeedTicket struct {
	ID     int64
	Ticket domain.Ticket
}

// InitialState is the demo snapshot: one user holding tickets for flights
// 163 and 165.
func InitialState() State {
	return NewState(
		domain.User{PassengerID: 1, Username: "jane.doe"},
		SeedTicket{ID: 2, Ticket: domain.Ticket{PassengerID: 1, FlightID: 165}},
		SeedTicket{ID: 1, Ticket: domain.Ticket{PassengerID: 1, FlightID: 163}},
	)
}

// NewState builds a fresh state for user. TicketIDs keep the order of tickets.
func NewState(user domain.User, tickets ...SeedTicket) State {
	s := State{
		Flights:   []domain.Flight{},
		Basket:    map[string]any{},
		User:      user,
		Tickets:   make(map[int64]domain.Ticket, len(tickets)),
		TicketIDs: make([]int64, 0, len(tickets)),
	}
	for _, t := range tickets {
		s.Tickets[t.ID] = t.Ticket
		s.TicketIDs = append(s.TicketIDs, t.ID)
	}
	return s
}
