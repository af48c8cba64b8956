package booking

import (
	"strconv"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/store"
)

// Selectors are the booking feature's projections over a root state R.
// The derived ones are memoized against their inputs.
type Selectors[R any] struct {
	Flights   func(R) []domain.Flight
	Basket    func(R) any
	User      func(R) domain.User
	Tickets   func(R) map[int64]domain.Ticket
	TicketIDs func(R) []int64

	ActiveUserFlights func(R) []domain.Flight
	// ActiveFlight points into the state's flights; nil when the route does
	// not name a loaded flight.
	ActiveFlight func(R) *domain.Flight
}

func NewSelectors[R any](selectBooking func(R) State, selectRouteParams func(R) map[string]string) Selectors[R] {
	sel := Selectors[R]{
		Flights:   func(r R) []domain.Flight { return selectBooking(r).Flights },
		Basket:    func(r R) any { return selectBooking(r).Basket },
		User:      func(r R) domain.User { return selectBooking(r).User },
		Tickets:   func(r R) map[int64]domain.Ticket { return selectBooking(r).Tickets },
		TicketIDs: func(r R) []int64 { return selectBooking(r).TicketIDs },
	}
	sel.ActiveUserFlights = store.CreateSelector3(sel.User, sel.Flights, sel.Tickets, ActiveUserFlights)
	sel.ActiveFlight = store.CreateSelector2(sel.Flights, selectRouteParams, ActiveFlight)
	return sel
}

// ActiveUserFlights keeps the flights the user holds a ticket for, in the
// order of flights.
func ActiveUserFlights(user domain.User, flights []domain.Flight, tickets map[int64]domain.Ticket) []domain.Flight {
	flightIDs := make(map[int64]struct{}, len(tickets))
	for _, t := range tickets {
		if t.PassengerID == user.PassengerID {
			flightIDs[t.FlightID] = struct{}{}
		}
	}

	out := make([]domain.Flight, 0, len(flightIDs))
	for _, f := range flights {
		if _, ok := flightIDs[f.ID]; ok {
			out = append(out, f)
		}
	}
	return out
}

// ActiveFlight finds the first flight whose ID equals the numeric "id" route
// param.
func ActiveFlight(flights []domain.Flight, params map[string]string) *domain.Flight {
	raw, ok := params["id"]
	if !ok {
		return nil
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil
	}
	for i := range flights {
		if flights[i].ID == id {
			return &flights[i]
		}
	}
	return nil
}
