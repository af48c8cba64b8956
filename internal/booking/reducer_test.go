package booking

import (
	"testing"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type otherAction struct{}

func (otherAction) Type() string { return "[Other] Something" }

func TestInitialState(t *testing.T) {
	s := InitialState()

	assert.Empty(t, s.Flights)
	assert.NotNil(t, s.Flights)
	assert.Equal(t, domain.User{PassengerID: 1, Username: "jane.doe"}, s.User)
	assert.Equal(t, map[int64]domain.Ticket{
		1: {PassengerID: 1, FlightID: 163},
		2: {PassengerID: 1, FlightID: 165},
	}, s.Tickets)
	assert.Equal(t, []int64{2, 1}, s.TicketIDs)
}

func TestReduce_FlightsLoadedReplacesFlights(t *testing.T) {
	prior := InitialState()
	payload := []domain.Flight{{ID: 1}, {ID: 2}}

	next := Reduce(prior, FlightsLoaded{Flights: payload})

	assert.Equal(t, []domain.Flight{{ID: 1}, {ID: 2}}, next.Flights)
	assert.Empty(t, prior.Flights)
	assert.Equal(t, prior.User, next.User)
	assert.Equal(t, prior.TicketIDs, next.TicketIDs)

	payload[0].ID = 99
	assert.Equal(t, int64(1), next.Flights[0].ID)
}

func TestReduce_FlightsLoadedWithNil(t *testing.T) {
	prior := Reduce(InitialState(), FlightsLoaded{Flights: []domain.Flight{{ID: 1}}})
	next := Reduce(prior, FlightsLoaded{})

	assert.NotNil(t, next.Flights)
	assert.Empty(t, next.Flights)
}

func TestReduce_OtherActionsAreNoops(t *testing.T) {
	prior := Reduce(InitialState(), FlightsLoaded{Flights: []domain.Flight{{ID: 5}}})

	actions := []store.Action{
		FlightsLoad{From: "Hamburg", To: "Graz"},
		FlightUpdate{Flight: domain.Flight{ID: 5, Delayed: true}},
		FlightSave{Flight: domain.Flight{ID: 5}},
		FlightClear{},
		otherAction{},
	}

	for _, a := range actions {
		t.Run(a.Type(), func(t *testing.T) {
			next := Reduce(prior, a)
			assert.True(t, store.Identical(prior.Flights, next.Flights))
			assert.Equal(t, prior, next)
		})
	}
}

func TestReduce_NeverMutatesInput(t *testing.T) {
	state := InitialState()
	sequence := []store.Action{
		FlightsLoaded{Flights: []domain.Flight{{ID: 163}, {ID: 165}}},
		FlightUpdate{Flight: domain.Flight{ID: 163}},
		FlightsLoad{From: "a", To: "b"},
		FlightsLoaded{Flights: []domain.Flight{{ID: 1}}},
		FlightClear{},
		FlightSave{Flight: domain.Flight{ID: 1}},
	}

	for _, a := range sequence {
		before := snapshot(state)
		next := Reduce(state, a)
		require.Equal(t, before, snapshot(state), "reducer mutated state on %s", a.Type())
		state = next
	}
}

func TestReduce_Deterministic(t *testing.T) {
	a := FlightsLoaded{Flights: []domain.Flight{{ID: 1}, {ID: 2}}}
	assert.Equal(t, Reduce(InitialState(), a), Reduce(InitialState(), a))
}

// snapshot deep-copies the parts of a state a reducer could touch.
func snapshot(s State) State {
	cp := s
	cp.Flights = append([]domain.Flight(nil), s.Flights...)
	cp.TicketIDs = append([]int64(nil), s.TicketIDs...)
	cp.Tickets = make(map[int64]domain.Ticket, len(s.Tickets))
	for k, v := range s.Tickets {
		cp.Tickets[k] = v
	}
	return cp
}
