package booking

import (
	"slices"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/store"
)

// Reduce is the booking reducer. Only FlightsLoaded changes the state;
// update, save and clear are left to effects or not handled at all.
func Reduce(state State, action store.Action) State {
	switch a := action.(type) {
	case FlightsLoaded:
		next := state
		next.Flights = slices.Clone(a.Flights)
		if next.Flights == nil {
			next.Flights = []domain.Flight{}
		}
		return next
	default:
		return state
	}
}
