package booking

import "github.com/Domenick1991/flightbooking/internal/domain"

// FlightsLoad requests the flights for a route. From and To are passed to
// the flight service as given.
type FlightsLoad struct {
	From string
	To   string
}

type FlightsLoaded struct {
	Flights []domain.Flight
}

type FlightUpdate struct {
	Flight domain.Flight
}

type FlightSave struct {
	Flight domain.Flight
}

type FlightClear struct{}

func (FlightsLoad) Type() string   { return "[Booking] Flights load" }
func (FlightsLoaded) Type() string { return "[Booking] Flights loaded" }
func (FlightUpdate) Type() string  { return "[Booking] Flight update" }
func (FlightSave) Type() string    { return "[Booking] Flight save" }
func (FlightClear) Type() string   { return "[Booking] Flight clear" }
