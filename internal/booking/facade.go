package booking

import (
	"slices"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/store"
)

// Facade is what UI consumers see of the booking feature.
type Facade struct {
	dispatcher   store.Dispatcher
	flights      store.Stream[[]domain.Flight]
	activeFlight store.Stream[domain.Flight]

	snapshotFlights      func() []domain.Flight
	snapshotActiveFlight func() *domain.Flight
	snapshotUserFlights  func() []domain.Flight
}

func NewFacade[R any](st *store.Store[R], sel Selectors[R]) *Facade {
	return &Facade{
		dispatcher: st,
		flights:    store.Map(store.Select(st, sel.Flights), func(fs []domain.Flight) []domain.Flight { return slices.Clone(fs) }),
		activeFlight: store.Map(
			store.Select(st, sel.ActiveFlight).Filter(func(f *domain.Flight) bool { return f != nil }),
			func(f *domain.Flight) domain.Flight { return *f },
		),
		snapshotFlights:      func() []domain.Flight { return sel.Flights(st.State()) },
		snapshotActiveFlight: func() *domain.Flight { return sel.ActiveFlight(st.State()) },
		snapshotUserFlights:  func() []domain.Flight { return sel.ActiveUserFlights(st.State()) },
	}
}

// Flights streams the loaded flights.
func (f *Facade) Flights() store.Stream[[]domain.Flight] {
	return f.flights
}

// ActiveFlight streams the flight named by the current route. It stays
// silent while no loaded flight matches.
func (f *Facade) ActiveFlight() store.Stream[domain.Flight] {
	return f.activeFlight
}

func (f *Facade) Search(from, to string) {
	f.dispatcher.Dispatch(FlightsLoad{From: from, To: to})
}

func (f *Facade) Save(flight domain.Flight) {
	f.dispatcher.Dispatch(FlightSave{Flight: flight})
}

func (f *Facade) CurrentFlights() []domain.Flight {
	return slices.Clone(f.snapshotFlights())
}

func (f *Facade) CurrentActiveFlight() (domain.Flight, bool) {
	active := f.snapshotActiveFlight()
	if active == nil {
		return domain.Flight{}, false
	}
	return *active, true
}

// ActiveUserFlights returns the loaded flights the current user holds
// tickets for.
func (f *Facade) ActiveUserFlights() []domain.Flight {
	return slices.Clone(f.snapshotUserFlights())
}
