// Package app assembles the root state from the booking and router slices and
// wires the booking store, effects and facade together.
package app

import (
	"context"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/booking"
	"github.com/Domenick1991/flightbooking/internal/router"
	"github.com/Domenick1991/flightbooking/internal/store"
	"github.com/sirupsen/logrus"
)

type State struct {
	Booking booking.State
	Router  router.State
}

func InitialState(b booking.State) State {
	return State{Booking: b, Router: router.InitialState()}
}

func Reduce(state State, action store.Action) State {
	return State{
		Booking: booking.Reduce(state.Booking, action),
		Router:  router.Reduce(state.Router, action),
	}
}

// BookingState seeds the booking slice from configuration.
func BookingState(cfg config.BookingConfig) booking.State {
	seeds := make([]booking.SeedTicket, 0, len(cfg.Tickets))
	for _, t := range cfg.Tickets {
		seeds = append(seeds, booking.SeedTicket{ID: t.ID, Ticket: t.DomainTicket()})
	}
	return booking.NewState(cfg.DomainUser(), seeds...)
}

type Options struct {
	Booking booking.State
	Flights booking.FlightService
	Logger  logrus.FieldLogger
}

// Feature is a running booking feature: one store, its effects and the facade.
type Feature struct {
	Store     *store.Store[State]
	Selectors booking.Selectors[State]
	Facade    *booking.Facade
	Effects   *booking.Effects
}

func New(ctx context.Context, opts Options) *Feature {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	st := store.New(InitialState(opts.Booking), Reduce, store.WithLogger[State](logger.WithField("component", "store")))
	sel := booking.NewSelectors(
		func(s State) booking.State { return s.Booking },
		router.SelectRouteParams(func(s State) router.State { return s.Router }),
	)

	return &Feature{
		Store:     st,
		Selectors: sel,
		Facade:    booking.NewFacade(st, sel),
		Effects:   booking.RegisterEffects(ctx, st, opts.Flights, logger),
	}
}

// Navigate records a route change in the store.
func (f *Feature) Navigate(url string, params map[string]string) {
	f.Store.Dispatch(router.Navigated{URL: url, Params: params})
}

func (f *Feature) Close() {
	f.Effects.Close()
}
