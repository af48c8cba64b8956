package booking

import (
	"context"
	"errors"
	"sync"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type FlightFinder interface {
	Find(ctx context.Context, from, to string) ([]domain.Flight, error)
}

type FlightSaver interface {
	Save(ctx context.Context, flight domain.Flight) error
}

// FlightService is the flight data-access collaborator used by the effects.
type FlightService interface {
	FlightFinder
	FlightSaver
}

// ActionSource is a store the effects can listen to and dispatch into.
type ActionSource interface {
	store.Dispatcher
	OnAction(fn func(store.Action)) (unsubscribe func())
}

// Effects groups the booking side-effect handlers attached to a store.
type Effects struct {
	Load *LoadFlightsEffect
	Save *SaveFlightEffect

	cancel      context.CancelFunc
	unsubscribe []func()
	wg          *sync.WaitGroup
	closeOnce   sync.Once
}

// RegisterEffects attaches the load and save effects to src. Work started by
// the effects is bound to ctx and to Close.
func RegisterEffects(ctx context.Context, src ActionSource, service FlightService, logger logrus.FieldLogger) *Effects {
	ctx, cancel := context.WithCancel(ctx)
	wg := &sync.WaitGroup{}

	e := &Effects{
		Load: &LoadFlightsEffect{
			finder:     service,
			dispatcher: src,
			ctx:        ctx,
			wg:         wg,
			logger:     logger.WithField("effect", "load_flights"),
		},
		Save: &SaveFlightEffect{
			saver:  service,
			ctx:    ctx,
			wg:     wg,
			logger: logger.WithField("effect", "save_flight"),
		},
		cancel: cancel,
		wg:     wg,
	}
	e.unsubscribe = []func(){
		src.OnAction(e.Load.Handle),
		src.OnAction(e.Save.Handle),
	}
	return e
}

// Err reports the errors that terminated any of the effects.
func (e *Effects) Err() error {
	return errors.Join(e.Load.Err(), e.Save.Err())
}

// Close detaches the effects, cancels in-flight calls and waits for them.
func (e *Effects) Close() {
	e.closeOnce.Do(func() {
		for _, unsubscribe := range e.unsubscribe {
			unsubscribe()
		}
		e.Load.stop()
		e.Save.stop()
		e.cancel()
		e.wg.Wait()
	})
}

// LoadFlightsEffect turns FlightsLoad into a flight search and dispatches
// FlightsLoaded with the result. A newer FlightsLoad cancels the search in
// flight; only the latest request's result is dispatched.
//
// A search error is not recovered: the effect logs it and ignores every
// later FlightsLoad. Err returns the error.
type LoadFlightsEffect struct {
	finder     FlightFinder
	dispatcher store.Dispatcher
	ctx        context.Context
	wg         *sync.WaitGroup
	logger     logrus.FieldLogger

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	err    error
	closed bool
}

func (e *LoadFlightsEffect) Handle(action store.Action) {
	load, ok := action.(FlightsLoad)
	if !ok {
		return
	}

	e.mu.Lock()
	if e.closed || e.err != nil {
		e.mu.Unlock()
		return
	}
	if e.cancel != nil {
		e.cancel()
	}
	e.seq++
	seq := e.seq
	ctx, cancel := context.WithCancel(e.ctx)
	e.cancel = cancel
	e.wg.Add(1)
	e.mu.Unlock()

	logger := e.logger.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"from":       load.From,
		"to":         load.To,
	})
	logger.Debug("searching flights")

	go e.run(ctx, cancel, seq, load, logger)
}

func (e *LoadFlightsEffect) run(ctx context.Context, cancel context.CancelFunc, seq uint64, load FlightsLoad, logger logrus.FieldLogger) {
	defer e.wg.Done()
	defer cancel()

	flights, err := e.finder.Find(ctx, load.From, load.To)

	e.mu.Lock()
	if seq != e.seq || ctx.Err() != nil || e.err != nil {
		e.mu.Unlock()
		logger.Debug("flight search superseded, result discarded")
		return
	}
	if err != nil {
		e.err = err
		e.mu.Unlock()
		logger.WithError(err).Error("flight search failed, load flights effect stopped")
		return
	}
	e.mu.Unlock()

	logger.WithField("count", len(flights)).Info("flights loaded")
	e.dispatcher.Dispatch(FlightsLoaded{Flights: flights})
}

func (e *LoadFlightsEffect) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

func (e *LoadFlightsEffect) stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
}

// SaveFlightEffect hands every FlightSave to the flight service. Nothing is
// dispatched afterwards and overlapping saves are not ordered.
//
// Like the load effect, the first save error stops the effect.
type SaveFlightEffect struct {
	saver  FlightSaver
	ctx    context.Context
	wg     *sync.WaitGroup
	logger logrus.FieldLogger

	mu     sync.Mutex
	err    error
	closed bool
}

func (e *SaveFlightEffect) Handle(action store.Action) {
	save, ok := action.(FlightSave)
	if !ok {
		return
	}

	e.mu.Lock()
	if e.closed || e.err != nil {
		e.mu.Unlock()
		return
	}
	e.wg.Add(1)
	e.mu.Unlock()

	logger := e.logger.WithField("flight_id", save.Flight.ID)
	go func() {
		defer e.wg.Done()

		if err := e.saver.Save(e.ctx, save.Flight); err != nil {
			if e.ctx.Err() != nil {
				return
			}
			e.mu.Lock()
			if e.err == nil {
				e.err = err
			}
			e.mu.Unlock()
			logger.WithError(err).Error("flight save failed, save flight effect stopped")
			return
		}
		logger.Info("flight saved")
	}()
}

func (e *SaveFlightEffect) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

func (e *SaveFlightEffect) stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
}
