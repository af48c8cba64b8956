package store

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Action is a named, immutable description of an intent.
type Action interface {
	Type() string
}

// Reducer maps the prior state and an action to the next state.
// Implementations must not mutate the prior state.
type Reducer[S any] func(state S, action Action) S

// Dispatcher is the write side of a Store.
type Dispatcher interface {
	Dispatch(action Action)
}

type Option[S any] func(*Store[S])

func WithLogger[S any](logger logrus.FieldLogger) Option[S] {
	return func(s *Store[S]) {
		s.logger = logger
	}
}

// Store owns a single state value and mutates it only through its reducer.
//
// Work is serialized on a queue: whichever goroutine finds the queue idle
// drains it, so reducers, state listeners and action listeners never run
// concurrently. Dispatching from inside a listener only enqueues.
type Store[S any] struct {
	mu       sync.Mutex
	state    S
	reducer  Reducer[S]
	queue    []func()
	draining bool

	nextID          int
	stateListeners  map[int]func(S)
	actionListeners map[int]func(Action)
	order           []int

	logger logrus.FieldLogger
}

func New[S any](initial S, reducer Reducer[S], opts ...Option[S]) *Store[S] {
	s := &Store[S]{
		state:           initial,
		reducer:         reducer,
		stateListeners:  make(map[int]func(S)),
		actionListeners: make(map[int]func(Action)),
		logger:          logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current snapshot.
func (s *Store[S]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces the action into the state, then notifies state listeners
// followed by action listeners. When another goroutine is already draining
// the queue, Dispatch returns as soon as the action is queued.
func (s *Store[S]) Dispatch(action Action) {
	s.enqueue(func() {
		s.mu.Lock()
		next := s.reducer(s.state, action)
		s.state = next
		states, actions := s.snapshotListeners()
		s.mu.Unlock()

		s.logger.WithField("action", action.Type()).Debug("action reduced")

		for _, fn := range states {
			fn(next)
		}
		for _, fn := range actions {
			fn(action)
		}
	})
}

// OnAction registers fn to observe every dispatched action after it has been
// reduced. Effects hook in here.
func (s *Store[S]) OnAction(fn func(Action)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.register()
	s.actionListeners[id] = fn
	return s.remover(id)
}

// subscribe registers fn for state changes and queues the delivery of the
// current state to fn alone.
func (s *Store[S]) subscribe(fn func(S)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.register()
	s.stateListeners[id] = fn
	s.mu.Unlock()

	s.enqueue(func() {
		fn(s.State())
	})
	return s.remover(id)
}

func (s *Store[S]) register() int {
	s.nextID++
	s.order = append(s.order, s.nextID)
	return s.nextID
}

func (s *Store[S]) remover(id int) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.stateListeners, id)
			delete(s.actionListeners, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

// snapshotListeners must be called with mu held.
func (s *Store[S]) snapshotListeners() ([]func(S), []func(Action)) {
	states := make([]func(S), 0, len(s.stateListeners))
	actions := make([]func(Action), 0, len(s.actionListeners))
	for _, id := range s.order {
		if fn, ok := s.stateListeners[id]; ok {
			states = append(states, fn)
		}
		if fn, ok := s.actionListeners[id]; ok {
			actions = append(actions, fn)
		}
	}
	return states, actions
}

func (s *Store[S]) enqueue(task func()) {
	s.mu.Lock()
	s.queue = append(s.queue, task)
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.mu.Unlock()
		next()
		s.mu.Lock()
	}
	s.queue = nil
	s.draining = false
	s.mu.Unlock()
}

var _ Dispatcher = (*Store[struct{}])(nil)
