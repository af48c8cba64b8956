// Package router holds the routing state the booking feature reads from.
// Only the contract is modelled: a navigation action and the current params.
package router

import (
	"maps"

	"github.com/Domenick1991/flightbooking/internal/store"
)

type State struct {
	URL    string
	Params map[string]string
}

// Navigated is dispatched after the UI moves to a new route.
type Navigated struct {
	URL    string
	Params map[string]string
}

func (Navigated) Type() string { return "[Router] Navigated" }

func InitialState() State {
	return State{Params: map[string]string{}}
}

func Reduce(state State, action store.Action) State {
	nav, ok := action.(Navigated)
	if !ok {
		return state
	}
	params := maps.Clone(nav.Params)
	if params == nil {
		params = map[string]string{}
	}
	return State{URL: nav.URL, Params: params}
}

// SelectRouteParams returns a memoized selector for the current route params.
func SelectRouteParams[R any](selectRouter func(R) State) func(R) map[string]string {
	return store.CreateSelector1(
		func(r R) map[string]string { return selectRouter(r).Params },
		func(params map[string]string) map[string]string { return params },
	)
}
