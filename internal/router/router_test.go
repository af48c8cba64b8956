package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type bookingAction struct{}

func (bookingAction) Type() string { return "[Booking] Anything" }

func TestReduce_Navigated(t *testing.T) {
	params := map[string]string{"id": "163"}
	next := Reduce(InitialState(), Navigated{URL: "/flights/163", Params: params})

	assert.Equal(t, "/flights/163", next.URL)
	assert.Equal(t, map[string]string{"id": "163"}, next.Params)

	params["id"] = "1"
	assert.Equal(t, "163", next.Params["id"])
}

func TestReduce_NilParams(t *testing.T) {
	next := Reduce(InitialState(), Navigated{URL: "/home"})
	assert.NotNil(t, next.Params)
	assert.Empty(t, next.Params)
}

func TestReduce_IgnoresOtherActions(t *testing.T) {
	prior := Reduce(InitialState(), Navigated{URL: "/x", Params: map[string]string{"id": "1"}})
	next := Reduce(prior, bookingAction{})
	assert.Equal(t, prior, next)
}

func TestSelectRouteParams(t *testing.T) {
	sel := SelectRouteParams(func(s State) State { return s })
	s := Reduce(InitialState(), Navigated{Params: map[string]string{"id": "7"}})
	assert.Equal(t, "7", sel(s)["id"])
}
