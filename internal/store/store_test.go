package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterState struct {
	Count int
	Tags  []string
}

type increment struct{ By int }

func (increment) Type() string { return "[Counter] Increment" }

type tag struct{ Name string }

func (tag) Type() string { return "[Counter] Tag" }

type noop struct{}

func (noop) Type() string { return "[Counter] Noop" }

func counterReducer(s counterState, a Action) counterState {
	switch a := a.(type) {
	case increment:
		s.Count += a.By
		return s
	case tag:
		s.Tags = append(append([]string(nil), s.Tags...), a.Name)
		return s
	}
	return s
}

func TestStore_DispatchReducesSynchronously(t *testing.T) {
	st := New(counterState{}, counterReducer)

	st.Dispatch(increment{By: 2})
	st.Dispatch(increment{By: 3})

	assert.Equal(t, 5, st.State().Count)
}

func TestStore_ActionListenersSeeReducedState(t *testing.T) {
	st := New(counterState{}, counterReducer)

	var seen []int
	st.OnAction(func(a Action) {
		if _, ok := a.(increment); ok {
			seen = append(seen, st.State().Count)
		}
	})

	st.Dispatch(increment{By: 1})
	st.Dispatch(increment{By: 1})

	assert.Equal(t, []int{1, 2}, seen)
}

func TestStore_ReentrantDispatchIsQueued(t *testing.T) {
	st := New(counterState{}, counterReducer)

	var order []string
	st.OnAction(func(a Action) {
		order = append(order, a.Type())
		if _, ok := a.(increment); ok {
			st.Dispatch(tag{Name: "followup"})
			order = append(order, "dispatched")
		}
	})

	st.Dispatch(increment{By: 1})

	assert.Equal(t, []string{"[Counter] Increment", "dispatched", "[Counter] Tag"}, order)
	assert.Equal(t, []string{"followup"}, st.State().Tags)
}

func TestStore_UnsubscribeStopsActionListener(t *testing.T) {
	st := New(counterState{}, counterReducer)

	calls := 0
	unsubscribe := st.OnAction(func(Action) { calls++ })
	st.Dispatch(noop{})
	unsubscribe()
	unsubscribe()
	st.Dispatch(noop{})

	assert.Equal(t, 1, calls)
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	st := New(counterState{}, counterReducer)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Dispatch(increment{By: 1})
		}()
	}
	wg.Wait()

	assert.Eventually(t, func() bool { return st.State().Count == 50 }, time.Second, 5*time.Millisecond)
}

func TestSelect_EmitsCurrentThenDistinctValues(t *testing.T) {
	st := New(counterState{}, counterReducer)
	counts := Select(st, func(s counterState) int { return s.Count })

	var got []int
	unsubscribe := counts.Subscribe(func(v int) { got = append(got, v) })

	st.Dispatch(increment{By: 1})
	st.Dispatch(noop{})
	st.Dispatch(tag{Name: "x"})
	st.Dispatch(increment{By: 2})
	unsubscribe()
	st.Dispatch(increment{By: 2})

	assert.Equal(t, []int{0, 1, 3}, got)
}

func TestSelect_SliceIdentity(t *testing.T) {
	st := New(counterState{}, counterReducer)
	tags := Select(st, func(s counterState) []string { return s.Tags })

	var got [][]string
	tags.Subscribe(func(v []string) { got = append(got, v) })

	st.Dispatch(increment{By: 1})
	st.Dispatch(tag{Name: "a"})
	st.Dispatch(increment{By: 1})
	st.Dispatch(tag{Name: "b"})

	require.Len(t, got, 3)
	assert.Nil(t, got[0])
	assert.Equal(t, []string{"a"}, got[1])
	assert.Equal(t, []string{"a", "b"}, got[2])
}

func TestStream_FilterAndMap(t *testing.T) {
	st := New(counterState{}, counterReducer)
	even := Map(
		Select(st, func(s counterState) int { return s.Count }).Filter(func(v int) bool { return v%2 == 0 }),
		func(v int) string { return time.Duration(v).String() },
	)

	var got []string
	even.Subscribe(func(v string) { got = append(got, v) })

	for i := 0; i < 4; i++ {
		st.Dispatch(increment{By: 1})
	}

	assert.Equal(t, []string{"0s", "2ns", "4ns"}, got)
}

func TestStream_First(t *testing.T) {
	st := New(counterState{Count: 7}, counterReducer)

	v, err := Select(st, func(s counterState) int { return s.Count }).First(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	never := Select(st, func(s counterState) int { return s.Count }).Filter(func(int) bool { return false })
	_, err = never.First(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStream_FirstInsideListenerWaitsForContext(t *testing.T) {
	st := New(counterState{}, counterReducer)
	counts := Select(st, func(s counterState) int { return s.Count })

	var err error
	st.OnAction(func(Action) {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err = counts.First(ctx)
	})

	st.Dispatch(increment{By: 1})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, st.State().Count)
}
