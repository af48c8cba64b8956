package store

import (
	"context"
	"sync"
	"sync/atomic"
)

// Stream is a read-only view of a value derived from a Store.
// Subscribers get the current value first and then every change.
type Stream[T any] struct {
	subscribe func(fn func(T)) func()
}

// Subscribe registers fn and returns a function that stops delivery.
// fn runs on the store's dispatch loop and must not block.
func (st Stream[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	return st.subscribe(fn)
}

// Filter drops values for which keep returns false.
func (st Stream[T]) Filter(keep func(T) bool) Stream[T] {
	return Stream[T]{subscribe: func(fn func(T)) func() {
		return st.subscribe(func(v T) {
			if keep(v) {
				fn(v)
			}
		})
	}}
}

// First blocks until the stream delivers a value or ctx is done.
// It must not be called from a listener running on the store's dispatch
// loop: the first value is queued behind that listener and First would wait
// until ctx is done.
func (st Stream[T]) First(ctx context.Context) (T, error) {
	ch := make(chan T, 1)
	var once sync.Once
	unsubscribe := st.Subscribe(func(v T) {
		once.Do(func() { ch <- v })
	})
	defer unsubscribe()

	select {
	case v := <-ch:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Map projects every value of st through fn.
func Map[T, U any](st Stream[T], fn func(T) U) Stream[U] {
	return Stream[U]{subscribe: func(out func(U)) func() {
		return st.subscribe(func(v T) {
			out(fn(v))
		})
	}}
}

// Select derives a stream from the store through selector. Consecutive
// results that are Identical are emitted once.
func Select[S, T any](s *Store[S], selector func(S) T) Stream[T] {
	return Stream[T]{subscribe: func(fn func(T)) func() {
		var (
			last   T
			seen   bool
			active atomic.Bool
		)
		active.Store(true)
		unsubscribe := s.subscribe(func(state S) {
			if !active.Load() {
				return
			}
			v := selector(state)
			if seen && Identical(last, v) {
				return
			}
			last, seen = v, true
			fn(v)
		})
		return func() {
			active.Store(false)
			unsubscribe()
		}
	}}
}
