package store

import (
	"reflect"
	"sync"
)

// CreateSelector1 returns a selector that calls project only when the result
// of a changes. Change is judged with Identical.
func CreateSelector1[S, A, R any](a func(S) A, project func(A) R) func(S) R {
	var (
		mu    sync.Mutex
		ok    bool
		lastA A
		lastR R
	)
	return func(s S) R {
		va := a(s)
		mu.Lock()
		defer mu.Unlock()
		if ok && Identical(lastA, va) {
			return lastR
		}
		lastA, lastR, ok = va, project(va), true
		return lastR
	}
}

func CreateSelector2[S, A, B, R any](a func(S) A, b func(S) B, project func(A, B) R) func(S) R {
	var (
		mu    sync.Mutex
		ok    bool
		lastA A
		lastB B
		lastR R
	)
	return func(s S) R {
		va, vb := a(s), b(s)
		mu.Lock()
		defer mu.Unlock()
		if ok && Identical(lastA, va) && Identical(lastB, vb) {
			return lastR
		}
		lastA, lastB, lastR, ok = va, vb, project(va, vb), true
		return lastR
	}
}

func CreateSelector3[S, A, B, C, R any](a func(S) A, b func(S) B, c func(S) C, project func(A, B, C) R) func(S) R {
	var (
		mu    sync.Mutex
		ok    bool
		lastA A
		lastB B
		lastC C
		lastR R
	)
	return func(s S) R {
		va, vb, vc := a(s), b(s), c(s)
		mu.Lock()
		defer mu.Unlock()
		if ok && Identical(lastA, va) && Identical(lastB, vb) && Identical(lastC, vc) {
			return lastR
		}
		lastA, lastB, lastC, lastR, ok = va, vb, vc, project(va, vb, vc), true
		return lastR
	}
}

// Identical reports reference equality: slices share backing array and
// length, maps, pointers, channels and funcs share their reference, and any
// other comparable value is compared with ==. Values that are not comparable
// (structs holding slices, for instance) are never identical.
func Identical[T any](a, b T) bool {
	return identical(reflect.ValueOf(&a).Elem(), reflect.ValueOf(&b).Elem())
}

func identical(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Slice:
		if a.Len() != b.Len() {
			return false
		}
		if a.Len() == 0 {
			return a.IsNil() == b.IsNil()
		}
		return a.UnsafePointer() == b.UnsafePointer()
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return a.UnsafePointer() == b.UnsafePointer()
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		ea, eb := a.Elem(), b.Elem()
		if ea.Type() != eb.Type() {
			return false
		}
		return identical(ea, eb)
	}
	if a.Comparable() && b.Comparable() {
		return a.Equal(b)
	}
	return false
}
