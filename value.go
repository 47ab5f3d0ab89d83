// Copyright The golazy Authors
// SPDX-License-Identifier: Apache-2.0

package lazy

import (
	"runtime/debug"
	"sync"

	"go.uber.org/atomic"
)

// Evaluation states. A Value moves unevaluated -> evaluating ->
// {done | failed}; the terminal states are never left.
const (
	stateUnevaluated int32 = iota
	stateEvaluating
	stateDone
	stateFailed
)

// Value is a deferred computation evaluated at most once. The
// producer runs inside whichever Force call wins the race to
// evaluate; every other caller blocks until it finishes and then
// reads the cached outcome. Failures are cached exactly like values:
// the producer never runs a second time.
//
// A Value must not be copied after first use.
type Value[T any] struct {
	state atomic.Int32

	mu       sync.Mutex
	producer func() (T, error)
	result   T
	err      error
	done     chan struct{} // closed when evaluation reaches a terminal state
	owner    int64         // id of the goroutine running the producer
}

// New returns an unevaluated Value that will compute its result with
// producer on first Force.
func New[T any](producer func() (T, error)) *Value[T] {
	if producer == nil {
		panic("lazy: nil producer")
	}
	return &Value[T]{producer: producer}
}

// From is New for producers that cannot fail.
func From[T any](producer func() T) *Value[T] {
	if producer == nil {
		panic("lazy: nil producer")
	}
	return New(func() (T, error) {
		return producer(), nil
	})
}

// FromValue returns an already-evaluated Value holding v. No producer
// is involved; Force never blocks. This is the base case for
// combinator chains.
func FromValue[T any](v T) *Value[T] {
	val := &Value[T]{result: v}
	val.state.Store(stateDone)
	return val
}

// Force returns the computed value, evaluating the producer if no
// caller has yet. Exactly one caller ever runs the producer; the rest
// block until it finishes. Once the Value is terminal, Force returns
// the cached value or replays the cached error without blocking.
//
// Forcing a Value from inside its own producer (directly, or through
// a combinator chain that leads back to it) returns ErrCycle instead
// of deadlocking.
func (v *Value[T]) Force() (T, error) {
	// Terminal states are immutable, so the lock-free read is safe:
	// the store that published the state ordered after the result
	// write.
	switch v.state.Load() {
	case stateDone:
		return v.result, nil
	case stateFailed:
		var zero T
		return zero, v.err
	}

	v.mu.Lock()
	switch v.state.Load() {
	case stateDone:
		result := v.result
		v.mu.Unlock()
		return result, nil
	case stateFailed:
		err := v.err
		v.mu.Unlock()
		var zero T
		return zero, err
	case stateEvaluating:
		if v.owner == goroutineID() {
			// The producer forced its own Value; waiting would
			// deadlock.
			v.mu.Unlock()
			var zero T
			return zero, ErrCycle
		}
		done := v.done
		v.mu.Unlock()
		<-done
		return v.Force()
	}

	// This caller won the race. Take the producer and release the
	// lock before running it: a slow producer stalls only concurrent
	// forcers of this Value.
	producer := v.producer
	v.producer = nil
	v.done = make(chan struct{})
	v.owner = goroutineID()
	v.state.Store(stateEvaluating)
	done := v.done
	v.mu.Unlock()

	result, err := run(producer)

	v.mu.Lock()
	v.owner = 0
	if err != nil {
		v.err = err
		v.state.Store(stateFailed)
	} else {
		v.result = result
		v.state.Store(stateDone)
	}
	close(done)
	v.mu.Unlock()

	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// MustForce is Force for Values whose producers cannot fail; it
// panics on error. Pairs with From.
func (v *Value[T]) MustForce() T {
	result, err := v.Force()
	if err != nil {
		panic(err)
	}
	return result
}

// IsEvaluated reports whether evaluation has finished, successfully
// or not. It never blocks and never triggers evaluation.
func (v *Value[T]) IsEvaluated() bool {
	s := v.state.Load()
	return s == stateDone || s == stateFailed
}

// TryGet returns the cached result if the Value has evaluated
// successfully. It never blocks and never triggers evaluation.
func (v *Value[T]) TryGet() (T, bool) {
	if v.state.Load() == stateDone {
		return v.result, true
	}
	var zero T
	return zero, false
}

// run executes the producer, converting a panic into a cached
// *PanicError.
func run[T any](producer func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return producer()
}
