// Copyright The golazy Authors
// SPDX-License-Identifier: Apache-2.0

// Package once provides retryable once-initialization containers.
//
// Unlike lazy.Value, which caches failures as terminal outcomes, a
// failed initializer here rolls the container back to empty so a
// later call may retry, and Reset returns an initialized container to
// empty. Useful for initialization that can fail transiently or that
// tests need to re-run.
package once

import (
	"sync"

	"go.uber.org/atomic"
)

// Cell is a concurrency-safe container whose value is set by the
// first successful GetOrInit. The zero Cell is empty and ready for
// use. A Cell must not be copied after first use.
type Cell[T any] struct {
	initialized atomic.Bool

	mu    sync.Mutex
	value T
}

// GetOrInit returns the stored value, running init to produce it when
// the cell is empty. Concurrent callers serialize on the cell, so
// exactly one runs init; the rest block until it finishes and read
// the stored value. When init fails the cell stays empty, the error
// goes to the caller that ran init, and the next GetOrInit retries.
func (c *Cell[T]) GetOrInit(init func() (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized.Load() {
		return c.value, nil
	}
	v, err := init()
	if err != nil {
		var zero T
		return zero, err
	}
	c.value = v
	c.initialized.Store(true)
	return v, nil
}

// Get returns the stored value without triggering initialization.
func (c *Cell[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized.Load() {
		var zero T
		return zero, false
	}
	return c.value, true
}

// IsInitialized reports whether the cell holds a value. Never blocks.
func (c *Cell[T]) IsInitialized() bool {
	return c.initialized.Load()
}

// Reset empties the cell so the next GetOrInit initializes it again.
func (c *Cell[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.value = zero
	c.initialized.Store(false)
}

// Call runs an action at most once successfully. The zero Call is
// ready for use. The value-free counterpart of Cell.
type Call struct {
	done atomic.Bool

	mu sync.Mutex
}

// Do runs fn unless a previous Do already succeeded. Concurrent
// callers serialize; exactly one runs fn. A failed fn leaves the Call
// armed, so a later Do retries.
func (c *Call) Do(fn func() error) error {
	if c.done.Load() {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done.Load() {
		return nil
	}
	if err := fn(); err != nil {
		return err
	}
	c.done.Store(true)
	return nil
}

// IsDone reports whether an action has completed successfully.
func (c *Call) IsDone() bool {
	return c.done.Load()
}

// Reset re-arms the Call so the next Do runs its action again.
func (c *Call) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.done.Store(false)
}
