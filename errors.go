// Copyright The golazy Authors
// SPDX-License-Identifier: Apache-2.0

package lazy

import (
	"fmt"

	"golang.org/x/xerrors"
)

// ErrCycle reports that a producer forced, directly or through a
// combinator chain, the Value it is itself computing. It is returned
// to the re-entrant caller in place of a deadlock and is never
// retryable.
var ErrCycle = xerrors.New("lazy: cyclic evaluation")

// PanicError is the cached failure of a producer that panicked. The
// same instance is replayed by every subsequent Force.
type PanicError struct {
	// Value is the value recovered from the panic.
	Value any

	// Stack is the evaluating goroutine's stack at the time of the
	// panic.
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("lazy: producer panicked: %v", e.Value)
}
