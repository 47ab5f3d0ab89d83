// Copyright The golazy Authors
// SPDX-License-Identifier: Apache-2.0

package lazy

import "golang.org/x/xerrors"

// Combinators build new Values from existing ones without forcing
// anything at construction time. Forcing the result forces exactly
// the sources it needs, each at most once, and the first failure
// encountered short-circuits the chain without invoking downstream
// transforms.

// Pair holds the two results of Zip.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Map returns an unevaluated Value that, when forced, forces src and
// applies f to its result. When src fails, its failure is adopted
// unchanged and f is not called.
func Map[A, B any](src *Value[A], f func(A) B) *Value[B] {
	return MapErr(src, func(a A) (B, error) {
		return f(a), nil
	})
}

// MapErr is Map for transforms that can fail. An error from f is
// cached by the mapped Value like any other producer failure.
func MapErr[A, B any](src *Value[A], f func(A) (B, error)) *Value[B] {
	return New(func() (B, error) {
		a, err := src.Force()
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a)
	})
}

// FlatMap returns an unevaluated Value that forces src, applies f to
// obtain an inner Value, forces that, and adopts its outcome. f runs
// at most once, and the inner Value it returns is forced at most
// once, both guaranteed by the outer Value's own exactly-once rule.
func FlatMap[A, B any](src *Value[A], f func(A) *Value[B]) *Value[B] {
	return New(func() (B, error) {
		a, err := src.Force()
		if err != nil {
			var zero B
			return zero, err
		}
		inner := f(a)
		if inner == nil {
			var zero B
			return zero, xerrors.New("lazy: flatMap returned nil Value")
		}
		return inner.Force()
	})
}

// Zip returns an unevaluated Value pairing the results of a and b.
// a is forced before b, so when both fail the pair always fails with
// a's error.
func Zip[A, B any](a *Value[A], b *Value[B]) *Value[Pair[A, B]] {
	return New(func() (Pair[A, B], error) {
		av, err := a.Force()
		if err != nil {
			return Pair[A, B]{}, err
		}
		bv, err := b.Force()
		if err != nil {
			return Pair[A, B]{}, err
		}
		return Pair[A, B]{First: av, Second: bv}, nil
	})
}
