// Copyright The golazy Authors
// SPDX-License-Identifier: Apache-2.0

package lazy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func TestMapIsLazy(t *testing.T) {
	producerCalls := 0
	mapCalls := 0

	a := New(func() (int, error) {
		producerCalls++
		return 2, nil
	})
	b := Map(a, func(x int) int {
		mapCalls++
		return x * 10
	})

	require.Zero(t, producerCalls, "Map must not force its source")
	require.Zero(t, mapCalls)

	got, err := b.Force()
	require.NoError(t, err)
	require.Equal(t, 20, got)

	// Forcing the source afterwards reuses the memoized result.
	src, err := a.Force()
	require.NoError(t, err)
	require.Equal(t, 2, src)
	require.Equal(t, 1, producerCalls, "one producer run across both forces")
	require.Equal(t, 1, mapCalls)
}

func TestMapSkipsTransformOnSourceFailure(t *testing.T) {
	boom := xerrors.New("boom")
	src := New(func() (int, error) {
		return 0, boom
	})

	called := false
	mapped := Map(src, func(x int) int {
		called = true
		return x
	})

	_, err := mapped.Force()
	require.ErrorIs(t, err, boom, "the source failure is adopted unwrapped")
	require.False(t, called)
}

func TestMapErrCachesTransformFailure(t *testing.T) {
	calls := 0
	mapped := MapErr(FromValue(1), func(int) (int, error) {
		calls++
		return 0, xerrors.New("transform failed")
	})

	_, err1 := mapped.Force()
	require.Error(t, err1)
	_, err2 := mapped.Force()
	require.Same(t, err1, err2)
	require.Equal(t, 1, calls)
}

func TestFlatMapChains(t *testing.T) {
	innerCalls := 0
	fnCalls := 0

	outer := FlatMap(FromValue(3), func(x int) *Value[int] {
		fnCalls++
		return New(func() (int, error) {
			innerCalls++
			return x * x, nil
		})
	})

	require.Zero(t, fnCalls)

	for i := 0; i < 3; i++ {
		got, err := outer.Force()
		require.NoError(t, err)
		require.Equal(t, 9, got)
	}
	require.Equal(t, 1, fnCalls, "f runs at most once")
	require.Equal(t, 1, innerCalls, "the inner Value is forced at most once")
}

func TestFlatMapAdoptsInnerFailure(t *testing.T) {
	boom := xerrors.New("inner boom")
	outer := FlatMap(FromValue(1), func(int) *Value[int] {
		return New(func() (int, error) {
			return 0, boom
		})
	})

	_, err := outer.Force()
	require.ErrorIs(t, err, boom)
}

func TestFlatMapNilValue(t *testing.T) {
	outer := FlatMap(FromValue(1), func(int) *Value[int] {
		return nil
	})

	_, err := outer.Force()
	require.Error(t, err)
	require.Contains(t, err.Error(), "nil Value")
}

func TestFlatMapCycleDetected(t *testing.T) {
	var a *Value[int]
	a = New(func() (int, error) {
		return FlatMap(a, func(int) *Value[int] {
			return FromValue(1)
		}).Force()
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := a.Force()
		require.ErrorIs(t, err, ErrCycle)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cyclic flatMap hung instead of failing")
	}
}

func TestZip(t *testing.T) {
	pair, err := Zip(FromValue(1), From(func() string { return "two" })).Force()
	require.NoError(t, err)
	require.Equal(t, Pair[int, string]{First: 1, Second: "two"}, pair)
}

func TestZipFailurePreference(t *testing.T) {
	fail := func(msg string) *Value[int] {
		return New(func() (int, error) {
			return 0, xerrors.New(msg)
		})
	}

	_, err := Zip(FromValue(1), fail("boom")).Force()
	require.EqualError(t, err, "boom")

	_, err = Zip(fail("x"), FromValue(2)).Force()
	require.EqualError(t, err, "x")

	// Both failing: the first operand wins deterministically.
	_, err = Zip(fail("x"), fail("boom")).Force()
	require.EqualError(t, err, "x")
}

func TestZipForcesEachSourceOnce(t *testing.T) {
	aCalls, bCalls := 0, 0
	a := New(func() (int, error) {
		aCalls++
		return 1, nil
	})
	b := New(func() (int, error) {
		bCalls++
		return 2, nil
	})

	z := Zip(a, b)
	require.Zero(t, aCalls)
	require.Zero(t, bCalls)

	for i := 0; i < 2; i++ {
		pair, err := z.Force()
		require.NoError(t, err)
		require.Equal(t, Pair[int, int]{First: 1, Second: 2}, pair)
	}
	require.Equal(t, 1, aCalls)
	require.Equal(t, 1, bCalls)
}
