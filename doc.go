// Copyright The golazy Authors
// SPDX-License-Identifier: Apache-2.0

// Package lazy provides a deferred computation primitive. A Value
// wraps a producer function that runs at most once, on first Force,
// and memoizes its outcome -- value or failure -- for every later and
// concurrent reader. Combinators (Map, FlatMap, Zip) build new Values
// from existing ones without forcing them.
package lazy
