// Copyright The golazy Authors
// SPDX-License-Identifier: Apache-2.0

package lazy

import (
	"runtime"
	"strconv"
	"strings"
)

// goroutineID parses the current goroutine's id from the runtime
// stack header ("goroutine N [running]:"). Only the cycle-detection
// owner check uses it, so it is off every fast path.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	header := strings.TrimPrefix(string(buf[:n]), "goroutine ")
	if i := strings.IndexByte(header, ' '); i > 0 {
		if id, err := strconv.ParseInt(header[:i], 10, 64); err == nil {
			return id
		}
	}
	return -1
}
