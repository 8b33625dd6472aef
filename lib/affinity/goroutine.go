// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package affinity

import (
	"bytes"
	"runtime"
	"strconv"
)

// goroutineID returns the id parsed from the "goroutine N [" header of
// the current stack.
func goroutineID() int64 {
	buffer := make([]byte, 64)
	buffer = buffer[:runtime.Stack(buffer, false)]
	buffer = bytes.TrimPrefix(buffer, []byte("goroutine "))
	if end := bytes.IndexByte(buffer, ' '); end > 0 {
		buffer = buffer[:end]
	}
	id, err := strconv.ParseInt(string(buffer), 10, 64)
	if err != nil {
		return -1
	}
	return id
}
