package engine

import (
	"sync"
)

const chunkSize = 32 * 1024 // transform chunk size

// bufferPool provides reusable chunk buffers for stream processing.
//
//nolint:gochecknoglobals
var bufferPool = sync.Pool{
	New: func() any {
		return make([]byte, chunkSize)
	},
}
