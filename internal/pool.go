package internal

import (
	"bytes"
	"sync"
)

// BufferPool holds reusable buffers for building frame logs. Buffers must be reset after Get.
var BufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}
