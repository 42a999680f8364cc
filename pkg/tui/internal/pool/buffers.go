// ABOUTME: sync.Pool of byte buffers for frame output
// ABOUTME: Oversized buffers are dropped instead of pooled so one huge frame does not pin memory

package pool

import (
	"bytes"
	"sync"
)

// maxPooled is the largest buffer capacity returned to the pool.
const maxPooled = 1 << 20

var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 16<<10))
	},
}

// GetBuffer returns an empty buffer from the pool.
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns buf to the pool.
func PutBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooled {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
