package quill

import (
	"strings"
	"sync"
	"sync/atomic"
)

// ### Buffer Pool Management ###

var (
	builderPool = sync.Pool{
		New: func() interface{} {
			return &strings.Builder{}
		},
	}
	smallBuffers = sync.Pool{
		New: func() interface{} {
			return &Buffer{buf: make([]byte, 0, 256)}
		},
	}
	mediumBuffers = sync.Pool{
		New: func() interface{} {
			return &Buffer{buf: make([]byte, 0, 1024)}
		},
	}
	largeBuffers = sync.Pool{
		New: func() interface{} {
			return &Buffer{buf: make([]byte, 0, 4096)}
		},
	}
)

// Buffer is a growable byte sink used by the serializer and the parser's
// string assembly. Not safe for concurrent use.
type Buffer struct {
	buf []byte
}

func getBuffer() *Buffer {
	return getBufferSize(256)
}

// getBufferSize returns a pooled buffer with at least the given capacity.
func getBufferSize(sizeHint int) *Buffer {
	var buf *Buffer
	switch {
	case sizeHint <= 256:
		buf = smallBuffers.Get().(*Buffer)
	case sizeHint <= 1024:
		buf = mediumBuffers.Get().(*Buffer)
	default:
		buf = largeBuffers.Get().(*Buffer)
		if cap(buf.buf) < sizeHint {
			buf.buf = make([]byte, 0, sizeHint)
		}
	}
	buf.buf = buf.buf[:0]
	return buf
}

func putBuffer(buf *Buffer) {
	if buf == nil || cap(buf.buf) > 65536 {
		return
	}
	buf.buf = buf.buf[:0]
	switch {
	case cap(buf.buf) <= 256:
		smallBuffers.Put(buf)
	case cap(buf.buf) <= 1024:
		mediumBuffers.Put(buf)
	default:
		largeBuffers.Put(buf)
	}
}

func (b *Buffer) WriteByte(c byte) {
	b.buf = append(b.buf, c)
}

func (b *Buffer) Write(p []byte) {
	b.buf = append(b.buf, p...)
}

func (b *Buffer) WriteString(s string) {
	b.buf = append(b.buf, s...)
}

func (b *Buffer) Len() int {
	return len(b.buf)
}

func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
}

// Bytes returns the accumulated bytes. The slice aliases the buffer and is
// invalidated by further writes or by returning the buffer to a pool.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// Detach returns an owned copy of the accumulated bytes.
func (b *Buffer) Detach() []byte {
	out := make([]byte, len(b.buf))
	copy(out, b.buf)
	return out
}

// ### Builder Management ###

func getBuilder() *strings.Builder {
	b := builderPool.Get().(*strings.Builder)
	b.Reset()
	return b
}

func putBuilder(b *strings.Builder) {
	builderPool.Put(b)
}

// ### Allocation Contexts ###

// Arena is the allocation context a Value is associated with. Every Value
// remembers the Arena that produced it; children created through indexing or
// parsing allocate through the parent's Arena, and Clone re-associates the
// copy with the source's Arena. The Go runtime owns the memory itself, so an
// Arena only attributes allocations; it does not pool or free them.
//
// Arenas are safe for concurrent use.
type Arena struct {
	allocs atomic.Int64
}

var defaultArena Arena

// NewArena returns a fresh arena with a zero allocation count.
func NewArena() *Arena {
	return &Arena{}
}

// DefaultArena returns the process-wide arena used by the package-level
// constructors and by Parse when no arena is supplied.
func DefaultArena() *Arena {
	return &defaultArena
}

// Allocs reports how many Values have been allocated through this arena.
func (a *Arena) Allocs() int64 {
	return a.allocs.Load()
}

func (a *Arena) track() *Arena {
	a.allocs.Add(1)
	return a
}
