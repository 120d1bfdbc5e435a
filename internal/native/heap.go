package native

import (
	"fmt"
	"sync"
	"unsafe"
)

// Heap hands out buffers that behave like malloc'd memory for engines
// implemented in Go. A buffer stays reachable until Free is called on it.
//
// Free panics on pointers the heap does not own, which turns a double
// free or a foreign pointer into an immediate failure instead of silent
// corruption.
type Heap struct {
	mu     sync.Mutex
	live   map[unsafe.Pointer][]byte
	allocs uint64
	frees  uint64
}

func (h *Heap) alloc(n int) ([]byte, unsafe.Pointer) {
	buf := make([]byte, n)
	p := unsafe.Pointer(&buf[0])

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.live == nil {
		h.live = make(map[unsafe.Pointer][]byte)
	}
	h.live[p] = buf
	h.allocs++
	return buf, p
}

// CString returns a NUL-terminated copy of s, like strdup.
func (h *Heap) CString(s string) unsafe.Pointer {
	buf, p := h.alloc(len(s) + 1)
	copy(buf, s)
	return p
}

// Bytes returns a heap copy of b. An empty b yields a zero ArtBytes.
func (h *Heap) Bytes(b []byte) ArtBytes {
	if len(b) == 0 {
		return ArtBytes{}
	}
	buf, p := h.alloc(len(b))
	copy(buf, b)
	return ArtBytes{Data: p, Size: uint32(len(b))}
}

// Free releases p. Freeing nil is a no-op, like free(NULL).
func (h *Heap) Free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.live[p]; !ok {
		panic(fmt.Sprintf("native: free of unowned pointer %p (double free?)", p))
	}
	delete(h.live, p)
	h.frees++
}

// Live returns the number of buffers not yet freed.
func (h *Heap) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.live)
}

// Stats returns lifetime allocation and free counts.
func (h *Heap) Stats() (allocs, frees uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.allocs, h.frees
}

// Objects maps handles to Go-side engine objects.
//
// Delete and Get panic on handles that are not live, so use after release
// and double delete fail loudly.
type Objects[T any] struct {
	mu      sync.Mutex
	live    map[unsafe.Pointer]*T
	created uint64
	deleted uint64
}

// Put registers v and returns its handle.
func (o *Objects[T]) Put(v *T) Handle {
	p := unsafe.Pointer(v)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.live == nil {
		o.live = make(map[unsafe.Pointer]*T)
	}
	o.live[p] = v
	o.created++
	return NewHandle(p)
}

// Get returns the object behind h.
func (o *Objects[T]) Get(h Handle) *T {
	o.mu.Lock()
	defer o.mu.Unlock()
	v, ok := o.live[h.Pointer()]
	if !ok {
		panic(fmt.Sprintf("native: use of dead handle %p", h.Pointer()))
	}
	return v
}

// Delete releases h.
func (o *Objects[T]) Delete(h Handle) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.live[h.Pointer()]; !ok {
		panic(fmt.Sprintf("native: delete of dead handle %p (double delete?)", h.Pointer()))
	}
	delete(o.live, h.Pointer())
	o.deleted++
}

// Live returns the number of handles not yet deleted.
func (o *Objects[T]) Live() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.live)
}

// Stats returns lifetime create and delete counts.
func (o *Objects[T]) Stats() (created, deleted uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.created, o.deleted
}

// GoString copies the NUL-terminated string at p. A nil p yields "".
func GoString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}
