package native

import (
	"strings"
	"testing"
	"unsafe"
)

func TestHeap_CStringIsTerminated(t *testing.T) {
	var h Heap
	p := h.CString("abc")
	defer h.Free(p)

	got := GoString((*byte)(p))
	if got != "abc" {
		t.Errorf("GoString() = %q, want %q", got, "abc")
	}
	if h.Live() != 1 {
		t.Errorf("Live() = %d, want 1", h.Live())
	}
}

func TestHeap_BytesEmpty(t *testing.T) {
	var h Heap
	ab := h.Bytes(nil)
	if ab.Data != nil || ab.Size != 0 {
		t.Errorf("Bytes(nil) = %+v, want zero descriptor", ab)
	}
	if h.Live() != 0 {
		t.Errorf("Live() = %d, want 0", h.Live())
	}
}

func TestHeap_BytesCopies(t *testing.T) {
	var h Heap
	src := []byte{1, 0, 2}
	ab := h.Bytes(src)
	src[0] = 9

	view := unsafe.Slice((*byte)(ab.Data), ab.Size)
	if view[0] != 1 || view[1] != 0 || view[2] != 2 {
		t.Errorf("heap copy = %v, want [1 0 2]", view)
	}

	h.Free(ab.Data)
	allocs, frees := h.Stats()
	if allocs != 1 || frees != 1 {
		t.Errorf("Stats() = %d, %d; want 1, 1", allocs, frees)
	}
}

func TestHeap_DoubleFreePanics(t *testing.T) {
	var h Heap
	p := h.CString("x")
	h.Free(p)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on double free")
		}
		if !strings.Contains(r.(string), "double free") {
			t.Errorf("panic %q should mention double free", r)
		}
	}()
	h.Free(p)
}

func TestHeap_FreeNil(t *testing.T) {
	var h Heap
	h.Free(nil)
	if _, frees := h.Stats(); frees != 0 {
		t.Errorf("free(nil) counted as a free")
	}
}

func TestObjects_Lifecycle(t *testing.T) {
	type obj struct{ n int }
	var o Objects[obj]

	h := o.Put(&obj{n: 7})
	if h.IsZero() {
		t.Fatal("Put returned zero handle")
	}
	if got := o.Get(h).n; got != 7 {
		t.Errorf("Get().n = %d, want 7", got)
	}

	o.Delete(h)
	if o.Live() != 0 {
		t.Errorf("Live() = %d, want 0", o.Live())
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic on double delete")
		}
	}()
	o.Delete(h)
}

func TestGoString_Nil(t *testing.T) {
	if got := GoString(nil); got != "" {
		t.Errorf("GoString(nil) = %q, want empty", got)
	}
}

func TestSaveStatus_String(t *testing.T) {
	tests := []struct {
		s    SaveStatus
		want string
	}{
		{SaveUnknown, "unknown"},
		{SaveOK, "ok"},
		{SaveFailed, "failed"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("SaveStatus(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
