package mem_test

import (
	"bytes"
	"errors"
	"testing"

	memerrors "github.com/wippyai/wasm-memory/errors"
	"github.com/wippyai/wasm-memory/mem"
)

func isViewUnavailable(err error) bool {
	var e *memerrors.Error
	return errors.As(err, &e) && e.Kind == memerrors.KindViewUnavailable
}

func TestDataPointer(t *testing.T) {
	m := mustInstance(t, 1, 2)
	defer m.Release()

	want := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	if err := m.SetData(want, 64); err != nil {
		t.Fatal(err)
	}

	v, err := m.DataPointer(64, 4)
	if err != nil {
		t.Fatalf("DataPointer failed: %v", err)
	}
	if v.Offset() != 64 || v.Len() != 4 {
		t.Errorf("view window = (%d, %d), want (64, 4)", v.Offset(), v.Len())
	}

	got, err := v.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Bytes() = %v, want %v", got, want)
	}

	// The view tracks later writes to the same region.
	if err := m.SetData([]byte{7}, 64); err != nil {
		t.Fatal(err)
	}
	got, err = v.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 7 {
		t.Errorf("view did not observe write, got %d", got[0])
	}
}

func TestDataPointerMut(t *testing.T) {
	m := mustInstance(t, 1, 2)
	defer m.Release()

	v, err := m.DataPointerMut(128, 4)
	if err != nil {
		t.Fatalf("DataPointerMut failed: %v", err)
	}

	buf, err := v.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	copy(buf, []byte{1, 2, 3, 4})

	got, err := m.GetData(128, 4)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Errorf("write through mutable view not visible: %v", got)
	}
}

func TestViewStaleAfterGrow(t *testing.T) {
	m := mustInstance(t, 1, 2)
	defer m.Release()

	v, err := m.DataPointer(0, 8)
	if err != nil {
		t.Fatal(err)
	}
	mv, err := m.DataPointerMut(8, 8)
	if err != nil {
		t.Fatal(err)
	}

	if err := m.Grow(1); err != nil {
		t.Fatal(err)
	}

	if _, err := v.Bytes(); !isViewUnavailable(err) {
		t.Errorf("stale view Bytes() = %v, want view_unavailable", err)
	}
	if _, err := mv.Bytes(); !isViewUnavailable(err) {
		t.Errorf("stale mutable view Bytes() = %v, want view_unavailable", err)
	}

	// A fresh view over the grown buffer works.
	v2, err := m.DataPointer(0, 8)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := v2.Bytes(); err != nil {
		t.Errorf("fresh view failed: %v", err)
	}
}

func TestViewStaleAfterRelease(t *testing.T) {
	m := mustInstance(t, 1, 1)

	v, err := m.DataPointer(0, 16)
	if err != nil {
		t.Fatal(err)
	}

	m.Release()

	if _, err := v.Bytes(); !isViewUnavailable(err) {
		t.Errorf("view after release = %v, want view_unavailable", err)
	}
}

func TestViewBoundsCapped(t *testing.T) {
	m := mustInstance(t, 1, 2)
	defer m.Release()

	v, err := m.DataPointer(mem.PageSize-4, 4)
	if err != nil {
		t.Fatal(err)
	}
	buf, err := v.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != 4 || cap(buf) != 4 {
		t.Errorf("len/cap = %d/%d, want 4/4", len(buf), cap(buf))
	}
}
