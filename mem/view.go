package mem

import (
	"github.com/wippyai/wasm-memory/errors"
)

// View is a read-only window into a live memory buffer. It carries the
// generation the buffer had when the view was issued; Grow, Release, and
// Drop bump the generation, so a stale view fails instead of reading
// through a reallocated or freed buffer.
type View struct {
	inst   *Instance
	offset uint32
	length uint32
	gen    uint64
}

// Offset returns the view's start offset in the memory.
func (v *View) Offset() uint32 { return v.offset }

// Len returns the view's length in bytes.
func (v *View) Len() uint32 { return v.length }

// Bytes returns the viewed slice of the live buffer. The slice aliases
// memory owned by the instance and must not be retained across a Grow.
// Fails with view_unavailable when the view is stale.
func (v *View) Bytes() ([]byte, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	return v.inst.buf[v.offset : uint64(v.offset)+uint64(v.length) : uint64(v.offset)+uint64(v.length)], nil
}

func (v *View) check() error {
	if v.inst.released {
		return errors.ViewUnavailable("memory instance released")
	}
	if v.gen != v.inst.gen {
		return errors.ViewUnavailable("view invalidated by grow")
	}
	return nil
}

// MutView is a mutable window into a live memory buffer. It follows the
// same staleness rule as View and additionally requires the caller to hold
// exclusive access to the instance while the returned slice is in use.
type MutView struct {
	View
}

// Bytes returns the viewed slice for writing. The slice aliases memory
// owned by the instance; writes land directly in the linear memory.
func (v *MutView) Bytes() ([]byte, error) {
	return v.View.Bytes()
}
