package mem

import (
	"math"

	"github.com/wippyai/wasm-memory/errors"
)

// Instance is a linear memory instance. Its buffer length is always an
// exact multiple of PageSize, starts at the limits minimum, and only grows.
//
// See the package documentation for the concurrency and ownership contract.
type Instance struct {
	limits    Limits
	buf       []byte
	gen       uint64 // bumped on every grow and on release; views check it
	hostOwned bool
	released  bool
}

// NewInstance allocates a zero-filled memory of limits.Min() pages.
// Fails with an allocation error when the byte length cannot be represented
// or allocated on this platform.
func NewInstance(limits Limits) (*Instance, error) {
	buf, err := allocPages(uint64(limits.Min()), errors.PhaseCreate)
	if err != nil {
		return nil, err
	}
	return &Instance{limits: limits, buf: buf}, nil
}

// allocPages allocates a zero-filled buffer of the given page count.
func allocPages(pages uint64, phase errors.Phase) (buf []byte, err error) {
	bytes := pages * PageSize
	if bytes > math.MaxInt {
		return nil, errors.AllocationFailed(phase, pages, bytes)
	}
	defer func() {
		// make can panic before the runtime gives up the process, e.g. when
		// the length exceeds the allocator's address-space budget.
		if recover() != nil {
			buf = nil
			err = errors.AllocationFailed(phase, pages, bytes)
		}
	}()
	return make([]byte, bytes), nil
}

// Type returns the limits the instance was constructed with. Fails with
// type_unavailable after the instance has been released.
func (m *Instance) Type() (Limits, error) {
	if m.released {
		return Limits{}, errors.TypeUnavailable()
	}
	return m.limits, nil
}

// Size returns the current page count.
func (m *Instance) Size() uint32 {
	return uint32(len(m.buf) / PageSize)
}

// SizeBytes returns the current buffer length in bytes.
func (m *Instance) SizeBytes() uint64 {
	return uint64(len(m.buf))
}

// checkRange validates [offset, offset+length) against the current buffer.
// The end address is computed in uint64 so the addition cannot wrap.
func (m *Instance) checkRange(offset, length uint32, phase errors.Phase) error {
	if m.released {
		return errors.ViewUnavailable("memory instance released")
	}
	if end := uint64(offset) + uint64(length); end > uint64(len(m.buf)) {
		return errors.OutOfBounds(phase, offset, length, uint64(len(m.buf)))
	}
	return nil
}

// GetData returns a copy of length bytes starting at offset. Safe to call
// concurrently with other reads on the same instance.
func (m *Instance) GetData(offset, length uint32) ([]byte, error) {
	if err := m.checkRange(offset, length, errors.PhaseAccess); err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, m.buf[offset:])
	return out, nil
}

// SetData writes data into the buffer starting at offset. The range is
// validated before any byte is written; on failure the buffer is unchanged.
// Requires exclusive access.
func (m *Instance) SetData(data []byte, offset uint32) error {
	if m.released {
		return errors.ViewUnavailable("memory instance released")
	}
	if end := uint64(offset) + uint64(len(data)); end > uint64(len(m.buf)) {
		return errors.New(errors.PhaseAccess, errors.KindOutOfBounds).
			Detail("access [%d, %d) exceeds memory size %d", offset, end, len(m.buf)).
			Value(offset).
			Build()
	}
	copy(m.buf[offset:], data)
	return nil
}

// Grow extends the memory by delta pages. The new page count must not
// exceed the limits maximum. Newly added pages read as zero. The buffer is
// swapped all at once, so a failed grow leaves size and contents untouched.
// Requires exclusive access, and invalidates all outstanding views.
func (m *Instance) Grow(delta uint32) error {
	if m.released {
		return errors.ViewUnavailable("memory instance released")
	}
	current := m.Size()
	newCount := uint64(current) + uint64(delta)
	if newCount > uint64(m.limits.Max()) {
		return errors.GrowOutOfBounds(current, delta, m.limits.Max())
	}
	if delta == 0 {
		return nil
	}
	buf, err := allocPages(newCount, errors.PhaseGrow)
	if err != nil {
		return err
	}
	copy(buf, m.buf)
	m.buf = buf
	m.gen++
	return nil
}

// DataPointer returns a read-only view of length bytes at offset. The view
// stays valid until the next Grow, Release, or Drop on the instance.
func (m *Instance) DataPointer(offset, length uint32) (*View, error) {
	if err := m.checkRange(offset, length, errors.PhaseAccess); err != nil {
		return nil, err
	}
	return &View{inst: m, offset: offset, length: length, gen: m.gen}, nil
}

// DataPointerMut returns a mutable view of length bytes at offset. The
// caller must guarantee no other live view exists for the instance while
// the mutable view is in use; that contract is not runtime-checked here.
func (m *Instance) DataPointerMut(offset, length uint32) (*MutView, error) {
	if err := m.checkRange(offset, length, errors.PhaseAccess); err != nil {
		return nil, err
	}
	return &MutView{View{inst: m, offset: offset, length: length, gen: m.gen}}, nil
}

// MarkHostOwned records that ownership of the instance has been transferred
// to a host registry. After the transfer, Release no longer frees the
// buffer; the registry's destructor does.
func (m *Instance) MarkHostOwned() {
	m.hostOwned = true
}

// HostOwned reports whether the instance is owned by a host registry.
func (m *Instance) HostOwned() bool {
	return m.hostOwned
}

// Release frees the buffer unless ownership was transferred to a host
// registry. Safe to call more than once.
func (m *Instance) Release() {
	if m.hostOwned {
		return
	}
	m.free()
}

// Drop frees the buffer unconditionally. It is the registry destructor and
// must only be called by the owning registry.
func (m *Instance) Drop() {
	m.free()
}

func (m *Instance) free() {
	m.buf = nil
	m.released = true
	m.gen++
}
