// Package mem implements WebAssembly linear memory: a contiguous,
// byte-addressable buffer that grows in 64 KiB pages within the range
// described by an immutable Limits descriptor.
//
// A Limits is constructed first and fixes the minimum (initial) and maximum
// page counts. An Instance allocates its zero-filled buffer at the minimum
// and can only grow, never shrink:
//
//	limits, err := mem.NewLimits(1, 4)
//	if err != nil {
//		return err
//	}
//	m, err := mem.NewInstance(limits)
//	if err != nil {
//		return err
//	}
//	defer m.Release()
//
//	if err := m.SetData([]byte("hello"), 0); err != nil {
//		return err
//	}
//	data, err := m.GetData(0, 5)
//
// Every access is validated against the current size with overflow-safe
// arithmetic before any byte is touched; a failed SetData leaves the buffer
// unmodified.
//
// # Concurrency
//
// An Instance performs no internal locking. It may be moved between
// goroutines and shared for concurrent reads (GetData, DataPointer, Size,
// Type). SetData, Grow, DataPointerMut, Release, and Drop require exclusive
// access; the host must serialize them against all other operations on the
// same instance.
//
// # Views
//
// DataPointer and DataPointerMut return windows into the live buffer.
// Growth may reallocate the buffer, so every Grow invalidates all
// outstanding views; a stale view reports view_unavailable instead of
// reading through a dangling reference.
//
// # Ownership
//
// When an Instance or Limits is handed to a host registry, the registry
// becomes the owning destructor. MarkHostOwned records the transfer and
// Release becomes a no-op, so a local handle can never double-free a
// registered memory. The registry calls Drop, which frees unconditionally.
package mem
