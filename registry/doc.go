// Package registry implements the host-side ownership table for exported
// memories and limits descriptors.
//
// A memory handed to a host (for example as part of a module's exports)
// must be destroyed exactly once, by exactly one owner. Register transfers
// that ownership: the value is marked host-owned, which turns the original
// handle's Release into a no-op, and the registry becomes responsible for
// running the destructor via Remove, Clear, or Close.
//
//	reg := registry.New()
//	defer reg.Close()
//
//	h := reg.RegisterMemory(m)
//	m.Release() // no-op now; the registry owns m
//
//	got, err := reg.Memory(h)
//
// Borrow/ReturnBorrow track values lent back out of the registry; an entry
// with outstanding borrows refuses to drop. Observers can subscribe to
// registration, drop, and borrow events.
//
// All registry operations are safe for concurrent use.
package registry
