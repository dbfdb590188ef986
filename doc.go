// Package wasmmemory provides a Go implementation of WebAssembly-style
// linear memory: a page-granular, bounds-checked, growable byte buffer
// with an immutable limits descriptor and a host-side ownership registry.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	wasmmemory/          Root package with the Memory, Sizer, and Grower interfaces
//	├── mem/             Limits descriptor, memory instance, borrowed views
//	├── registry/        Host-side ownership table for exported memories
//	├── engine/          Typed accessors and the wazero host-memory bridge
//	├── errors/          Structured error types for debugging
//	└── cmd/memview/     Interactive memory inspector CLI
//
// # Quick Start
//
// Create a memory bounded to [1, 4] pages and access it:
//
//	limits, err := mem.NewLimits(1, 4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, err := mem.NewInstance(limits)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Release()
//
//	if err := m.SetData([]byte("hello"), 0); err != nil {
//	    log.Fatal(err)
//	}
//	if err := m.Grow(1); err != nil {
//	    log.Fatal(err)
//	}
//
// Typed access goes through engine.Accessor:
//
//	acc := engine.NewAccessor(m)
//	if err := acc.WriteU32(8, 0xCAFEBABE); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// A mem.Instance is safe to move between goroutines and to share for
// concurrent reads. Writes and growth require exclusive access; the host
// serializes them. Growth invalidates outstanding views, which fail
// loudly instead of dereferencing a reallocated buffer. The registry is
// safe for concurrent use.
//
// # Memory Model
//
// Linear memory can only grow, never shrink. Page size is fixed at
// 64 KiB, and every access is validated with overflow-safe arithmetic
// before any byte is touched.
package wasmmemory
