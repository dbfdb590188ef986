// Package engine connects memory instances to hosting runtimes.
//
// Accessor layers little-endian typed reads and writes over a
// mem.Instance, implementing the root wasmmemory.Memory interface.
//
// The wazero bridge moves data between a wazero-hosted module's linear
// memory and a mem.Instance: Snapshot copies a host memory out into a
// standalone instance, Restore copies an instance back into a host
// memory, growing it as needed. HostMemory is the narrow structural
// subset of wazero's api.Memory the bridge relies on, so tests and other
// engines can supply their own implementation.
package engine
