package engine

import (
	"encoding/binary"

	wasmmemory "github.com/wippyai/wasm-memory"
	"github.com/wippyai/wasm-memory/mem"
)

// Accessor provides little-endian typed access over a memory instance.
// All bounds checking is delegated to the instance, so every method
// reports out_of_bounds the same way raw GetData/SetData do.
//
// Accessor shares the instance's concurrency contract: reads may run
// concurrently, writes require exclusive access.
type Accessor struct {
	m *mem.Instance
}

var _ wasmmemory.Memory = (*Accessor)(nil)

// NewAccessor creates an Accessor over the given instance.
func NewAccessor(m *mem.Instance) *Accessor {
	return &Accessor{m: m}
}

// Instance returns the underlying memory instance.
func (a *Accessor) Instance() *mem.Instance {
	return a.m
}

// Read returns a copy of length bytes at offset.
func (a *Accessor) Read(offset uint32, length uint32) ([]byte, error) {
	return a.m.GetData(offset, length)
}

// Write copies data into the memory at offset.
func (a *Accessor) Write(offset uint32, data []byte) error {
	return a.m.SetData(data, offset)
}

// ReadU8 reads one byte at offset.
func (a *Accessor) ReadU8(offset uint32) (uint8, error) {
	data, err := a.m.GetData(offset, 1)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

// ReadU16 reads a little-endian uint16 at offset.
func (a *Accessor) ReadU16(offset uint32) (uint16, error) {
	data, err := a.m.GetData(offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(data), nil
}

// ReadU32 reads a little-endian uint32 at offset.
func (a *Accessor) ReadU32(offset uint32) (uint32, error) {
	data, err := a.m.GetData(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(data), nil
}

// ReadU64 reads a little-endian uint64 at offset.
func (a *Accessor) ReadU64(offset uint32) (uint64, error) {
	data, err := a.m.GetData(offset, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(data), nil
}

// WriteU8 writes one byte at offset.
func (a *Accessor) WriteU8(offset uint32, value uint8) error {
	return a.m.SetData([]byte{value}, offset)
}

// WriteU16 writes a little-endian uint16 at offset.
func (a *Accessor) WriteU16(offset uint32, value uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], value)
	return a.m.SetData(buf[:], offset)
}

// WriteU32 writes a little-endian uint32 at offset.
func (a *Accessor) WriteU32(offset uint32, value uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], value)
	return a.m.SetData(buf[:], offset)
}

// WriteU64 writes a little-endian uint64 at offset.
func (a *Accessor) WriteU64(offset uint32, value uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], value)
	return a.m.SetData(buf[:], offset)
}
