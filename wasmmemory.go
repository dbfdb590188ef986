package wasmmemory

// Memory provides byte and little-endian integer access over WASM linear
// memory. engine.Accessor implements it over a mem.Instance.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	ReadU8(offset uint32) (uint8, error)
	ReadU16(offset uint32) (uint16, error)
	ReadU32(offset uint32) (uint32, error)
	ReadU64(offset uint32) (uint64, error)
	WriteU8(offset uint32, value uint8) error
	WriteU16(offset uint32, value uint16) error
	WriteU32(offset uint32, value uint32) error
	WriteU64(offset uint32, value uint64) error
}

// Sizer provides the current size of a linear memory in pages.
type Sizer interface {
	Size() uint32
}

// Grower extends a linear memory by whole pages.
type Grower interface {
	Grow(delta uint32) error
}
