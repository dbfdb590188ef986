package engine

import (
	"math"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-memory/errors"
	"github.com/wippyai/wasm-memory/mem"
)

// HostMemory is the subset of wazero's api.Memory the bridge relies on.
// Size is in bytes and always a whole number of pages; Grow takes a page
// delta and reports the previous page count.
type HostMemory interface {
	Size() uint32
	Read(offset, byteCount uint32) ([]byte, bool)
	Write(offset uint32, v []byte) bool
	Grow(deltaPages uint32) (uint32, bool)
}

var _ HostMemory = (api.Memory)(nil)

// ModuleMemory returns the exported linear memory of a wazero module.
func ModuleMemory(mod api.Module) (HostMemory, error) {
	m := mod.Memory()
	if m == nil {
		return nil, errors.New(errors.PhaseAccess, errors.KindNotFound).
			Detail("module %q exports no memory", mod.Name()).
			Build()
	}
	return m, nil
}

// Snapshot copies a host memory into a standalone instance bounded by
// [current pages, maxPages]. Fails with invalid_range when the host
// memory is already larger than maxPages.
func Snapshot(src HostMemory, maxPages uint32) (*mem.Instance, error) {
	size := src.Size()
	pages := size / mem.PageSize

	limits, err := mem.NewLimits(pages, maxPages)
	if err != nil {
		return nil, err
	}
	inst, err := mem.NewInstance(limits)
	if err != nil {
		return nil, err
	}

	if size > 0 {
		data, ok := src.Read(0, size)
		if !ok {
			inst.Release()
			return nil, errors.ViewUnavailable("host memory refused read")
		}
		if err := inst.SetData(data, 0); err != nil {
			inst.Release()
			return nil, err
		}
	}

	Logger().Debug("snapshot host memory",
		zap.Uint32("pages", pages),
		zap.Uint32("max_pages", maxPages))

	return inst, nil
}

// Restore copies an instance's content back into a host memory, growing
// the host memory when the instance is larger. Content is written in a
// single call; a restore that fails before the write leaves the host
// bytes unchanged.
func Restore(dst HostMemory, src *mem.Instance) error {
	if src.SizeBytes() > math.MaxUint32 {
		return errors.AllocationFailed(errors.PhaseAccess, uint64(src.Size()), src.SizeBytes())
	}

	dstPages := dst.Size() / mem.PageSize
	if srcPages := src.Size(); srcPages > dstPages {
		if _, ok := dst.Grow(srcPages - dstPages); !ok {
			return errors.New(errors.PhaseGrow, errors.KindOutOfBounds).
				Detail("host memory refused grow from %d to %d pages", dstPages, srcPages).
				Build()
		}
	}

	data, err := src.GetData(0, uint32(src.SizeBytes()))
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if !dst.Write(0, data) {
		return errors.ViewUnavailable("host memory refused write")
	}

	Logger().Debug("restored host memory",
		zap.Uint32("pages", src.Size()))

	return nil
}
