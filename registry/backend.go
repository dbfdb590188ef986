package registry

import (
	"sync"
)

// localBackend is the in-memory storage behind a Registry: a slice of
// entries addressed by handle, with free-list reuse and borrow tracking.
// Entries with outstanding borrows refuse to drop.
type localBackend struct {
	entries  []entry
	freeList []Handle
	mu       sync.RWMutex
	closed   bool
}

type entry struct {
	value       any
	typeID      uint32
	borrowCount uint32
	valid       bool
}

func newLocalBackend() *localBackend {
	return &localBackend{
		entries:  make([]entry, 0, 16),
		freeList: make([]Handle, 0, 8),
	}
}

// create stores a value and returns its handle, or 0 when closed.
func (b *localBackend) create(typeID uint32, value any) Handle {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0
	}

	e := entry{
		typeID: typeID,
		value:  value,
		valid:  true,
	}

	if len(b.freeList) > 0 {
		handle := b.freeList[len(b.freeList)-1]
		b.freeList = b.freeList[:len(b.freeList)-1]
		b.entries[handle-1] = e
		return handle
	}

	b.entries = append(b.entries, e)
	return Handle(len(b.entries))
}

// get retrieves a value by handle.
func (b *localBackend) get(handle Handle) (any, bool) {
	if handle == 0 {
		return nil, false
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	idx := handle - 1
	if int(idx) >= len(b.entries) {
		return nil, false
	}

	e := b.entries[idx]
	if !e.valid {
		return nil, false
	}
	return e.value, true
}

// typeID returns the type tag for a handle.
func (b *localBackend) typeID(handle Handle) (uint32, bool) {
	if handle == 0 {
		return 0, false
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	idx := handle - 1
	if int(idx) >= len(b.entries) {
		return 0, false
	}

	e := b.entries[idx]
	if !e.valid {
		return 0, false
	}
	return e.typeID, true
}

// drop removes a value and returns (value, true) if the destructor should
// run. Returns (nil, false) for invalid handles and for entries with
// outstanding borrows.
func (b *localBackend) drop(handle Handle) (any, bool) {
	if handle == 0 {
		return nil, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	idx := handle - 1
	if int(idx) >= len(b.entries) {
		return nil, false
	}

	e := &b.entries[idx]
	if !e.valid {
		return nil, false
	}

	if e.borrowCount > 0 {
		return nil, false
	}

	value := e.value
	e.valid = false
	e.value = nil
	e.borrowCount = 0
	b.freeList = append(b.freeList, handle)

	return value, true
}

// borrow increments the borrow count for a handle.
func (b *localBackend) borrow(handle Handle) bool {
	if handle == 0 {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	idx := handle - 1
	if int(idx) >= len(b.entries) {
		return false
	}

	e := &b.entries[idx]
	if !e.valid {
		return false
	}

	e.borrowCount++
	return true
}

// returnBorrow decrements the borrow count for a handle.
func (b *localBackend) returnBorrow(handle Handle) bool {
	if handle == 0 {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	idx := handle - 1
	if int(idx) >= len(b.entries) {
		return false
	}

	e := &b.entries[idx]
	if !e.valid || e.borrowCount == 0 {
		return false
	}

	e.borrowCount--
	return true
}

// length returns the number of live entries.
func (b *localBackend) length() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, e := range b.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// each iterates over all live entries.
func (b *localBackend) each(fn func(Handle, uint32, any) bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for i, e := range b.entries {
		if e.valid {
			if !fn(Handle(i+1), e.typeID, e.value) {
				break
			}
		}
	}
}

// close runs destructors for all live entries and stops the backend.
func (b *localBackend) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for i := range b.entries {
		if b.entries[i].valid {
			if d, ok := b.entries[i].value.(Dropper); ok {
				d.Drop()
			}
			b.entries[i].valid = false
			b.entries[i].value = nil
		}
	}

	b.entries = nil
	b.freeList = nil
}
