package registry

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/wasm-memory/errors"
	"github.com/wippyai/wasm-memory/mem"
)

// Registry is the host-side owner of exported memories and their limits.
// Registering a value transfers ownership: the value is marked host-owned,
// its local handle's Release becomes a no-op, and the registry's Remove or
// Close runs the real destructor exactly once.
type Registry struct {
	backend   *localBackend
	observers []Observer
	obsMu     sync.RWMutex
	closed    bool
	closeMu   sync.RWMutex
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		backend: newLocalBackend(),
	}
}

// Register stores a value under the given type tag and returns its handle.
// Values implementing HostOwnable are marked host-owned first, so the
// caller's handle can no longer free them. Returns 0 when the registry is
// closed.
func (r *Registry) Register(typeID uint32, value any) Handle {
	r.closeMu.RLock()
	if r.closed {
		r.closeMu.RUnlock()
		return 0
	}
	r.closeMu.RUnlock()

	if o, ok := value.(HostOwnable); ok {
		o.MarkHostOwned()
	}

	handle := r.backend.create(typeID, value)
	if handle == 0 {
		return 0
	}

	Logger().Debug("registered value",
		zap.Uint32("handle", uint32(handle)),
		zap.Uint32("type", typeID))

	r.notify(Event{
		Type:   EventRegistered,
		Handle: handle,
		TypeID: typeID,
		Value:  value,
	})

	return handle
}

// RegisterMemory registers a memory instance and transfers its ownership
// to the registry.
func (r *Registry) RegisterMemory(m *mem.Instance) Handle {
	return r.Register(TypeMemory, m)
}

// RegisterLimits registers a limits descriptor.
func (r *Registry) RegisterLimits(l mem.Limits) Handle {
	return r.Register(TypeLimits, l)
}

// Get retrieves a value by handle.
func (r *Registry) Get(handle Handle) (any, bool) {
	return r.backend.get(handle)
}

// GetTyped retrieves a value only if it matches the expected type tag.
func (r *Registry) GetTyped(handle Handle, typeID uint32) (any, bool) {
	actual, ok := r.backend.typeID(handle)
	if !ok || actual != typeID {
		return nil, false
	}
	return r.backend.get(handle)
}

// Memory retrieves a registered memory instance.
func (r *Registry) Memory(handle Handle) (*mem.Instance, error) {
	v, ok := r.GetTyped(handle, TypeMemory)
	if !ok {
		return nil, errors.NotFound("memory", uint32(handle))
	}
	return v.(*mem.Instance), nil
}

// Limits retrieves a registered limits descriptor.
func (r *Registry) Limits(handle Handle) (mem.Limits, error) {
	v, ok := r.GetTyped(handle, TypeLimits)
	if !ok {
		return mem.Limits{}, errors.NotFound("limits", uint32(handle))
	}
	return v.(mem.Limits), nil
}

// Borrow marks a handle as lent to the host. A borrowed entry refuses to
// drop until every borrow is returned.
func (r *Registry) Borrow(handle Handle) bool {
	if !r.backend.borrow(handle) {
		return false
	}
	typeID, _ := r.backend.typeID(handle)
	r.notify(Event{Type: EventBorrowed, Handle: handle, TypeID: typeID})
	return true
}

// ReturnBorrow returns a borrow taken with Borrow.
func (r *Registry) ReturnBorrow(handle Handle) bool {
	if !r.backend.returnBorrow(handle) {
		return false
	}
	typeID, _ := r.backend.typeID(handle)
	r.notify(Event{Type: EventBorrowReturned, Handle: handle, TypeID: typeID})
	return true
}

// Remove drops a registered value, running its destructor, and returns
// (value, true) if found. Entries with outstanding borrows are not
// removed.
func (r *Registry) Remove(handle Handle) (any, bool) {
	typeID, _ := r.backend.typeID(handle)
	value, ok := r.backend.drop(handle)
	if !ok {
		return nil, false
	}

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}

	Logger().Debug("dropped value",
		zap.Uint32("handle", uint32(handle)),
		zap.Uint32("type", typeID))

	r.notify(Event{
		Type:   EventDropped,
		Handle: handle,
		TypeID: typeID,
		Value:  value,
	})

	return value, true
}

// Subscribe adds an observer for lifecycle events.
func (r *Registry) Subscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	r.observers = append(r.observers, o)
}

// Unsubscribe removes an observer.
func (r *Registry) Unsubscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	for i, obs := range r.observers {
		if obs == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered values.
func (r *Registry) Len() int {
	return r.backend.length()
}

// Each iterates over all registered values.
func (r *Registry) Each(fn func(Handle, uint32, any) bool) {
	r.backend.each(fn)
}

// Clear drops all registered values through Remove, so destructors and
// observers run for each.
func (r *Registry) Clear() {
	var handles []Handle
	r.backend.each(func(h Handle, typeID uint32, value any) bool {
		handles = append(handles, h)
		return true
	})
	for _, h := range handles {
		r.Remove(h)
	}
}

// Close destroys all registered values and stops accepting operations.
func (r *Registry) Close() error {
	r.closeMu.Lock()
	r.closed = true
	r.closeMu.Unlock()

	r.backend.close()
	return nil
}

func (r *Registry) notify(e Event) {
	r.obsMu.RLock()
	defer r.obsMu.RUnlock()
	for _, o := range r.observers {
		o.OnRegistryEvent(e)
	}
}
