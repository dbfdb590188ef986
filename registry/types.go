package registry

// Handle is an opaque reference to a registered value.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Type tags for registered values.
const (
	TypeMemory uint32 = 1
	TypeLimits uint32 = 2
)

// EventType identifies a lifecycle event on a registered value.
type EventType uint8

const (
	EventRegistered EventType = iota
	EventDropped
	EventBorrowed
	EventBorrowReturned
)

// Event describes a lifecycle event for observers.
type Event struct {
	Value  any
	Handle Handle
	TypeID uint32
	Type   EventType
}

// Observer receives notifications about lifecycle events.
type Observer interface {
	OnRegistryEvent(Event)
}

// Dropper is implemented by values that need a destructor when the
// registry removes them. mem.Instance implements it.
type Dropper interface {
	Drop()
}

// HostOwnable is implemented by values that track an ownership transfer to
// the registry. Registering such a value marks it host-owned, which turns
// the local handle's Release into a no-op so the buffer cannot be freed
// twice.
type HostOwnable interface {
	MarkHostOwned()
}
