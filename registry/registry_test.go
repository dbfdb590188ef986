package registry

import (
	"testing"

	"github.com/wippyai/wasm-memory/mem"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnRegistryEvent(e Event) {
	o.events = append(o.events, e)
}

func newMemory(t *testing.T, min, max uint32) *mem.Instance {
	t.Helper()
	limits, err := mem.NewLimits(min, max)
	if err != nil {
		t.Fatal(err)
	}
	m, err := mem.NewInstance(limits)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestRegistry_Basic(t *testing.T) {
	reg := New()
	m := newMemory(t, 1, 2)

	h := reg.RegisterMemory(m)
	if h == 0 {
		t.Fatal("Expected non-zero handle")
	}

	got, err := reg.Memory(h)
	if err != nil {
		t.Fatalf("Memory failed: %v", err)
	}
	if got != m {
		t.Fatal("Wrong value returned")
	}

	// GetTyped with wrong type
	if _, ok := reg.GetTyped(h, TypeLimits); ok {
		t.Fatal("GetTyped with wrong type should fail")
	}

	val, ok := reg.Remove(h)
	if !ok {
		t.Fatal("Remove failed")
	}
	if val != m {
		t.Fatal("Remove returned wrong value")
	}
	if reg.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Remove")
	}
}

func TestRegistry_OwnershipTransfer(t *testing.T) {
	reg := New()
	m := newMemory(t, 1, 2)

	reg.RegisterMemory(m)
	if !m.HostOwned() {
		t.Fatal("Register should mark the memory host-owned")
	}

	// The original handle can no longer free the buffer.
	m.Release()
	if _, err := m.GetData(0, 1); err != nil {
		t.Fatalf("buffer freed by non-owning Release: %v", err)
	}
}

func TestRegistry_RemoveRunsDestructor(t *testing.T) {
	reg := New()
	m := newMemory(t, 1, 2)

	h := reg.RegisterMemory(m)
	if _, ok := reg.Remove(h); !ok {
		t.Fatal("Remove failed")
	}

	// Remove ran Drop; the buffer is gone.
	if _, err := m.GetData(0, 1); err == nil {
		t.Fatal("buffer should be freed after Remove")
	}
}

func TestRegistry_CloseRunsDestructors(t *testing.T) {
	reg := New()
	m1 := newMemory(t, 1, 2)
	m2 := newMemory(t, 2, 4)

	reg.RegisterMemory(m1)
	reg.RegisterMemory(m2)

	if err := reg.Close(); err != nil {
		t.Fatal(err)
	}

	for i, m := range []*mem.Instance{m1, m2} {
		if _, err := m.GetData(0, 1); err == nil {
			t.Fatalf("memory %d still live after Close", i)
		}
	}

	// Closed registry refuses new registrations.
	if h := reg.RegisterMemory(newMemory(t, 1, 1)); h != 0 {
		t.Fatal("Register on closed registry should return 0")
	}
}

func TestRegistry_Limits(t *testing.T) {
	reg := New()

	limits, err := mem.NewLimits(10, 20)
	if err != nil {
		t.Fatal(err)
	}

	h := reg.RegisterLimits(limits)
	if h == 0 {
		t.Fatal("Expected non-zero handle")
	}

	got, err := reg.Limits(h)
	if err != nil {
		t.Fatalf("Limits failed: %v", err)
	}
	if min, max := got.Limit(); min != 10 || max != 20 {
		t.Fatalf("Limit() = (%d, %d), want (10, 20)", min, max)
	}

	if _, err := reg.Memory(h); err == nil {
		t.Fatal("Memory on a limits handle should fail")
	}
}

func TestRegistry_Observer(t *testing.T) {
	reg := New()
	obs := &testObserver{}
	reg.Subscribe(obs)

	h := reg.RegisterMemory(newMemory(t, 1, 1))
	if len(obs.events) != 1 || obs.events[0].Type != EventRegistered {
		t.Fatalf("Expected EventRegistered, got %+v", obs.events)
	}
	if obs.events[0].Handle != h {
		t.Fatal("Wrong handle in event")
	}

	reg.Remove(h)
	if len(obs.events) != 2 || obs.events[1].Type != EventDropped {
		t.Fatalf("Expected EventDropped, got %+v", obs.events)
	}

	reg.Unsubscribe(obs)
	reg.RegisterMemory(newMemory(t, 1, 1))
	if len(obs.events) != 2 {
		t.Fatal("Should not receive events after Unsubscribe")
	}
}

func TestRegistry_BorrowBlocksDrop(t *testing.T) {
	reg := New()
	h := reg.RegisterMemory(newMemory(t, 1, 1))

	if !reg.Borrow(h) {
		t.Fatal("Borrow failed")
	}

	if _, ok := reg.Remove(h); ok {
		t.Fatal("Remove should fail with outstanding borrow")
	}

	if !reg.ReturnBorrow(h) {
		t.Fatal("ReturnBorrow failed")
	}
	if _, ok := reg.Remove(h); !ok {
		t.Fatal("Remove should succeed after borrow returned")
	}
}

func TestRegistry_Clear(t *testing.T) {
	reg := New()
	reg.RegisterMemory(newMemory(t, 1, 1))
	reg.RegisterMemory(newMemory(t, 1, 1))

	reg.Clear()
	if reg.Len() != 0 {
		t.Fatalf("Len() = %d after Clear, want 0", reg.Len())
	}

	// Cleared registry still accepts registrations.
	if h := reg.RegisterMemory(newMemory(t, 1, 1)); h == 0 {
		t.Fatal("Register after Clear failed")
	}
}

func TestBackend_HandleReuse(t *testing.T) {
	b := newLocalBackend()

	h1 := b.create(TypeMemory, "a")
	h2 := b.create(TypeMemory, "b")
	if h1 == h2 {
		t.Fatal("distinct values got the same handle")
	}

	b.drop(h1)
	h3 := b.create(TypeMemory, "c")
	if h3 != h1 {
		t.Fatalf("free-list reuse: got %d, want %d", h3, h1)
	}

	// Stale handle h1 now resolves to the new value, old value is gone.
	v, ok := b.get(h3)
	if !ok || v != "c" {
		t.Fatalf("get(%d) = %v, %v", h3, v, ok)
	}
}

func TestBackend_InvalidHandles(t *testing.T) {
	b := newLocalBackend()

	if _, ok := b.get(0); ok {
		t.Fatal("handle 0 should be invalid")
	}
	if _, ok := b.get(42); ok {
		t.Fatal("unknown handle should be invalid")
	}
	if _, ok := b.drop(0); ok {
		t.Fatal("drop of handle 0 should fail")
	}
	if b.borrow(7) {
		t.Fatal("borrow of unknown handle should fail")
	}
	if b.returnBorrow(7) {
		t.Fatal("returnBorrow of unknown handle should fail")
	}
}
