package session

import "testing"

func TestRegistry_RegisterMintsUUIDWhenEmpty(t *testing.T) {
	r := NewRegistry()
	sess := &Session{}
	id := r.Register("", sess)
	if id == "" {
		t.Fatal("expected a minted view id")
	}
	got, ok := r.Get(id)
	if !ok || got != sess {
		t.Fatalf("Get(%q) = (%v, %v)", id, got, ok)
	}
}

func TestRegistry_RegisterHonorsCallerSuppliedID(t *testing.T) {
	r := NewRegistry()
	sess := &Session{}
	id := r.Register("my-view", sess)
	if id != "my-view" {
		t.Fatalf("id = %q, want %q", id, "my-view")
	}
}

func TestRegistry_Deregister(t *testing.T) {
	r := NewRegistry()
	id := r.Register("", &Session{})
	r.Deregister(id)
	if _, ok := r.Get(id); ok {
		t.Fatal("expected session to be gone after Deregister")
	}
	if r.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", r.Len())
	}
}

func TestRegistry_LenAndViewIDs(t *testing.T) {
	r := NewRegistry()
	r.Register("a", &Session{})
	r.Register("b", &Session{})
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	ids := r.ViewIDs()
	if len(ids) != 2 {
		t.Fatalf("ViewIDs() = %v, want 2 entries", ids)
	}
}
