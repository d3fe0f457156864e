package registry

import (
	"testing"
)

type factory struct {
	name string
}

func TestRegisterAndGet(t *testing.T) {
	r := New[*factory]()
	r.Register("TIT2", &factory{name: "title"})

	got, ok := r.Get("TIT2")
	if !ok {
		t.Fatal("Get() did not find registered id")
	}
	if got.name != "title" {
		t.Errorf("factory name = %q, want %q", got.name, "title")
	}
}

func TestGet_CaseInsensitive(t *testing.T) {
	r := New[*factory]()
	r.Register("tpe1", &factory{name: "artist"})

	for _, id := range []string{"TPE1", "tpe1", "Tpe1"} {
		if _, ok := r.Get(id); !ok {
			t.Errorf("Get(%q) missed registered id", id)
		}
	}
}

func TestGet_Unregistered(t *testing.T) {
	r := New[*factory]()

	got, ok := r.Get("XXXX")
	if ok || got != nil {
		t.Errorf("Get() = %v, %v for unregistered id, want nil, false", got, ok)
	}
}

func TestRegister_Overwrites(t *testing.T) {
	r := New[*factory]()
	r.Register("COMM", &factory{name: "first"})
	r.Register("COMM", &factory{name: "second"})

	got, _ := r.Get("COMM")
	if got.name != "second" {
		t.Errorf("factory name = %q, want %q (should be overwritten)", got.name, "second")
	}
}

func TestIDs(t *testing.T) {
	r := New[int]()
	r.Register("TALB", 1)
	r.Register("talb", 2)
	r.Register("TRCK", 3)

	if got := len(r.IDs()); got != 2 {
		t.Errorf("len(IDs()) = %d, want 2", got)
	}
}
