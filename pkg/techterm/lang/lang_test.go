package lang

import "testing"

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry[string]()
	r.Register(English, "english")

	v, ok := r.Lookup(English)
	if !ok || v != "english" {
		t.Fatalf("Lookup(en) = %q, %v", v, ok)
	}

	if _, ok := r.Lookup(Japanese); ok {
		t.Error("Lookup(ja) should miss on an empty slot")
	}
}

func TestRegistryCodesSorted(t *testing.T) {
	r := NewRegistry[int]()
	r.Register(Japanese, 2)
	r.Register(English, 1)

	codes := r.Codes()
	if len(codes) != 2 || codes[0] != English || codes[1] != Japanese {
		t.Errorf("Codes() = %v, want [en ja]", codes)
	}
}
