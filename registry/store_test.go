package registry

import "testing"

func TestNewStoreOrder(t *testing.T) {
	s, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	want := []string{
		"minecraft:worldgen/biome",
		"minecraft:painting_variant",
		"minecraft:damage_type",
		"minecraft:wolf_variant",
		"minecraft:dimension_type",
	}
	got := s.Order()
	if len(got) != len(want) {
		t.Fatalf("Order() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Order()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistryLookupAndNBT(t *testing.T) {
	s, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	reg := s.Registry("minecraft:dimension_type")
	if reg == nil {
		t.Fatal("dimension_type registry missing")
	}
	entry, ok := reg.Lookup("minecraft:overworld")
	if !ok {
		t.Fatal("minecraft:overworld not found")
	}
	b1 := reg.NBT(entry)
	b2 := reg.NBT(entry)
	if len(b1) == 0 {
		t.Fatal("NBT encoding is empty")
	}
	if string(b1) != string(b2) {
		t.Fatal("NBT encoding not stable across calls")
	}
	if b1[0] != 10 { // TAG_Compound
		t.Fatalf("root tag = %d, want 10", b1[0])
	}
}

func TestUnknownRegistry(t *testing.T) {
	s, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if s.Registry("minecraft:does_not_exist") != nil {
		t.Fatal("expected nil for unknown registry")
	}
}
