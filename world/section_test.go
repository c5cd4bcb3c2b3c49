package world

import (
	"testing"

	"github.com/blockforge/core/block"
)

func TestSectionBlockCountTracksNonAirCells(t *testing.T) {
	s := NewSection()
	if s.BlockCount() != 0 || !s.Empty() {
		t.Fatal("expected a fresh section to be empty")
	}

	s.SetState(0, block.StateID(5))
	s.SetState(1, block.StateID(7))
	if got := s.BlockCount(); got != 2 {
		t.Fatalf("block count = %d, want 2", got)
	}

	s.SetState(0, 0)
	if got := s.BlockCount(); got != 1 {
		t.Fatalf("block count = %d, want 1 after clearing one cell", got)
	}

	// Overwriting a non-air cell with another non-air state must not
	// change the count.
	s.SetState(1, block.StateID(9))
	if got := s.BlockCount(); got != 1 {
		t.Fatalf("block count = %d, want 1 after a non-air -> non-air overwrite", got)
	}
}

func TestSectionGetSetStateRoundTrips(t *testing.T) {
	s := NewSection()
	s.SetState(4095, block.StateID(42))
	if got := s.GetState(4095); got != 42 {
		t.Fatalf("GetState(4095) = %d, want 42", got)
	}
	if got := s.GetState(0); got != 0 {
		t.Fatalf("GetState(0) = %d, want 0", got)
	}
}

func TestSectionLightNibblesRoundTrip(t *testing.T) {
	s := NewSection()
	for idx := 0; idx < 8; idx++ {
		s.SetSkyLight(idx, byte(idx%16))
		s.SetBlockLight(idx, byte((15-idx)%16))
	}
	for idx := 0; idx < 8; idx++ {
		if got := s.GetSkyLight(idx); got != byte(idx%16) {
			t.Fatalf("sky light[%d] = %d, want %d", idx, got, idx%16)
		}
		if got := s.GetBlockLight(idx); got != byte((15-idx)%16) {
			t.Fatalf("block light[%d] = %d, want %d", idx, got, (15-idx)%16)
		}
	}
}

func TestHasLightDetectsAnyNonZeroNibble(t *testing.T) {
	s := NewSection()
	sky, _ := s.lightSnapshot()
	if hasLight(sky) {
		t.Fatal("expected a fresh section's sky light to report empty")
	}
	s.SetSkyLight(10, 3)
	sky, _ = s.lightSnapshot()
	if !hasLight(sky) {
		t.Fatal("expected a single non-zero nibble to report non-empty")
	}
}
