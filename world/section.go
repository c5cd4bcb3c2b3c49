package world

import (
	"sync"

	"github.com/blockforge/core/block"
)

// sectionCells is the number of cells in a 16×16×16 section.
const sectionCells = 16 * 16 * 16

// lightBytes is the size of a nibble-packed light array over a section:
// two 4-bit values per byte, 4096 cells / 2.
const lightBytes = sectionCells / 2

// Section is a 16×16×16 cube of cells, the unit of bit-packed palette
// serialization (spec.md §3/§4.1).
type Section struct {
	mu         sync.Mutex
	states     [sectionCells]block.StateID
	blockCount int32
	skyLight   [lightBytes]byte
	blockLight [lightBytes]byte
}

// NewSection returns an all-air section.
func NewSection() *Section { return &Section{} }

// GetState returns the block-state id at the given intra-section cell
// index (0-4095, see cube.SectionLocalIndex). Callers are responsible for
// validating the index; this is the "unchecked fast path" spec.md §4.1
// allows.
func (s *Section) GetState(idx int) block.StateID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[idx]
}

// SetState writes state at idx, adjusting blockCount per spec.md §3's
// invariant: +1 when a zero cell becomes non-zero, -1 for the inverse.
func (s *Section) SetState(idx int, state block.StateID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.states[idx]
	if old == 0 && state != 0 {
		s.blockCount++
	} else if old != 0 && state == 0 {
		s.blockCount--
	}
	s.states[idx] = state
}

// BlockCount returns the number of non-air cells.
func (s *Section) BlockCount() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blockCount
}

// Empty reports whether the section has no non-air cells, the condition
// spec.md §3 uses to decide whether a section serializes as "empty".
func (s *Section) Empty() bool { return s.BlockCount() == 0 }

// snapshot copies the full state array out from under the lock, for
// serialization (spec.md §4.3) which must not hold the section mutex while
// doing I/O.
func (s *Section) snapshot() [sectionCells]block.StateID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states
}

func nibbleGet(arr *[lightBytes]byte, idx int) byte {
	b := arr[idx/2]
	if idx%2 == 0 {
		return b >> 4
	}
	return b & 0x0F
}

func nibbleSet(arr *[lightBytes]byte, idx int, v byte) {
	v &= 0x0F
	i := idx / 2
	if idx%2 == 0 {
		arr[i] = (arr[i] & 0x0F) | (v << 4)
	} else {
		arr[i] = (arr[i] & 0xF0) | v
	}
}

// GetSkyLight returns the 4-bit sky-light nibble at idx: the high nibble
// for even x, the low nibble for odd x (spec.md §4.1).
func (s *Section) GetSkyLight(idx int) byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return nibbleGet(&s.skyLight, idx)
}

// SetSkyLight writes the 4-bit sky-light nibble at idx.
func (s *Section) SetSkyLight(idx int, v byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nibbleSet(&s.skyLight, idx, v)
}

// GetBlockLight returns the 4-bit block-light nibble at idx.
func (s *Section) GetBlockLight(idx int) byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return nibbleGet(&s.blockLight, idx)
}

// SetBlockLight writes the 4-bit block-light nibble at idx.
func (s *Section) SetBlockLight(idx int, v byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nibbleSet(&s.blockLight, idx, v)
}

// lightSnapshot copies out the light arrays for serialization.
func (s *Section) lightSnapshot() (sky, blk [lightBytes]byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skyLight, s.blockLight
}

// hasLight reports whether arr has at least one non-zero nibble, the test
// spec.md §4.3 uses to decide a section's sky/block light mask bit.
func hasLight(arr [lightBytes]byte) bool {
	for _, b := range arr {
		if b != 0 {
			return true
		}
	}
	return false
}
