package world

import (
	"bytes"
	"context"
	"encoding/binary"

	"github.com/blockforge/core/block"
	"github.com/blockforge/core/internal/bitpack"
	"github.com/blockforge/core/internal/nbt"
	"github.com/blockforge/core/internal/varint"
	"golang.org/x/sync/errgroup"
)

// maxPaletteSize is spec.md §4.3's section-palette compaction cutoff:
// above this many distinct states the section serializes its raw 4096
// entries rather than a compacted palette.
const maxPaletteSize = 1024

// Serialize encodes c as the Play-phase chunk-data payload of spec.md
// §4.3, reusing the chunk's memoized form when no mutation has
// invalidated it since the last call.
func Serialize(c *Chunk) []byte {
	if cached, ok := c.cachedSerialization(); ok {
		return cached
	}

	sectionBlobs := packSectionsParallel(c.sections)

	var buf bytes.Buffer
	_ = varint.WriteUint64(&buf, c.key)
	buf.Write(encodeHeightMaps(c))

	var sectionsBuf bytes.Buffer
	for _, blob := range sectionBlobs {
		sectionsBuf.Write(blob)
	}
	_ = varint.WriteInt(&buf, int32(sectionsBuf.Len()))
	buf.Write(sectionsBuf.Bytes())

	_ = varint.WriteInt(&buf, 0) // block entities: none in this core

	encodeLight(&buf, c.sections)

	out := buf.Bytes()
	c.storeSerialization(out)
	return out
}

func encodeHeightMaps(c *Chunk) []byte {
	mb, ws := c.Heights()
	bitsPer := bitpack.BitsFor(int(c.ra.Height) + 1)
	if bitsPer == 0 {
		bitsPer = 1
	}

	mbEntries := make([]uint32, len(mb))
	wsEntries := make([]uint32, len(ws))
	for i := range mb {
		mbEntries[i] = uint32(mb[i])
		wsEntries[i] = uint32(ws[i])
	}

	comp := nbt.NewCompound()
	comp.Set("MOTION_BLOCKING", toLongArray(bitpack.Pack(mbEntries, bitsPer)))
	comp.Set("WORLD_SURFACE", toLongArray(bitpack.Pack(wsEntries, bitsPer)))

	var buf bytes.Buffer
	_ = nbt.EncodeRoot(&buf, comp)
	return buf.Bytes()
}

func toLongArray(words []uint64) nbt.LongArray {
	out := make(nbt.LongArray, len(words))
	for i, w := range words {
		out[i] = int64(w)
	}
	return out
}

// packSectionsParallel packs every section's palette encoding, bottom to
// top, concurrently over the shared worker pool (SPEC_FULL.md §4.3/§5a) —
// results are written into a pre-sized slice by index, so the concurrent
// fan-out never disturbs the bottom-to-top ordering the wire format
// requires.
func packSectionsParallel(sections []*Section) [][]byte {
	out := make([][]byte, len(sections))
	eg, ctx := errgroup.WithContext(context.Background())
	for i, sec := range sections {
		i, sec := i, sec
		eg.Go(func() error {
			acquireWorker(ctx)
			defer releaseWorker()
			var buf bytes.Buffer
			encodeSection(&buf, sec)
			out[i] = buf.Bytes()
			return nil
		})
	}
	_ = eg.Wait()
	return out
}

func encodeSection(w *bytes.Buffer, sec *Section) {
	states := sec.snapshot()
	_ = binary.Write(w, binary.BigEndian, int16(sec.BlockCount()))

	paletteIDs := make(map[block.StateID]int, 64)
	var palette []block.StateID
	entries := make([]uint32, sectionCells)
	overflow := false
	for i, st := range states {
		if overflow {
			continue
		}
		id, ok := paletteIDs[st]
		if !ok {
			if len(palette) >= maxPaletteSize {
				overflow = true
				continue
			}
			id = len(palette)
			paletteIDs[st] = id
			palette = append(palette, st)
		}
		entries[i] = uint32(id)
	}

	if overflow {
		// Raw fallback: entries are the actual 32-bit state ids, no
		// compaction (spec.md §4.3).
		for i, st := range states {
			entries[i] = uint32(st)
		}
		const bits = 32
		_ = w.WriteByte(bits)
		longs := bitpack.Pack(entries, bits)
		_ = varint.WriteInt(w, int32(len(longs)))
		for _, l := range longs {
			_ = varint.WriteUint64(w, l)
		}
		return
	}

	if len(palette) <= 1 {
		_ = w.WriteByte(0)
		single := int32(0)
		if len(palette) == 1 {
			single = int32(palette[0])
		}
		_ = varint.WriteInt(w, single)
		_ = varint.WriteInt(w, 0)
		return
	}

	bits := bitpack.BitsFor(len(palette))
	_ = w.WriteByte(byte(bits))
	longs := bitpack.Pack(entries, bits)
	_ = varint.WriteInt(w, int32(len(longs)))
	for _, l := range longs {
		_ = varint.WriteUint64(w, l)
	}
}

// encodeLight writes the four light bitsets and the populated sections'
// light byte arrays, per spec.md §4.3 item 5.
func encodeLight(buf *bytes.Buffer, sections []*Section) {
	n := len(sections)
	skyMask := make([]bool, n+2)
	blockMask := make([]bool, n+2)
	emptySkyMask := make([]bool, n+2)
	emptyBlockMask := make([]bool, n+2)

	// Boundary sections (index 0 and n+1) are always empty.
	emptySkyMask[0], emptySkyMask[n+1] = true, true
	emptyBlockMask[0], emptyBlockMask[n+1] = true, true

	skies := make([][lightBytes]byte, n)
	blocks := make([][lightBytes]byte, n)
	for i, sec := range sections {
		sky, blk := sec.lightSnapshot()
		skies[i] = sky
		blocks[i] = blk
		if hasLight(sky) {
			skyMask[i+1] = true
		} else {
			emptySkyMask[i+1] = true
		}
		if hasLight(blk) {
			blockMask[i+1] = true
		} else {
			emptyBlockMask[i+1] = true
		}
	}

	_ = varint.WriteBitSet(buf, skyMask)
	_ = varint.WriteBitSet(buf, blockMask)
	_ = varint.WriteBitSet(buf, emptySkyMask)
	_ = varint.WriteBitSet(buf, emptyBlockMask)

	for i := range sections {
		if skyMask[i+1] {
			_ = varint.WriteInt(buf, int32(lightBytes))
			buf.Write(skies[i][:])
		}
	}
	for i := range sections {
		if blockMask[i+1] {
			_ = varint.WriteInt(buf, int32(lightBytes))
			buf.Write(blocks[i][:])
		}
	}
}
