// Package registry loads the embedded JSON data files for the five
// streamed registries (biome, painting_variant, damage_type, wolf_variant,
// dimension_type — spec.md §4.7) plus the block/item catalog files
// consumed by package block, and memoizes their per-entry NBT encodings.
package registry

import "embed"

// Files holds every embedded JSON data file, resolved by filename at
// runtime per spec.md §6's "embedded at build time" requirement.
//
//go:embed data/*.json
var Files embed.FS
