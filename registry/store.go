package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/blockforge/core/internal/nbt"
	"github.com/df-mc/jsonc"
	"github.com/segmentio/fasthash/fnv1a"
)

// Entry is a single registry-table row: a stable identifier, its index
// within the registry's deterministic index vector, and the decoded JSON
// fields used to build its NBT encoding.
type Entry struct {
	Identifier string
	Index      int
	fields     map[string]any
}

// Registry is one named, ordered table of Entry values loaded from an
// embedded JSON file.
type Registry struct {
	ID      string
	Entries []Entry
	byName  map[string]int

	cache [cacheShards]struct {
		mu   sync.Mutex
		nbts map[string][]byte
	}
}

const cacheShards = 16

func shardFor(identifier string) uint64 {
	return fnv1a.HashString64(identifier) % cacheShards
}

// Lookup returns the entry registered under identifier.
func (r *Registry) Lookup(identifier string) (Entry, bool) {
	i, ok := r.byName[identifier]
	if !ok {
		return Entry{}, false
	}
	return r.Entries[i], true
}

// NBT returns the memoized network-NBT encoding (unnamed root compound) of
// the entry, computing and caching it on first request. Per spec.md §5, at
// most one encoding per key is required to be observed — duplicate work
// under concurrent first access is acceptable, so the shard lock is held
// only long enough to populate the map.
func (r *Registry) NBT(e Entry) []byte {
	shard := &r.cache[shardFor(e.Identifier)]
	shard.mu.Lock()
	if shard.nbts == nil {
		shard.nbts = make(map[string][]byte)
	}
	if b, ok := shard.nbts[e.Identifier]; ok {
		shard.mu.Unlock()
		return b
	}
	shard.mu.Unlock()

	c := nbt.NewCompound()
	for _, k := range sortedKeys(e.fields) {
		c.Set(k, jsonToNBT(e.fields[k]))
	}
	var buf bytes.Buffer
	_ = nbt.EncodeRoot(&buf, c)
	encoded := buf.Bytes()

	shard.mu.Lock()
	shard.nbts[e.Identifier] = encoded
	shard.mu.Unlock()
	return encoded
}

// Store is the process-wide collection of registries, loaded once at
// startup and read-only thereafter.
type Store struct {
	order      []string
	registries map[string]*Registry
}

type manifestEntry struct {
	RegistryID string `json:"registry_id"`
	File       string `json:"file"`
}

// NewStore loads every registry named in data/registries.json, in the
// order that file lists them — the order spec.md §4.7/S4 requires Registry
// Data packets to be streamed in.
func NewStore() (*Store, error) {
	manifestRaw, err := Files.ReadFile("data/registries.json")
	if err != nil {
		return nil, fmt.Errorf("registry: read manifest: %w", err)
	}
	var manifest []manifestEntry
	if err := json.Unmarshal(jsonc.ToJSON(manifestRaw), &manifest); err != nil {
		return nil, fmt.Errorf("registry: decode manifest: %w", err)
	}

	s := &Store{registries: make(map[string]*Registry, len(manifest))}
	for _, m := range manifest {
		reg, err := s.loadRegistry(m.RegistryID, m.File)
		if err != nil {
			return nil, err
		}
		s.order = append(s.order, m.RegistryID)
		s.registries[m.RegistryID] = reg
	}
	return s, nil
}

func (s *Store) loadRegistry(id, file string) (*Registry, error) {
	raw, err := Files.ReadFile("data/" + file)
	if err != nil {
		return nil, fmt.Errorf("registry: read %s: %w", file, err)
	}
	var rows []map[string]any
	if err := json.Unmarshal(jsonc.ToJSON(raw), &rows); err != nil {
		return nil, fmt.Errorf("registry: decode %s: %w", file, err)
	}
	reg := &Registry{ID: id, byName: make(map[string]int, len(rows))}
	for i, row := range rows {
		ident, _ := row["identifier"].(string)
		if ident == "" {
			return nil, fmt.Errorf("registry: %s entry %d missing identifier", file, i)
		}
		fields := make(map[string]any, len(row))
		for k, v := range row {
			if k == "identifier" {
				continue
			}
			fields[k] = v
		}
		reg.byName[ident] = len(reg.Entries)
		reg.Entries = append(reg.Entries, Entry{Identifier: ident, Index: i, fields: fields})
	}
	return reg, nil
}

// Order returns the registry ids in the deterministic order they must be
// streamed (spec.md §4.7/S4).
func (s *Store) Order() []string { return append([]string(nil), s.order...) }

// Registry returns the named registry, or nil if unknown (spec.md §7
// UnknownEntry).
func (s *Store) Registry(id string) *Registry { return s.registries[id] }

// ReadJSON reads and jsonc-normalizes an arbitrary embedded data file, used
// by package block to load blocks.json outside the streamed-registry set.
func ReadJSON(file string, out any) error {
	raw, err := Files.ReadFile("data/" + file)
	if err != nil {
		return fmt.Errorf("registry: read %s: %w", file, err)
	}
	return json.Unmarshal(jsonc.ToJSON(raw), out)
}
