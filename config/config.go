// Package config loads and creates blockforged's TOML configuration file
// (spec.md §6), grounded on server/whitelist.go's
// read-or-create-with-defaults pattern over github.com/pelletier/go-toml.
package config

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml"
)

// Config is the decoded contents of config.toml (spec.md §6).
type Config struct {
	MaxPlayers             int32  `toml:"max-players"`
	ViewDistance           int32  `toml:"view-distance"`
	SimulationDistance     int32  `toml:"simulation-distance"`
	Seed                   int64  `toml:"seed"`
	Port                   int32  `toml:"port"`
	WorldgenImplementation string `toml:"worldgen-implementation"`
}

// Default returns the configuration defaults spec.md §6 specifies.
func Default() Config {
	return Config{
		MaxPlayers:             20,
		ViewDistance:           12,
		SimulationDistance:     16,
		Seed:                   0,
		Port:                   25565,
		WorldgenImplementation: "super_flat",
	}
}

// Load reads path, creating it with Default() if it does not exist.
// Individual keys missing from an existing file fall back to their
// default values (spec.md §6).
func Load(path string) (Config, error) {
	conf := Default()
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return conf, write(path, conf)
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if len(contents) == 0 {
		return conf, nil
	}
	if err := toml.Unmarshal(contents, &conf); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return conf, nil
}

func write(path string, conf Config) error {
	encoded, err := toml.Marshal(conf)
	if err != nil {
		return fmt.Errorf("config: encode defaults: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// HashedSeed derives the i64 hashed seed spec.md §6 defines:
// i64::from_be_bytes(SHA-256(seed.to_be_bytes())[0..8]).
func HashedSeed(seed int64) int64 {
	var seedBytes [8]byte
	binary.BigEndian.PutUint64(seedBytes[:], uint64(seed))
	sum := sha256.Sum256(seedBytes[:])
	return int64(binary.BigEndian.Uint64(sum[:8]))
}
