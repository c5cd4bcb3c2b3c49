package config

import (
	"encoding/binary"
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	conf, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if conf != Default() {
		t.Fatalf("got %+v, want defaults %+v", conf, Default())
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}
}

func TestLoadRoundTripsNonDefaultValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := write(path, Config{
		MaxPlayers:             5,
		ViewDistance:           8,
		SimulationDistance:     8,
		Seed:                   42,
		Port:                   12345,
		WorldgenImplementation: "super_flat",
	}); err != nil {
		t.Fatalf("write: %v", err)
	}
	conf, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if conf.MaxPlayers != 5 || conf.Port != 12345 || conf.Seed != 42 {
		t.Fatalf("got %+v", conf)
	}
}

func TestLoadFallsBackOnMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("port = 9999\n"), 0644); err != nil {
		t.Fatal(err)
	}
	conf, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if conf.Port != 9999 {
		t.Fatalf("port = %d, want 9999", conf.Port)
	}
	if conf.MaxPlayers != Default().MaxPlayers {
		t.Fatalf("max-players = %d, want default %d", conf.MaxPlayers, Default().MaxPlayers)
	}
}

func TestHashedSeedMatchesFormula(t *testing.T) {
	const seed int64 = 123456789
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(seed))
	sum := sha256.Sum256(buf[:])
	want := int64(binary.BigEndian.Uint64(sum[:8]))

	if got := HashedSeed(seed); got != want {
		t.Fatalf("HashedSeed = %d, want %d", got, want)
	}
}
