package protocol

import (
	"bytes"
	"encoding/binary"

	"github.com/blockforge/core/internal/varint"
	"github.com/google/uuid"
)

func writeUUID(buf *bytes.Buffer, id uuid.UUID) {
	buf.Write(id[:])
}

func writeBool(buf *bytes.Buffer, v bool) {
	if v {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
}

func writeU8(buf *bytes.Buffer, v uint8)  { buf.WriteByte(v) }
func writeI8(buf *bytes.Buffer, v int8)   { buf.WriteByte(byte(v)) }
func writeI64(buf *bytes.Buffer, v int64) { _ = binary.Write(buf, binary.BigEndian, v) }
func writeF32(buf *bytes.Buffer, v float32) { _ = binary.Write(buf, binary.BigEndian, v) }
func writeF64(buf *bytes.Buffer, v float64) { _ = binary.Write(buf, binary.BigEndian, v) }

// LoginSuccess encodes packet 0x02 (spec.md §6): uuid, username, an empty
// property list and the "strict error handling" flag.
func LoginSuccess(id uuid.UUID, username string) []byte {
	var buf bytes.Buffer
	writeUUID(&buf, id)
	_ = varint.WriteString(&buf, username)
	_ = varint.WriteInt(&buf, 0)
	writeBool(&buf, true)
	return buf.Bytes()
}

// FinishConfiguration encodes packet 0x03's empty payload.
func FinishConfiguration() []byte { return nil }

// RegistryEntry is one pre-encoded entry of a Registry Data packet.
type RegistryEntry struct {
	Identifier string
	NBT        []byte
}

// RegistryData encodes packet 0x07 (spec.md §4.7): the registry id
// followed by its entries in their deterministic order, each with its
// cached NBT encoding.
func RegistryData(registryID string, entries []RegistryEntry) []byte {
	var buf bytes.Buffer
	_ = varint.WriteString(&buf, registryID)
	_ = varint.WriteInt(&buf, int32(len(entries)))
	for _, e := range entries {
		_ = varint.WriteString(&buf, e.Identifier)
		writeBool(&buf, true)
		buf.Write(e.NBT)
	}
	return buf.Bytes()
}

// KnownPacksS2C encodes packet 0x0E: the single "minecraft:core" pack at
// MinecraftVersion (spec.md §6).
func KnownPacksS2C() []byte {
	var buf bytes.Buffer
	_ = varint.WriteInt(&buf, 1)
	_ = varint.WriteString(&buf, "minecraft")
	_ = varint.WriteString(&buf, "core")
	_ = varint.WriteString(&buf, MinecraftVersion)
	return buf.Bytes()
}

// GameEvent encodes packet 0x22.
func GameEvent(event uint8, value float32) []byte {
	var buf bytes.Buffer
	writeU8(&buf, event)
	writeF32(&buf, value)
	return buf.Bytes()
}

// DeathLocation is the optional death-location field of Play Login.
type DeathLocation struct {
	Dimension string
	X, Y, Z   int32
}

// PlayLoginParams bundles the many fields of packet 0x2B (spec.md §6).
type PlayLoginParams struct {
	EntityID            int32
	Dimensions          []string
	MaxPlayers          int32
	ViewDistance        int32
	SimulationDistance  int32
	DimensionIndex      int32
	DimensionName       string
	HashedSeed          int64
	GameMode            uint8
	PreviousGameMode    int8
	DeathLocation       *DeathLocation
	PortalCooldown      int32
}

// PlayLogin encodes packet 0x2B, with every spec-fixed boolean field
// hardcoded to its spec.md §6 value.
func PlayLogin(p PlayLoginParams) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, p.EntityID)
	writeBool(&buf, false) // hardcore
	_ = varint.WriteInt(&buf, int32(len(p.Dimensions)))
	for _, d := range p.Dimensions {
		_ = varint.WriteString(&buf, d)
	}
	_ = varint.WriteInt(&buf, p.MaxPlayers)
	_ = varint.WriteInt(&buf, p.ViewDistance)
	_ = varint.WriteInt(&buf, p.SimulationDistance)
	writeBool(&buf, false) // reduced_debug
	writeBool(&buf, true)  // respawn_screen
	writeBool(&buf, false) // limited_crafting
	_ = varint.WriteInt(&buf, p.DimensionIndex)
	_ = varint.WriteString(&buf, p.DimensionName)
	writeI64(&buf, p.HashedSeed)
	writeU8(&buf, p.GameMode)
	writeI8(&buf, p.PreviousGameMode)
	writeBool(&buf, false) // is_debug
	writeBool(&buf, false) // is_flat
	writeBool(&buf, p.DeathLocation != nil)
	if p.DeathLocation != nil {
		_ = varint.WriteString(&buf, p.DeathLocation.Dimension)
		_ = varint.WriteUint64(&buf, EncodePosition(p.DeathLocation.X, p.DeathLocation.Z, p.DeathLocation.Y))
	}
	_ = varint.WriteInt(&buf, p.PortalCooldown)
	writeBool(&buf, false) // secure_chat
	return buf.Bytes()
}

// SynchronizePlayerPosition encodes packet 0x40 (spec.md §4.9).
func SynchronizePlayerPosition(x, y, z float64, yaw, pitch float32, teleportID int32) []byte {
	var buf bytes.Buffer
	writeF64(&buf, x)
	writeF64(&buf, y)
	writeF64(&buf, z)
	writeF32(&buf, yaw)
	writeF32(&buf, pitch)
	writeI8(&buf, 0) // flags
	_ = varint.WriteInt(&buf, teleportID)
	return buf.Bytes()
}

// SetCenterChunk encodes packet 0x54.
func SetCenterChunk(cx, cz int32) []byte {
	var buf bytes.Buffer
	_ = varint.WriteInt(&buf, cx)
	_ = varint.WriteInt(&buf, cz)
	return buf.Bytes()
}
