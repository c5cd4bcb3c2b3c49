// Package gameplay implements the player-join glue of spec.md §4.8/§4.9:
// allocating an entity id, registering a Player in the world's entity
// table, and sending the join packet sequence.
package gameplay

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/blockforge/core/protocol"
	"github.com/blockforge/core/world"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Sender is the narrow capability Player and Join need from a connection:
// encode and frame one outbound packet. session.Conn implements this
// without gameplay importing package session, avoiding an import cycle.
type Sender interface {
	Send(id int32, payload []byte) error
}

// Player is the in-world actor spawned for a connected client
// (spec.md §3 Entity/Player, §4.8 step 3).
type Player struct {
	mu sync.Mutex

	id     world.EntityID
	dim    int
	uuid   uuid.UUID
	sender Sender

	pos        mgl64.Vec3
	velocity   mgl32.Vec3
	yaw, pitch float32
	onGround   bool

	health           float32
	maxHealth        float32
	gameMode         uint8
	previousGameMode int8
	teleportID       int32

	loadedChunks map[world.ChunkKey]struct{}
}

// EntityID implements world.Entity.
func (p *Player) EntityID() world.EntityID { return p.id }

// DimensionIndex implements world.Entity.
func (p *Player) DimensionIndex() int { return p.dim }

// Position returns the player's current position.
func (p *Player) Position() (x, y, z float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos.X(), p.pos.Y(), p.pos.Z()
}

// Velocity returns the player's current velocity (spec.md §3 Entity).
func (p *Player) Velocity() mgl32.Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.velocity
}

// OnGround reports whether the player is currently resting on a block
// (spec.md §3 Entity).
func (p *Player) OnGround() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.onGround
}

// MaxHealth returns the player's maximum health (spec.md §3 Player).
func (p *Player) MaxHealth() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.maxHealth
}

// LoadedChunk reports whether key is in the set of chunks currently loaded
// for this client (spec.md §3 Player).
func (p *Player) LoadedChunk(key world.ChunkKey) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.loadedChunks[key]
	return ok
}

// MarkChunkLoaded adds key to the set of chunks currently loaded for this
// client.
func (p *Player) MarkChunkLoaded(key world.ChunkKey) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loadedChunks[key] = struct{}{}
}

// UnmarkChunkLoaded removes key from the set of chunks currently loaded
// for this client.
func (p *Player) UnmarkChunkLoaded(key world.ChunkKey) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.loadedChunks, key)
}

// ConfirmTeleport clears the pending teleport id iff it matches id
// (spec.md §4.6 Play's Confirm Teleportation decoder); a mismatch is a
// no-op.
func (p *Player) ConfirmTeleport(id int32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.teleportID == id {
		p.teleportID = 0
	}
}

// Synchronize implements spec.md §4.9: issues a fresh random teleport id,
// stores it and sends the Synchronize Player Position packet.
func (p *Player) Synchronize() error {
	p.mu.Lock()
	id := rand.Int32()
	p.teleportID = id
	x, y, z, yaw, pitch := p.pos.X(), p.pos.Y(), p.pos.Z(), p.yaw, p.pitch
	p.mu.Unlock()

	return p.sender.Send(protocol.SynchronizePositionID,
		protocol.SynchronizePlayerPosition(x, y, z, yaw, pitch, id))
}

// JoinParams bundles everything Join needs beyond the connecting player's
// identity and sender.
type JoinParams struct {
	World              *world.World
	Sender             Sender
	UUID               uuid.UUID
	DimensionNames     []string
	MaxPlayers         int32
	ViewDistance       int32
	SimulationDistance int32
	HashedSeed         int64
}

// Join performs spec.md §4.8's player-join sequence: allocate an entity
// id, pick a spawn at the default dimension's origin, register the
// Player, then send Play Login, Game Event, Synchronize Player Position
// and Set Center Chunk in order.
func Join(p JoinParams) (*Player, error) {
	dim := p.World.Dimension(0)
	if dim == nil {
		return nil, protocol.Errorf(protocol.MissingContext, "no default dimension configured")
	}

	id := p.World.Entities.Allocate()
	player := &Player{
		id:               id,
		dim:              dim.Index(),
		uuid:             p.UUID,
		sender:           p.Sender,
		pos:              mgl64.Vec3{0, float64(dim.Type().Range.Min), 0},
		velocity:         mgl32.Vec3{0, 0, 0},
		health:           20,
		maxHealth:        20,
		gameMode:         0,
		previousGameMode: -1,
		loadedChunks:     make(map[world.ChunkKey]struct{}),
	}
	p.World.Entities.Add(player)

	if err := p.Sender.Send(protocol.PlayLoginID, protocol.PlayLogin(protocol.PlayLoginParams{
		EntityID:           int32(id),
		Dimensions:         p.DimensionNames,
		MaxPlayers:         p.MaxPlayers,
		ViewDistance:       p.ViewDistance,
		SimulationDistance: p.SimulationDistance,
		DimensionIndex:     int32(dim.Index()),
		DimensionName:      dim.Type().Identifier,
		HashedSeed:         p.HashedSeed,
		GameMode:           player.gameMode,
		PreviousGameMode:   player.previousGameMode,
	})); err != nil {
		return nil, fmt.Errorf("gameplay: send play login: %w", err)
	}

	if err := p.Sender.Send(protocol.GameEventID,
		protocol.GameEvent(protocol.GameEventStartWaitingForLevelChunks, 0)); err != nil {
		return nil, fmt.Errorf("gameplay: send game event: %w", err)
	}

	if err := player.Synchronize(); err != nil {
		return nil, fmt.Errorf("gameplay: send synchronize position: %w", err)
	}

	cx, cz := int32(math.Floor(player.pos.X()/16)), int32(math.Floor(player.pos.Z()/16))
	if err := p.Sender.Send(protocol.SetCenterChunkID, protocol.SetCenterChunk(cx, cz)); err != nil {
		return nil, fmt.Errorf("gameplay: send set center chunk: %w", err)
	}

	return player, nil
}
