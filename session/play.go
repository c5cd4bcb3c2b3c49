package session

import (
	"bytes"

	"github.com/blockforge/core/internal/varint"
	"github.com/blockforge/core/protocol"
)

// playHandlers is empty except for Confirm Teleportation in this core
// (spec.md §4.6); the table is kept so callers can register more Play
// decoders without touching the dispatch loop.
var playHandlers = map[int32]Handler{
	protocol.ConfirmTeleportationID: confirmTeleportationHandler{},
}

// confirmTeleportationHandler clears the player's pending teleport id iff
// it matches (spec.md §4.6); a mismatch is a no-op.
type confirmTeleportationHandler struct{}

func (confirmTeleportationHandler) Handle(payload []byte, c *Conn) error {
	id, err := varint.ReadInt(bytes.NewReader(payload))
	if err != nil {
		return protocol.Errorf(protocol.MalformedPacket, "teleport id: %v", err)
	}
	c.mu.Lock()
	player := c.Player
	c.mu.Unlock()
	if player == nil {
		return protocol.Errorf(protocol.MissingContext, "confirm teleportation with no player")
	}
	player.ConfirmTeleport(id)
	return nil
}
