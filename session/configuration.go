package session

import (
	"bytes"

	"github.com/blockforge/core/config"
	"github.com/blockforge/core/gameplay"
	"github.com/blockforge/core/internal/varint"
	"github.com/blockforge/core/protocol"
)

var configurationHandlers = map[int32]Handler{
	protocol.ClientInformationID:              clientInformationHandler{},
	protocol.KnownPacksC2SID:                  knownPacksHandler{},
	protocol.AcknowledgeFinishConfigurationID: ackFinishConfigurationHandler{},
}

// clientInformationHandler decodes Client Information and stores every
// field on the connection (spec.md §4.6).
type clientInformationHandler struct{}

func (clientInformationHandler) Handle(payload []byte, c *Conn) error {
	r := bytes.NewReader(payload)

	locale, err := varint.ReadString(r, 16)
	if err != nil {
		return protocol.Errorf(protocol.MalformedPacket, "locale: %v", err)
	}
	viewDistanceByte, err := r.ReadByte()
	if err != nil {
		return protocol.Errorf(protocol.MalformedPacket, "view distance: %v", err)
	}
	chatMode, err := varint.ReadInt(r)
	if err != nil {
		return protocol.Errorf(protocol.MalformedPacket, "chat mode: %v", err)
	}
	chatColorsByte, err := r.ReadByte()
	if err != nil {
		return protocol.Errorf(protocol.MalformedPacket, "chat colors: %v", err)
	}
	skinParts, err := r.ReadByte()
	if err != nil {
		return protocol.Errorf(protocol.MalformedPacket, "skin parts: %v", err)
	}
	mainHand, err := varint.ReadInt(r)
	if err != nil {
		return protocol.Errorf(protocol.MalformedPacket, "main hand: %v", err)
	}
	textFilteringByte, err := r.ReadByte()
	if err != nil {
		return protocol.Errorf(protocol.MalformedPacket, "text filtering: %v", err)
	}
	serverListingsByte, err := r.ReadByte()
	if err != nil {
		return protocol.Errorf(protocol.MalformedPacket, "server listings: %v", err)
	}

	c.mu.Lock()
	c.Locale = locale
	c.ViewDistance = int8(viewDistanceByte)
	c.ChatMode = ChatMode(chatMode)
	c.ChatColors = chatColorsByte != 0
	c.SkinParts = skinParts
	c.MainHand = MainHand(mainHand)
	c.TextFiltering = textFilteringByte != 0
	c.ServerListings = serverListingsByte != 0
	c.mu.Unlock()
	return nil
}

// knownPacksHandler streams every registry's Registry Data packet
// (spec.md §4.7) then sends Finish Configuration.
type knownPacksHandler struct{}

func (knownPacksHandler) Handle(_ []byte, c *Conn) error {
	store := c.deps.Store
	for _, id := range store.Order() {
		reg := store.Registry(id)
		if reg == nil {
			continue
		}
		entries := make([]protocol.RegistryEntry, len(reg.Entries))
		for i, e := range reg.Entries {
			entries[i] = protocol.RegistryEntry{Identifier: e.Identifier, NBT: reg.NBT(e)}
		}
		if err := c.Send(protocol.RegistryDataID, protocol.RegistryData(id, entries)); err != nil {
			return err
		}
	}
	return c.Send(protocol.FinishConfigurationID, protocol.FinishConfiguration())
}

// ackFinishConfigurationHandler invokes player-join (spec.md §4.8) and
// transitions to Play.
type ackFinishConfigurationHandler struct{}

func (ackFinishConfigurationHandler) Handle(_ []byte, c *Conn) error {
	c.mu.Lock()
	conf := c.deps.Config
	uid := c.UUID
	c.mu.Unlock()

	dimensionNames := dimensionIdentifiers(c)
	player, err := gameplay.Join(gameplay.JoinParams{
		World:              c.deps.World,
		Sender:             c,
		UUID:               uid,
		DimensionNames:     dimensionNames,
		MaxPlayers:         conf.MaxPlayers,
		ViewDistance:       conf.ViewDistance,
		SimulationDistance: conf.SimulationDistance,
		HashedSeed:         config.HashedSeed(conf.Seed),
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.Player = player
	c.PlayerEntityID = player.EntityID()
	c.phase = PhasePlay
	c.mu.Unlock()
	return nil
}

func dimensionIdentifiers(c *Conn) []string {
	dims := c.deps.World.Dimensions()
	names := make([]string, len(dims))
	for i, d := range dims {
		names[i] = d.Type().Identifier
	}
	return names
}
