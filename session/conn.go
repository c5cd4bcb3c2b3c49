// Package session implements the connection state machine of spec.md
// §4.6: Handshake → Login → Configuration → Play, dispatching inbound
// packets to per-phase decoder tables.
package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/blockforge/core/block"
	"github.com/blockforge/core/config"
	"github.com/blockforge/core/gameplay"
	"github.com/blockforge/core/protocol"
	"github.com/blockforge/core/registry"
	"github.com/blockforge/core/world"
	"github.com/google/uuid"
)

// Phase is one of the four connection states spec.md §4.6 defines.
type Phase int

const (
	PhaseHandshake Phase = iota
	PhaseLogin
	PhaseConfiguration
	PhasePlay
)

// ChatMode mirrors the client-information enum of spec.md §4.6.
type ChatMode int32

const (
	ChatModeEnabled ChatMode = iota
	ChatModeCommandsOnly
	ChatModeHidden
)

// MainHand mirrors the client-information enum of spec.md §4.6.
type MainHand int32

const (
	MainHandLeft MainHand = iota
	MainHandRight
)

// PlayerUpdate is a notification queued for delivery to a connection's
// player; spec.md §4.6 leaves the kinds of update and their handling to
// callers, so this core only carries the plumbing.
type PlayerUpdate struct {
	Kind string
}

// Handler decodes one packet's payload and mutates the connection or
// sends outbound packets in response, grounded on the teacher's
// session.Handler shape (server/session/handler_emote.go).
type Handler interface {
	Handle(payload []byte, c *Conn) error
}

// Deps bundles the process-wide collaborators a Conn needs to act on
// decoded packets.
type Deps struct {
	World   *world.World
	Store   *registry.Store
	Catalog *block.Catalog
	Config  config.Config
	Log     *slog.Logger
}

// Conn is one client connection's state machine and mutable per-session
// fields (spec.md §4.6).
type Conn struct {
	rw   io.ReadWriter
	log  *slog.Logger
	deps Deps

	writeMu sync.Mutex

	mu    sync.Mutex
	phase Phase

	Username        string
	UUID            uuid.UUID
	Locale          string
	ViewDistance    int8
	ChatMode        ChatMode
	ChatColors      bool
	SkinParts       uint8
	MainHand        MainHand
	TextFiltering   bool
	ServerListings  bool

	PlayerEntityID world.EntityID
	Player         *gameplay.Player

	updatesMu sync.Mutex
	updates   []PlayerUpdate
}

// NewConn returns a Conn in PhaseHandshake, ready to Serve.
func NewConn(rw io.ReadWriter, deps Deps) *Conn {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	return &Conn{rw: rw, log: log, deps: deps, phase: PhaseHandshake}
}

// Phase returns the connection's current state.
func (c *Conn) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Conn) setPhase(p Phase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()
}

// Send encodes and frames one outbound packet, implementing
// gameplay.Sender. Writes are serialized so the join sequence and any
// future concurrent sender never interleave partial frames.
func (c *Conn) Send(id int32, payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return protocol.WriteFrame(c.rw, id, payload)
}

// PushUpdate enqueues a PlayerUpdate for later draining (spec.md §4.6:
// "an unbounded receiver of PlayerUpdate notifications").
func (c *Conn) PushUpdate(u PlayerUpdate) {
	c.updatesMu.Lock()
	c.updates = append(c.updates, u)
	c.updatesMu.Unlock()
}

// DrainUpdates returns and clears every update queued so far.
func (c *Conn) DrainUpdates() []PlayerUpdate {
	c.updatesMu.Lock()
	defer c.updatesMu.Unlock()
	u := c.updates
	c.updates = nil
	return u
}

// Serve runs the connection's read loop until it errors or the peer
// closes the socket. Handshake is handled first since spec.md §4.6
// requires exactly one inbound packet in that phase; afterward packets
// dispatch through the per-phase decoder table.
func (c *Conn) Serve() error {
	id, payload, err := protocol.ReadFrame(c.rw)
	if err != nil {
		return fmt.Errorf("session: read handshake: %w", err)
	}
	if err := handleHandshake(payload, c); err != nil {
		return err
	}
	if c.Phase() == PhaseHandshake {
		// next_state requested status (out of scope); close cleanly.
		return nil
	}

	for {
		id, payload, err = protocol.ReadFrame(c.rw)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("session: read frame: %w", err)
		}
		table := c.decoderTable()
		h, ok := table[id]
		if !ok {
			continue
		}
		if err := h.Handle(payload, c); err != nil {
			return fmt.Errorf("session: handle packet %#x: %w", id, err)
		}
		// Drain at most one batch of pending updates after each packet
		// (spec.md §4.6); delivery of the drained batch is left to callers.
		_ = c.DrainUpdates()
	}
}

func (c *Conn) decoderTable() map[int32]Handler {
	switch c.Phase() {
	case PhaseLogin:
		return loginHandlers
	case PhaseConfiguration:
		return configurationHandlers
	case PhasePlay:
		return playHandlers
	default:
		return nil
	}
}
