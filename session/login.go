package session

import (
	"bytes"
	"io"

	"github.com/blockforge/core/internal/varint"
	"github.com/blockforge/core/protocol"
	"github.com/google/uuid"
)

var loginHandlers = map[int32]Handler{
	protocol.LoginStartID:        loginStartHandler{},
	protocol.LoginAcknowledgedID: loginAcknowledgedHandler{},
}

// loginStartHandler decodes Login Start and responds with Login Success
// (spec.md §4.6).
type loginStartHandler struct{}

func (loginStartHandler) Handle(payload []byte, c *Conn) error {
	r := bytes.NewReader(payload)
	username, err := varint.ReadString(r, 16)
	if err != nil {
		return protocol.Errorf(protocol.MalformedPacket, "username: %v", err)
	}
	var raw [16]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return protocol.Errorf(protocol.MalformedPacket, "uuid: %v", err)
	}

	c.mu.Lock()
	c.Username = username
	c.UUID = uuid.UUID(raw)
	c.mu.Unlock()

	return c.Send(protocol.LoginSuccessID, protocol.LoginSuccess(c.UUID, c.Username))
}

// loginAcknowledgedHandler transitions to Configuration and starts it by
// sending Known Packs (S2C) (spec.md §4.6).
type loginAcknowledgedHandler struct{}

func (loginAcknowledgedHandler) Handle(_ []byte, c *Conn) error {
	c.setPhase(PhaseConfiguration)
	return c.Send(protocol.KnownPacksS2CID, protocol.KnownPacksS2C())
}
