package session

import (
	"bytes"
	"encoding/binary"

	"github.com/blockforge/core/internal/varint"
	"github.com/blockforge/core/protocol"
)

// handleHandshake decodes the single Handshake-phase packet of spec.md
// §4.6 and transitions to Login, or closes the connection cleanly (for a
// status query) or with an InvalidProtocol error.
func handleHandshake(payload []byte, c *Conn) error {
	r := bytes.NewReader(payload)

	if _, err := varint.ReadInt(r); err != nil { // packet_type, discarded
		return protocol.Errorf(protocol.MalformedPacket, "packet type: %v", err)
	}
	version, err := varint.ReadInt(r)
	if err != nil {
		return protocol.Errorf(protocol.MalformedPacket, "protocol version: %v", err)
	}
	if _, err := varint.ReadString(r, 255); err != nil { // server_addr, discarded
		return protocol.Errorf(protocol.MalformedPacket, "server addr: %v", err)
	}
	var port uint16
	if err := binary.Read(r, binary.BigEndian, &port); err != nil { // server_port, discarded
		return protocol.Errorf(protocol.MalformedPacket, "server port: %v", err)
	}
	nextState, err := varint.ReadInt(r)
	if err != nil {
		return protocol.Errorf(protocol.MalformedPacket, "next state: %v", err)
	}

	if version != protocol.ProtocolVersion {
		return protocol.Errorf(protocol.InvalidProtocol, "unsupported protocol version %d", version)
	}

	switch nextState {
	case 2:
		c.setPhase(PhaseLogin)
		return nil
	case 1:
		// Status query: out of scope for this core. Connection stays in
		// PhaseHandshake, which Serve treats as "close cleanly".
		return nil
	default:
		return protocol.Errorf(protocol.InvalidProtocol, "next_state %d outside {1,2}", nextState)
	}
}
