// Package protocol implements the framed wire format of spec.md §4.5,
// its packet id table and outbound packet encoders (spec.md §4.7, §6).
package protocol

import "fmt"

// Kind enumerates the protocol-level error kinds of spec.md §7 that are
// not specific to the world engine (CoordOutOfRange lives on
// world.ErrCoordOutOfRange instead).
type Kind int

const (
	// InvalidProtocol: wrong protocol version at handshake, or next_state
	// outside {1,2}. The caller must close the socket immediately.
	InvalidProtocol Kind = iota
	// MalformedPacket: UTF-8 failure, var-int overflow, short read. The
	// caller should log at debug and close the socket.
	MalformedPacket
	// UnknownEntry: a registry identifier absent from its table.
	UnknownEntry
	// MissingContext: a Play-phase encoder needs a player the connection
	// does not have.
	MissingContext
)

func (k Kind) String() string {
	switch k {
	case InvalidProtocol:
		return "invalid protocol"
	case MalformedPacket:
		return "malformed packet"
	case UnknownEntry:
		return "unknown entry"
	case MissingContext:
		return "missing context"
	default:
		return "unknown"
	}
}

// Error is the small typed error spec.md §7 calls for, carrying enough
// context to decide the required action without string matching.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("protocol: %s: %s", e.Kind, e.Msg)
}

// Errorf builds an *Error of the given kind.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
