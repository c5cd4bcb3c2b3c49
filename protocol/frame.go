package protocol

import (
	"bytes"
	"io"

	"github.com/blockforge/core/internal/varint"
)

// maxFrameLength bounds a single frame's declared length, guarding the
// reader against a hostile or corrupt length prefix (spec.md §7
// MalformedPacket).
const maxFrameLength = 2 * 1024 * 1024

// ReadFrame reads one length-prefixed frame from r, per spec.md §4.5: a
// var-int total length, that many bytes, the first var-int of which is
// the packet id and the remainder the payload.
func ReadFrame(r io.Reader) (id int32, payload []byte, err error) {
	n, err := varint.ReadInt(r)
	if err != nil {
		return 0, nil, Errorf(MalformedPacket, "read length: %v", err)
	}
	if n < 0 || n > maxFrameLength {
		return 0, nil, Errorf(MalformedPacket, "frame length %d out of range", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, nil, Errorf(MalformedPacket, "short read: %v", err)
	}
	body := bytes.NewReader(buf)
	id, err = varint.ReadInt(body)
	if err != nil {
		return 0, nil, Errorf(MalformedPacket, "read packet id: %v", err)
	}
	payload = buf[len(buf)-body.Len():]
	return id, payload, nil
}

// WriteFrame composes id and payload into a scratch buffer and writes it
// to w prefixed by its var-int length (spec.md §4.5).
func WriteFrame(w io.Writer, id int32, payload []byte) error {
	var scratch bytes.Buffer
	if err := varint.WriteInt(&scratch, id); err != nil {
		return err
	}
	scratch.Write(payload)
	if err := varint.WriteInt(w, int32(scratch.Len())); err != nil {
		return err
	}
	_, err := w.Write(scratch.Bytes())
	return err
}
