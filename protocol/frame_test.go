package protocol

import (
	"bytes"
	"testing"
)

func TestWriteFrameReadFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte{1, 2, 3, 4, 5}
	if err := WriteFrame(&buf, 0x07, payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	id, got, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if id != 0x07 {
		t.Fatalf("id = %#x, want 0x07", id)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload = %v, want %v", got, payload)
	}
}

func TestReadFrameRejectsOversizedLength(t *testing.T) {
	var buf bytes.Buffer
	// A length prefix far beyond maxFrameLength, no body.
	buf.Write([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F})
	if _, _, err := ReadFrame(&buf); err == nil {
		t.Fatal("expected an error for an oversized frame length")
	}
}

func TestReadFrameRejectsShortBody(t *testing.T) {
	var buf bytes.Buffer
	_ = WriteFrame(&buf, 1, []byte{9, 9, 9})
	truncated := bytes.NewReader(buf.Bytes()[:buf.Len()-1])
	if _, _, err := ReadFrame(truncated); err == nil {
		t.Fatal("expected an error for a truncated frame body")
	}
}

func TestWriteFrameEmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, 0x03, nil); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	id, payload, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if id != 0x03 || len(payload) != 0 {
		t.Fatalf("id=%#x payload=%v, want id=0x03 empty payload", id, payload)
	}
}
