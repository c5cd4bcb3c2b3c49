package nbt

import (
	"bytes"
	"testing"
)

func TestEncodeRootUnnamed(t *testing.T) {
	c := NewCompound().Set("long_value", Long(9223372036854775807))
	var buf bytes.Buffer
	if err := EncodeRoot(&buf, c); err != nil {
		t.Fatalf("EncodeRoot: %v", err)
	}
	got := buf.Bytes()

	// root tag(compound)=10, field: tag(long)=4, name_len=10 ("long_value"),
	// name bytes, 8-byte payload, terminating TAG_End.
	want := []byte{byte(TagCompound)}
	want = append(want, byte(TagLong))
	want = append(want, 0x00, 0x0A)
	want = append(want, "long_value"...)
	want = append(want, 0x7F, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)
	want = append(want, byte(TagEnd))

	if !bytes.Equal(got, want) {
		t.Fatalf("EncodeRoot mismatch:\ngot:  % x\nwant: % x", got, want)
	}
}

func TestEncodeEmptyCompound(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeRoot(&buf, NewCompound()); err != nil {
		t.Fatalf("EncodeRoot: %v", err)
	}
	want := []byte{byte(TagCompound), byte(TagEnd)}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got % x, want % x", buf.Bytes(), want)
	}
}

func TestEncodeNestedCompound(t *testing.T) {
	inner := NewCompound().Set("x", Int(5))
	outer := NewCompound().Set("inner", inner)
	var buf bytes.Buffer
	if err := EncodeRoot(&buf, outer); err != nil {
		t.Fatalf("EncodeRoot: %v", err)
	}
	want := []byte{
		byte(TagCompound),
		byte(TagCompound), 0x00, 0x05, 'i', 'n', 'n', 'e', 'r',
		byte(TagInt), 0x00, 0x01, 'x', 0, 0, 0, 5,
		byte(TagEnd),
		byte(TagEnd),
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got % x, want % x", buf.Bytes(), want)
	}
}

func TestEncodeLongArray(t *testing.T) {
	c := NewCompound().Set("MOTION_BLOCKING", LongArray{1, 2, 3})
	var buf bytes.Buffer
	if err := EncodeRoot(&buf, c); err != nil {
		t.Fatalf("EncodeRoot: %v", err)
	}
	got := buf.Bytes()
	if got[0] != byte(TagCompound) {
		t.Fatalf("root tag = %d, want TagCompound", got[0])
	}
	if got[1] != byte(TagLongArray) {
		t.Fatalf("field tag = %d, want TagLongArray", got[1])
	}
}

func TestListRejectsHeterogeneous(t *testing.T) {
	l := List{Int(1), String("oops")}
	var buf bytes.Buffer
	if err := l.encodePayload(&buf); err == nil {
		t.Fatal("expected error for heterogeneous list")
	}
}
