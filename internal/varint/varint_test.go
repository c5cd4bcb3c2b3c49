package varint

import (
	"bytes"
	"testing"
)

func TestIntRoundTrip(t *testing.T) {
	cases := []int32{0, 1, -1, 127, 128, 255, 2147483647, -2147483648, 25565, -25565}
	for _, v := range cases {
		var buf bytes.Buffer
		if err := WriteInt(&buf, v); err != nil {
			t.Fatalf("WriteInt(%d): %v", v, err)
		}
		if buf.Len() > MaxVarIntBytes {
			t.Fatalf("WriteInt(%d) used %d bytes, want <= %d", v, buf.Len(), MaxVarIntBytes)
		}
		got, err := ReadInt(&buf)
		if err != nil {
			t.Fatalf("ReadInt after WriteInt(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d => %d", v, got)
		}
	}
}

func TestLenMatchesWriteInt(t *testing.T) {
	cases := []int32{0, 1, 127, 128, 16383, 16384, 2097151, 2097152, -1}
	for _, v := range cases {
		var buf bytes.Buffer
		_ = WriteInt(&buf, v)
		if Len(v) != buf.Len() {
			t.Errorf("Len(%d) = %d, want %d", v, Len(v), buf.Len())
		}
	}
}

func TestReadIntTooLong(t *testing.T) {
	// 5 bytes all with continuation bit set never terminates.
	data := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	_, err := ReadInt(bytes.NewReader(data))
	if err != ErrVarIntTooLong {
		t.Fatalf("ReadInt() err = %v, want ErrVarIntTooLong", err)
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"", "alice", "こんにちは"} {
		var buf bytes.Buffer
		if err := WriteString(&buf, s); err != nil {
			t.Fatalf("WriteString: %v", err)
		}
		got, err := ReadString(&buf, 0)
		if err != nil {
			t.Fatalf("ReadString: %v", err)
		}
		if got != s {
			t.Errorf("round trip %q => %q", s, got)
		}
	}
}

func TestLongRoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 1 << 40, -(1 << 40)}
	for _, v := range cases {
		var buf bytes.Buffer
		if err := WriteLong(&buf, v); err != nil {
			t.Fatalf("WriteLong(%d): %v", v, err)
		}
		got, err := ReadLong(&buf)
		if err != nil {
			t.Fatalf("ReadLong: %v", err)
		}
		if got != v {
			t.Errorf("round trip %d => %d", v, got)
		}
	}
}
