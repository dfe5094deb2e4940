package wire

import "testing"

func TestSliceBounds(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5}
	if s, ok := Slice(b, 1, 2); !ok || len(s) != 2 || s[0] != 2 {
		t.Fatalf("Slice(1,2) = %v, %v", s, ok)
	}
	if _, ok := Slice(b, 4, 2); ok {
		t.Fatal("expected out-of-bounds slice to fail")
	}
	if _, ok := Slice(b, -1, 1); ok {
		t.Fatal("expected negative offset to fail")
	}
}

func TestBigEndianRoundTrip(t *testing.T) {
	var buf []byte
	buf = PutU16BE(buf, 0xBEEF)
	buf = PutU32BE(buf, 0xDEADBEEF)
	buf = PutU64BE(buf, 0x0102030405060708)

	if got := U16BE(buf[0:2]); got != 0xBEEF {
		t.Fatalf("U16BE = %x", got)
	}
	if got := U32BE(buf[2:6]); got != 0xDEADBEEF {
		t.Fatalf("U32BE = %x", got)
	}
	if got := U64BE(buf[6:14]); got != 0x0102030405060708 {
		t.Fatalf("U64BE = %x", got)
	}
}

func TestShortReadsReturnZero(t *testing.T) {
	if U16BE(nil) != 0 || U32BE([]byte{1}) != 0 || U64BE([]byte{1, 2}) != 0 {
		t.Fatal("expected zero on short reads")
	}
}
