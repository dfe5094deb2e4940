package print

import (
	"strings"
	"testing"

	"github.com/cbdog94/dset/pkg/dset/data"
	"github.com/cbdog94/dset/pkg/dset/types"
)

func TestNumberTriesEachWidth(t *testing.T) {
	blob := data.New()
	blob.SetU32(data.OptHashsize, 1024)
	buf := NewBuffer(64)
	if err := Number(buf, blob, data.OptHashsize); err != nil {
		t.Fatalf("Number: %v", err)
	}
	if buf.String() != "1024" {
		t.Fatalf("got %q, want 1024", buf.String())
	}
}

func TestNameWithBeforeReference(t *testing.T) {
	blob := data.New()
	blob.SetString(data.OptName, "a")
	blob.SetString(data.OptNameref, "b")
	blob.SetU8(data.OptBefore, 1)
	buf := NewBuffer(128)
	if err := Name(buf, blob); err != nil {
		t.Fatalf("Name: %v", err)
	}
	if buf.String() != "a before b" {
		t.Fatalf("got %q, want %q", buf.String(), "a before b")
	}
}

func TestSkbmarkRoundTrip(t *testing.T) {
	blob := data.New()
	blob.SetU64(data.OptSkbmark, (uint64(0x11)<<32)|0xff)
	buf := NewBuffer(64)
	if err := Skbmark(buf, blob); err != nil {
		t.Fatalf("Skbmark: %v", err)
	}
	if buf.String() != "0x11/0xff" {
		t.Fatalf("got %q, want 0x11/0xff", buf.String())
	}
}

func TestSkbmarkDefaultMaskOmitsSlash(t *testing.T) {
	blob := data.New()
	blob.SetU64(data.OptSkbmark, (uint64(0x11)<<32)|0xffffffff)
	buf := NewBuffer(64)
	if err := Skbmark(buf, blob); err != nil {
		t.Fatalf("Skbmark: %v", err)
	}
	if buf.String() != "0x11" {
		t.Fatalf("got %q, want 0x11", buf.String())
	}
}

func TestSkbprio(t *testing.T) {
	blob := data.New()
	blob.SetU32(data.OptSkbprio, (1<<16)|2)
	buf := NewBuffer(64)
	if err := Skbprio(buf, blob); err != nil {
		t.Fatalf("Skbprio: %v", err)
	}
	if buf.String() != "1:2" {
		t.Fatalf("got %q, want 1:2", buf.String())
	}
}

func TestCommentIsQuoted(t *testing.T) {
	blob := data.New()
	blob.SetString(data.OptAdtComment, "hello")
	buf := NewBuffer(64)
	if err := Comment(buf, blob); err != nil {
		t.Fatalf("Comment: %v", err)
	}
	if buf.String() != `"hello"` {
		t.Fatalf("got %q, want %q", buf.String(), `"hello"`)
	}
}

func TestElemSingleDimension(t *testing.T) {
	blob := data.New()
	blob.SetAny(data.OptType, types.HashDomain)
	blob.SetString(data.OptDomain, "example.com")
	buf := NewBuffer(64)
	if err := Elem(buf, blob); err != nil {
		t.Fatalf("Elem: %v", err)
	}
	if buf.String() != "example.com" {
		t.Fatalf("got %q, want example.com", buf.String())
	}
}

func TestBufferOverflow(t *testing.T) {
	buf := NewBuffer(4)
	if err := buf.Printf("12345"); err != ErrOverflow {
		t.Fatalf("got %v, want ErrOverflow", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("Len() = %d after overflow, want 0 (no partial write)", buf.Len())
	}
}

func TestDataDispatch(t *testing.T) {
	blob := data.New()
	blob.SetString(data.OptDomain, "example.com")
	buf := NewBuffer(64)
	if err := Data(buf, blob, data.OptDomain); err != nil {
		t.Fatalf("Data: %v", err)
	}
	if !strings.Contains(buf.String(), "example.com") {
		t.Fatalf("got %q", buf.String())
	}
}
