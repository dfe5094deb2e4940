package parse

import (
	"errors"
	"testing"

	"github.com/cbdog94/dset/pkg/dset/data"
	"github.com/cbdog94/dset/pkg/dset/types"
)

func TestNumberParsers(t *testing.T) {
	blob := data.New()
	if err := Uint32(blob, data.OptHashsize, "1024"); err != nil {
		t.Fatalf("Uint32: %v", err)
	}
	if v, _ := blob.GetU32(data.OptHashsize); v != 1024 {
		t.Fatalf("GetU32 = %d, want 1024", v)
	}
	if err := Uint32(blob, data.OptHashsize, "not-a-number"); !errors.Is(err, ErrSyntax) {
		t.Fatalf("got %v, want ErrSyntax", err)
	}
}

func TestTimeoutBounds(t *testing.T) {
	blob := data.New()
	if err := Timeout(blob, data.OptTimeout, "3600"); err != nil {
		t.Fatalf("Timeout: %v", err)
	}
	if v, _ := blob.GetU32(data.OptTimeout); v != 3600 {
		t.Fatalf("GetU32 = %d, want 3600", v)
	}
	if err := Timeout(blob, data.OptTimeout, "99999999999"); err == nil {
		t.Fatal("expected out-of-range timeout to fail")
	}
}

func TestSetnameLengthLimit(t *testing.T) {
	blob := data.New()
	long := make([]byte, MaxNameLen)
	for i := range long {
		long[i] = 'a'
	}
	if err := Setname(blob, data.OptSetname, string(long)); err == nil {
		t.Fatal("expected overlong setname to be rejected")
	}
	if err := Setname(blob, data.OptSetname, "myset"); err != nil {
		t.Fatalf("Setname: %v", err)
	}
}

func TestNameCompatSimple(t *testing.T) {
	blob := data.New()
	if err := NameCompat(blob, "myset"); err != nil {
		t.Fatalf("NameCompat: %v", err)
	}
	if v, _ := blob.GetString(data.OptName); v != "myset" {
		t.Fatalf("GetString(OptName) = %q", v)
	}
	if blob.Test(data.OptNameref) {
		t.Fatal("did not expect OptNameref to be set")
	}
}

func TestNameCompatBeforeAfter(t *testing.T) {
	blob := data.New()
	if err := NameCompat(blob, "a,before,b"); err != nil {
		t.Fatalf("NameCompat: %v", err)
	}
	if v, _ := blob.GetString(data.OptName); v != "a" {
		t.Fatalf("GetString(OptName) = %q, want a", v)
	}
	if v, _ := blob.GetString(data.OptNameref); v != "b" {
		t.Fatalf("GetString(OptNameref) = %q, want b", v)
	}
	if err := NameCompat(blob, "a,sideways,b"); err == nil {
		t.Fatal("expected invalid before/after keyword to fail")
	}
}

func TestCommentRejectsQuote(t *testing.T) {
	blob := data.New()
	if err := Comment(blob, `has "quote"`); err == nil {
		t.Fatal("expected quoted comment to be rejected")
	}
}

func TestCommentNormalizesNFC(t *testing.T) {
	blob := data.New()
	decomposed := "é" // "é" as e + combining acute
	if err := Comment(blob, decomposed); err != nil {
		t.Fatalf("Comment: %v", err)
	}
	v, _ := blob.GetString(data.OptAdtComment)
	if v != "é" {
		t.Fatalf("GetString = %q, want precomposed é", v)
	}
}

func TestSkbmarkWithMask(t *testing.T) {
	blob := data.New()
	if err := Skbmark(blob, "0x11/0xff"); err != nil {
		t.Fatalf("Skbmark: %v", err)
	}
	v, _ := blob.GetU64(data.OptSkbmark)
	want := (uint64(0x11) << 32) | 0xff
	if v != want {
		t.Fatalf("GetU64 = %#x, want %#x", v, want)
	}
}

func TestSkbmarkWithoutMask(t *testing.T) {
	blob := data.New()
	if err := Skbmark(blob, "0x11"); err != nil {
		t.Fatalf("Skbmark: %v", err)
	}
	v, _ := blob.GetU64(data.OptSkbmark)
	want := (uint64(0x11) << 32) | 0xffffffff
	if v != want {
		t.Fatalf("GetU64 = %#x, want %#x", v, want)
	}
}

func TestSkbprio(t *testing.T) {
	blob := data.New()
	if err := Skbprio(blob, "1:2"); err != nil {
		t.Fatalf("Skbprio: %v", err)
	}
	v, _ := blob.GetU32(data.OptSkbprio)
	if v != (1<<16)|2 {
		t.Fatalf("GetU32 = %#x, want %#x", v, (1<<16)|2)
	}
	if err := Skbprio(blob, "garbage"); err == nil {
		t.Fatal("expected malformed skbprio to fail")
	}
}

func TestIgnoredWarnsOnce(t *testing.T) {
	blob := data.New()
	if Ignored(blob, data.OptProbes) {
		t.Fatal("first Ignored call should report not-yet-warned")
	}
	if !Ignored(blob, data.OptProbes) {
		t.Fatal("second Ignored call should report already-warned")
	}
}

func TestTypenameResolvesAlias(t *testing.T) {
	reg := types.NewRegistry()
	types.RegisterBuiltins(reg)
	blob := data.New()
	if err := Typename(blob, reg, types.FamilyUnspec, "dhash"); err != nil {
		t.Fatalf("Typename: %v", err)
	}
	if v, _ := blob.GetString(data.OptTypename); v != "hash:domain" {
		t.Fatalf("GetString(OptTypename) = %q, want hash:domain", v)
	}
	if _, ok := blob.GetAny(data.OptType); !ok {
		t.Fatal("expected OptType to be populated")
	}
}

func TestTypenameUnknown(t *testing.T) {
	reg := types.NewRegistry()
	types.RegisterBuiltins(reg)
	blob := data.New()
	if err := Typename(blob, reg, types.FamilyUnspec, "nope:nope"); err == nil {
		t.Fatal("expected unknown type name to fail")
	}
}

func TestElemSingleDimension(t *testing.T) {
	blob := data.New()
	if err := Elem(blob, types.HashDomain, false, "example.com"); err != nil {
		t.Fatalf("Elem: %v", err)
	}
	if v, _ := blob.GetString(data.OptDomain); v != "example.com" {
		t.Fatalf("GetString(OptDomain) = %q", v)
	}
}

func TestElemTooManyParts(t *testing.T) {
	blob := data.New()
	if err := Elem(blob, types.HashDomain, false, "a,b"); err == nil {
		t.Fatal("expected extra element part to be rejected")
	}
}
