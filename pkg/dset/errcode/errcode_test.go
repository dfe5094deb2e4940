package errcode

import (
	"testing"

	"golang.org/x/sys/unix"

	"github.com/cbdog94/dset/internal/wire"
)

func TestTranslateCommandSpecific(t *testing.T) {
	got := Translate(Code(unix.EEXIST), wire.CmdCreate, "hash:domain")
	want := "Set cannot be created: set with the same name already exists"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTranslateSameCodeDifferentCommand(t *testing.T) {
	add := Translate(ErrExist, wire.CmdAdd, "hash:domain")
	del := Translate(ErrExist, wire.CmdDel, "hash:domain")
	if add == del {
		t.Fatalf("expected ADD and DEL messages for ErrExist to differ, both got %q", add)
	}
}

func TestTranslateGenericFallsBackAcrossCommands(t *testing.T) {
	got := Translate(ErrTimeout, wire.CmdAdd, "hash:domain")
	want := "Timeout cannot be used: set was created without timeout support"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTranslateHashSpecificRoutesToHashTable(t *testing.T) {
	got := Translate(ErrHashFull, wire.CmdAdd, "hash:domain")
	want := "Hash is full, cannot add more elements"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTranslateHashCodeFallsBackToCoreForNonHashType(t *testing.T) {
	got := Translate(ErrHashFull, wire.CmdAdd, "list:set")
	want := "Undecoded error 4352 received from kernel"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTranslateGenericErrnoEntryMatchesAnyCommand(t *testing.T) {
	got := Translate(Code(unix.ENOENT), wire.CmdList, "hash:domain")
	want := "The set with the given name does not exist"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTranslateRawErrnoWithoutTableEntry(t *testing.T) {
	got := Translate(Code(unix.EPERM), wire.CmdList, "hash:domain")
	if got == "" {
		t.Fatal("expected a non-empty strerror-based message")
	}
}
