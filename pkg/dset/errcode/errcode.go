// Package errcode translates a kernel-reported numeric error code plus the
// command that provoked it into the human-readable message the session
// reports to the user. A small core table covers codes common to every
// set type; a second, type-specific table is consulted first for codes in
// the type-specific range, with the core table as its fallback.
package errcode

import (
	"fmt"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/cbdog94/dset/internal/wire"
)

// Code is a kernel-reported error number. POSIX errno values (ENOENT,
// EEXIST, EMSGSIZE, ...) and this protocol's own private codes share the
// same numbering space, distinguished by the ranges below.
type Code int

// Private error code ranges. The wire protocol reserves a block of
// private codes above the POSIX errno range for its own errors, and a
// further sub-block within that for codes whose meaning depends on which
// set type produced them (e.g. a hash table being full only makes sense
// for hash:* types).
const (
	Private      Code = 4096
	TypeSpecific Code = Private + 256
)

// Core protocol-level private codes.
const (
	ErrProtocol Code = Private + iota
	ErrFindType
	ErrMaxSets
	ErrBusy
	ErrExistSetname2
	ErrReferenced
	ErrTypeMismatch
	ErrExist
	ErrInvalidFamily
	ErrTimeout
	ErrCounter
	ErrComment
	ErrSkbinfo
)

// Hash-family private codes, numbered from TypeSpecific.
const (
	ErrHashFull Code = TypeSpecific + iota
	ErrHashElem
	ErrInvalidProto
	ErrMissingProto
	ErrHashRangeUnsupported
	ErrHashRange
)

// entry is one row of an error table: the code, the command it applies to
// (wire.CmdNone meaning "any command"), and the message to report.
type entry struct {
	code    Code
	cmd     wire.Command
	message string
}

// coreTable mirrors core_errcode_table: generic codes plus the
// command-specific ones for CREATE/DESTROY/RENAME/SWAP/ADD/DEL/TYPE.
var coreTable = []entry{
	{code: Code(unix.ENOENT), cmd: wire.CmdNone, message: "The set with the given name does not exist"},
	{code: Code(unix.EMSGSIZE), cmd: wire.CmdNone, message: "Kernel error received: message could not be created"},
	{code: ErrProtocol, cmd: wire.CmdNone, message: "Kernel error received: protocol error"},

	{code: Code(unix.EEXIST), cmd: wire.CmdCreate, message: "Set cannot be created: set with the same name already exists"},
	{code: ErrFindType, cmd: wire.CmdNone, message: "Kernel error received: set type not supported"},
	{code: ErrMaxSets, cmd: wire.CmdNone, message: "Kernel error received: maximal number of sets reached, cannot create more."},
	{code: ErrInvalidFamily, cmd: wire.CmdNone, message: "Protocol family not supported by the set type"},

	{code: ErrBusy, cmd: wire.CmdDestroy, message: "Set cannot be destroyed: it is in use by a kernel component"},

	{code: ErrExistSetname2, cmd: wire.CmdRename, message: "Set cannot be renamed: a set with the new name already exists"},
	{code: ErrReferenced, cmd: wire.CmdRename, message: "Set cannot be renamed: it is in use by another system"},

	{code: ErrExistSetname2, cmd: wire.CmdSwap, message: "Sets cannot be swapped: the second set does not exist"},
	{code: ErrTypeMismatch, cmd: wire.CmdSwap, message: "The sets cannot be swapped: their type does not match"},

	{code: ErrTimeout, cmd: wire.CmdNone, message: "Timeout cannot be used: set was created without timeout support"},
	{code: ErrCounter, cmd: wire.CmdNone, message: "Packet/byte counters cannot be used: set was created without counter support"},
	{code: ErrComment, cmd: wire.CmdNone, message: "Comment cannot be used: set was created without comment support"},
	{code: ErrSkbinfo, cmd: wire.CmdNone, message: "Skbinfo mapping cannot be used: set was created without skbinfo support"},

	{code: ErrExist, cmd: wire.CmdAdd, message: "Element cannot be added to the set: it's already added"},
	{code: ErrExist, cmd: wire.CmdDel, message: "Element cannot be deleted from the set: it's not added"},

	{code: Code(unix.EEXIST), cmd: wire.CmdType, message: "Kernel error received: set type does not supported"},
}

// hashTable mirrors hash_errcode_table: codes specific to hash:* types.
var hashTable = []entry{
	{code: ErrHashFull, cmd: wire.CmdNone, message: "Hash is full, cannot add more elements"},
	{code: ErrHashElem, cmd: wire.CmdNone, message: "Null-valued element, cannot be stored in a hash type of set"},
	{code: ErrInvalidProto, cmd: wire.CmdNone, message: "Invalid protocol specified"},
	{code: ErrMissingProto, cmd: wire.CmdNone, message: "Protocol missing, but must be specified"},
	{code: ErrHashRangeUnsupported, cmd: wire.CmdNone, message: "Range is not supported in the \"net\" component of the element"},
	{code: ErrHashRange, cmd: wire.CmdNone, message: "Invalid range, covers the whole address space"},
}

func lookup(table []entry, code Code, cmd wire.Command) (string, bool) {
	generic := -1
	for i, e := range table {
		if e.code != code {
			continue
		}
		if e.cmd == cmd {
			return e.message, true
		}
		if e.cmd == wire.CmdNone {
			generic = i
		}
	}
	if generic >= 0 {
		return table[generic].message, true
	}
	return "", false
}

// Translate turns code, reported in response to cmd while the session's
// active type was named typeName, into a human-readable message. Codes at
// or above TypeSpecific are first looked up in the table for typeName's
// family (currently only "hash:*" has one); any miss falls back to the
// core table, and a code the core table doesn't know either becomes a
// generic "kernel error" or "undecoded error" message.
func Translate(code Code, cmd wire.Command, typeName string) string {
	table := coreTable
	usingHash := code >= TypeSpecific && strings.HasPrefix(typeName, "hash:")
	if usingHash {
		table = hashTable
	}

	if msg, ok := lookup(table, code, cmd); ok {
		return msg
	}
	if usingHash {
		if msg, ok := lookup(coreTable, code, cmd); ok {
			return msg
		}
	}
	if code < Private {
		return fmt.Sprintf("Kernel error received: %s", unix.Errno(code).Error())
	}
	return fmt.Sprintf("Undecoded error %d received from kernel", code)
}
