// Package attr implements the attribute codec (component C2): translating
// between a data.Blob's typed fields and the length-value-tagged attributes
// carried on the wire. Three policy tables — command-level, create-time and
// add/delete-time — drive both directions so the same table can validate
// what is legal to encode and what is legal to accept.
package attr

import (
	"errors"

	"github.com/cbdog94/dset/internal/wire"
	"github.com/cbdog94/dset/pkg/dset/data"
)

// WireType identifies how an attribute's payload is laid out on the wire.
type WireType uint8

const (
	TypeUnspec WireType = iota
	TypeU8
	TypeU16
	TypeU32
	TypeU64
	TypeString // NUL-terminated
	TypeNested
)

// Tag is the on-wire attribute identifier (without the nested/byteorder
// marker bits — those live only in the encoded type field).
type Tag uint16

// PolicyEntry describes one attribute tag: its wire type, an optional
// maximum payload length (used for NUL-strings), and the data.Opt it binds
// to in the blob.
type PolicyEntry struct {
	Type   WireType
	MaxLen int // 0 means "no explicit bound beyond the wire type's own size"
	Opt    data.Opt
}

// Policy maps attribute tags to their PolicyEntry. DecodeAll rejects a tag
// that has no entry in the map with ErrUnknownTag.
type Policy map[Tag]PolicyEntry

var (
	// ErrBufferFull signals the codec could not fit the attribute (plus the
	// maximum possible error trailer) into the remaining buffer budget; the
	// driver must force an intermediate commit and retry.
	ErrBufferFull = wire.ErrBufferFull
	// ErrUnknownTag is returned by Decode for a tag outside the policy table.
	ErrUnknownTag = errors.New("attr: unknown attribute tag")
	// ErrBadLength is returned when a payload's length does not match what
	// its wire type requires.
	ErrBadLength = errors.New("attr: payload length mismatch")
	// ErrStringNotTerminated is returned when a string payload lacks its
	// trailing NUL within the declared length.
	ErrStringNotTerminated = errors.New("attr: string not NUL-terminated")
	// ErrNestOverflow signals the nested-attribute stack hit MaxNestDepth.
	ErrNestOverflow = errors.New("attr: nested attribute stack overflow")
	// ErrNestUnderflow signals a pop/cancel with no open nested group.
	ErrNestUnderflow = errors.New("attr: no open nested attribute group")
)

// wireSize returns the fixed payload size for scalar wire types, or -1 for
// variable-length types (String, Nested) whose size must be computed by
// the caller.
func wireSize(t WireType) int {
	switch t {
	case TypeU8:
		return 1
	case TypeU16:
		return 2
	case TypeU32:
		return 4
	case TypeU64:
		return 8
	default:
		return -1
	}
}
