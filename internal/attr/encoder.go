package attr

import (
	"encoding/binary"

	"github.com/cbdog94/dset/internal/wire"
)

// MaxErrorTrailer is the maximum size an ERROR message's sub-header and
// translated message could occupy if the kernel rejects the request this
// encoder is building. Encode refuses to grow the buffer past
// budget-MaxErrorTrailer so there is always room left for that reply, per
// spec.md §4.3 ("refuses to emit when the current message plus the
// attribute plus the maximum possible error trailer would exceed the send
// buffer").
const MaxErrorTrailer = 1024

// Encoder builds a sequence of attributes into a fixed-capacity buffer,
// tracking a depth-bounded stack of open nested groups.
type Encoder struct {
	buf     []byte
	budget  int
	reserve int
	nest    []int
}

// NewEncoder wraps buf (whose capacity is the full message budget,
// typically one page) for incremental attribute construction. reserve
// bytes are always kept free for a trailing error reply.
func NewEncoder(buf []byte, reserve int) *Encoder {
	return &Encoder{buf: buf[:0], budget: cap(buf), reserve: reserve}
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int { return len(e.buf) }

// Bytes returns the encoded attribute stream.
func (e *Encoder) Bytes() []byte { return e.buf }

// Reset empties the encoder and closes any open nested groups, ready for a
// new message.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
	e.nest = e.nest[:0]
}

// Depth reports how many nested groups are currently open.
func (e *Encoder) Depth() int { return len(e.nest) }

func (e *Encoder) fits(n int) bool {
	return len(e.buf)+n+e.reserve <= e.budget
}

func (e *Encoder) putHeader(length int, nlaType uint16) {
	var hdr [wire.NLAHeaderLen]byte
	binary.BigEndian.PutUint16(hdr[0:2], uint16(length))
	binary.BigEndian.PutUint16(hdr[2:4], nlaType)
	e.buf = append(e.buf, hdr[:]...)
}

func (e *Encoder) padTo(alignedLen int) {
	for len(e.buf) < alignedLen {
		e.buf = append(e.buf, 0)
	}
}

// PutScalar appends a fixed-width scalar attribute. Multi-byte values are
// always stored big-endian with the network-byte-order marker bit set in
// the type field (spec.md §4.3); a single byte needs neither.
func (e *Encoder) PutScalar(tag Tag, wt WireType, v uint64) error {
	size := wireSize(wt)
	if size < 0 {
		return ErrBadLength
	}
	total := wire.Align(wire.NLAHeaderLen + size)
	if !e.fits(total) {
		return ErrBufferFull
	}
	nlaType := uint16(tag)
	if size > 1 {
		nlaType |= wire.NLAFNetByteorder
	}
	start := len(e.buf)
	e.putHeader(wire.NLAHeaderLen+size, nlaType)
	switch wt {
	case TypeU8:
		e.buf = append(e.buf, byte(v))
	case TypeU16:
		e.buf = wire.PutU16BE(e.buf, uint16(v))
	case TypeU32:
		e.buf = wire.PutU32BE(e.buf, uint32(v))
	case TypeU64:
		e.buf = wire.PutU64BE(e.buf, v)
	}
	e.padTo(start + total)
	return nil
}

// PutString appends a NUL-terminated string attribute. maxLen, if nonzero,
// bounds len(s) (not counting the NUL).
func (e *Encoder) PutString(tag Tag, s string, maxLen int) error {
	if maxLen > 0 && len(s) > maxLen {
		return ErrBadLength
	}
	payloadLen := len(s) + 1
	total := wire.Align(wire.NLAHeaderLen + payloadLen)
	if !e.fits(total) {
		return ErrBufferFull
	}
	start := len(e.buf)
	e.putHeader(wire.NLAHeaderLen+payloadLen, uint16(tag))
	e.buf = append(e.buf, s...)
	e.buf = append(e.buf, 0)
	e.padTo(start + total)
	return nil
}

// OpenNested starts a nested attribute group, pushing its header offset so
// CloseNested can patch in the final length later. Fails if the depth-4
// stack is already full or the header itself would not fit.
func (e *Encoder) OpenNested(tag Tag) error {
	if len(e.nest) >= wire.MaxNestDepth {
		return ErrNestOverflow
	}
	if !e.fits(wire.NLAHeaderLen) {
		return ErrBufferFull
	}
	offset := len(e.buf)
	e.putHeader(0, uint16(tag)|wire.NLAFNested)
	e.nest = append(e.nest, offset)
	return nil
}

// CloseNested patches the most recently opened nested group's length field
// with its final size and pads it to the alignment boundary.
func (e *Encoder) CloseNested() error {
	if len(e.nest) == 0 {
		return ErrNestUnderflow
	}
	offset := e.nest[len(e.nest)-1]
	e.nest = e.nest[:len(e.nest)-1]
	length := len(e.buf) - offset
	binary.BigEndian.PutUint16(e.buf[offset:offset+2], uint16(length))
	e.padTo(wire.Align(len(e.buf)))
	return nil
}

// CloseAll closes every open nested group in reverse (innermost-first)
// order, as commit() does before handing the buffer to the transport.
func (e *Encoder) CloseAll() error {
	for len(e.nest) > 0 {
		if err := e.CloseNested(); err != nil {
			return err
		}
	}
	return nil
}

// CancelNested truncates the buffer back to the start of the most recently
// opened nested group and discards it, used when a nested group overflows
// the buffer mid-construction (spec.md §4.3/§4.4).
func (e *Encoder) CancelNested() error {
	if len(e.nest) == 0 {
		return ErrNestUnderflow
	}
	offset := e.nest[len(e.nest)-1]
	e.nest = e.nest[:len(e.nest)-1]
	e.buf = e.buf[:offset]
	return nil
}
