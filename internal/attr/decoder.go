package attr

import (
	"encoding/binary"

	"github.com/cbdog94/dset/internal/wire"
)

// Raw is one decoded attribute before policy validation: its tag with the
// marker bits stripped, whether those markers were present, and its
// payload slice (still inside the parent buffer — callers must not retain
// it past the buffer's lifetime without copying).
type Raw struct {
	Tag      Tag
	NetOrder bool
	Nested   bool
	Payload  []byte
}

// Parse walks a flat attribute stream (no nested groups expanded) and
// returns each top-level attribute in order.
func Parse(buf []byte) ([]Raw, error) {
	var out []Raw
	for len(buf) > 0 {
		if len(buf) < wire.NLAHeaderLen {
			return nil, wire.ErrTruncated
		}
		length := binary.BigEndian.Uint16(buf[0:2])
		nlaType := binary.BigEndian.Uint16(buf[2:4])
		if int(length) < wire.NLAHeaderLen {
			return nil, ErrBadLength
		}
		if !wire.Has(buf, 0, int(length)) {
			return nil, wire.ErrTruncated
		}
		payload := buf[wire.NLAHeaderLen:length]
		out = append(out, Raw{
			Tag:      Tag(nlaType & wire.NLATypeMask),
			NetOrder: nlaType&wire.NLAFNetByteorder != 0,
			Nested:   nlaType&wire.NLAFNested != 0,
			Payload:  payload,
		})
		adv := wire.Align(int(length))
		if adv == 0 || adv > len(buf) {
			break
		}
		buf = buf[adv:]
	}
	return out, nil
}

// ParseNested is Parse applied to a nested group's own payload (i.e. the
// bytes after its own header have already been stripped by the caller).
func ParseNested(r Raw) ([]Raw, error) {
	if !r.Nested {
		return nil, ErrBadLength
	}
	return Parse(r.Payload)
}
