package attr

import "github.com/cbdog94/dset/pkg/dset/data"

// EncodeOpt encodes the blob's value for entry.Opt as tag, using enc. It
// returns ErrBufferFull unmodified so the caller (session.commit driver)
// can force an intermediate commit and retry, per spec.md §4.3.
func EncodeOpt(enc *Encoder, blob *data.Blob, tag Tag, entry PolicyEntry) error {
	switch entry.Type {
	case TypeU8:
		v, _ := blob.GetU8(entry.Opt)
		return enc.PutScalar(tag, TypeU8, uint64(v))
	case TypeU16:
		v, _ := blob.GetU32(entry.Opt)
		return enc.PutScalar(tag, TypeU16, uint64(uint16(v)))
	case TypeU32:
		v, _ := blob.GetU32(entry.Opt)
		return enc.PutScalar(tag, TypeU32, uint64(v))
	case TypeU64:
		v, _ := blob.GetU64(entry.Opt)
		return enc.PutScalar(tag, TypeU64, v)
	case TypeString:
		v, _ := blob.GetString(entry.Opt)
		return enc.PutString(tag, v, entry.MaxLen)
	default:
		return ErrBadLength
	}
}

// DecodeOpt validates raw against entry's wire type and length, then writes
// the decoded value through to blob. Scalars carrying the network-byte-
// order marker are already big-endian on the wire (Parse does not swap);
// DecodeOpt simply interprets the bytes as big-endian regardless of the
// marker, matching the encoder's unconditional big-endian policy, and
// rejects a scalar that arrived without the marker it is required to carry.
func DecodeOpt(raw Raw, entry PolicyEntry, blob *data.Blob) error {
	switch entry.Type {
	case TypeU8:
		if len(raw.Payload) != 1 {
			return ErrBadLength
		}
		blob.SetU8(entry.Opt, raw.Payload[0])
	case TypeU16:
		if len(raw.Payload) != 2 || !raw.NetOrder {
			return ErrBadLength
		}
		v := uint16(raw.Payload[0])<<8 | uint16(raw.Payload[1])
		blob.SetU32(entry.Opt, uint32(v))
	case TypeU32:
		if len(raw.Payload) != 4 || !raw.NetOrder {
			return ErrBadLength
		}
		v := uint32(raw.Payload[0])<<24 | uint32(raw.Payload[1])<<16 | uint32(raw.Payload[2])<<8 | uint32(raw.Payload[3])
		blob.SetU32(entry.Opt, v)
	case TypeU64:
		if len(raw.Payload) != 8 || !raw.NetOrder {
			return ErrBadLength
		}
		var v uint64
		for _, b := range raw.Payload {
			v = v<<8 | uint64(b)
		}
		blob.SetU64(entry.Opt, v)
	case TypeString:
		if len(raw.Payload) == 0 {
			return ErrStringNotTerminated
		}
		if entry.MaxLen > 0 && len(raw.Payload) > entry.MaxLen+1 {
			return ErrBadLength
		}
		if raw.Payload[len(raw.Payload)-1] != 0 {
			return ErrStringNotTerminated
		}
		blob.SetString(entry.Opt, string(raw.Payload[:len(raw.Payload)-1]))
	default:
		return ErrBadLength
	}
	return nil
}

// DecodeAll decodes every raw attribute against policy, failing the whole
// message if any tag is unknown/out of range (spec.md §4.3).
func DecodeAll(raws []Raw, policy Policy, blob *data.Blob) error {
	for _, r := range raws {
		entry, ok := policy[r.Tag]
		if !ok {
			return ErrUnknownTag
		}
		if err := DecodeOpt(r, entry, blob); err != nil {
			return err
		}
	}
	return nil
}
