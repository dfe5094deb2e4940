package wire

import (
	"encoding/binary"
	"fmt"
)

// Header is the fixed generic message header shared by every request and
// response: family, version, a reserved resource id, the packed message
// type (command + subsystem selector) and a trailing reserved field; it
// carries no sequence number. Layout (16-bit fields big-endian; attribute
// payloads carry their own byte-order marker per attribute, see
// internal/attr):
//
//	0   1              2            4          6          8
//	+---+--------------+------------+----------+----------+
//	|fam|   version    |   res id   | msg type | reserved |
//	+---+--------------+------------+----------+----------+
type Header struct {
	Family   uint8
	Version  uint8
	ResID    uint16
	MsgType  uint16
	Reserved uint16
}

// Encode writes h into buf[:HeaderSize]. buf must have length >= HeaderSize.
func (h Header) Encode(buf []byte) error {
	if len(buf) < HeaderSize {
		return fmt.Errorf("wire: header buffer too small (have %d, need %d)", len(buf), HeaderSize)
	}
	buf[0] = h.Family
	buf[1] = h.Version
	binary.BigEndian.PutUint16(buf[2:4], h.ResID)
	binary.BigEndian.PutUint16(buf[4:6], h.MsgType)
	binary.BigEndian.PutUint16(buf[6:8], h.Reserved)
	return nil
}

// DecodeHeader reads a Header from the front of buf.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("wire: %w (have %d, need %d)", ErrTruncated, len(buf), HeaderSize)
	}
	return Header{
		Family:   buf[0],
		Version:  buf[1],
		ResID:    binary.BigEndian.Uint16(buf[2:4]),
		MsgType:  binary.BigEndian.Uint16(buf[4:6]),
		Reserved: binary.BigEndian.Uint16(buf[6:8]),
	}, nil
}

// Command extracts and validates the command carried by the header's
// message type field.
func (h Header) Command() (Command, bool) {
	return SplitMessageType(h.MsgType)
}
