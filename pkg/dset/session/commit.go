package session

import (
	"github.com/cbdog94/dset/internal/attr"
	"github.com/cbdog94/dset/internal/wire"
)

// Commit flushes any buffered restore-mode ADD/DEL aggregation, the way
// the command driver does at a COMMIT sentinel or end of input. Calling
// it with nothing buffered is a no-op.
func (s *Session) Commit() error {
	return s.commit()
}

// commit closes every open nested group, hands the buffer to the
// transport, resets the aggregation state, and dispatches the reply
// stream, per SPEC_FULL.md §4.4 ("commit() closes every open nested
// group in reverse order, hands the buffer to the transport's query,
// resets the saved-setname and nest stack, and zeros the message
// length").
func (s *Session) commit() error {
	if s.enc.Len() == 0 {
		return nil
	}
	if err := s.enc.CloseAll(); err != nil {
		return s.Err("internal error: %v", err)
	}

	req := make([]byte, 0, wire.HeaderSize+s.enc.Len())
	req = append(req, s.hdr[:]...)
	req = append(req, s.enc.Bytes()...)
	reply, err := s.transport.Query(req)

	s.savedSetname = ""
	s.printedSet = false
	s.enc.Reset()

	if err != nil {
		return s.Err("internal protocol error: %v", err)
	}
	return s.dispatchStream(reply)
}

// dispatchStream decodes reply and every further frame Recv returns,
// until a DONE frame or a terminal ACK/ERROR frame ends the exchange.
func (s *Session) dispatchStream(first []byte) error {
	frame := first
	for {
		stop, err := s.dispatchOne(frame)
		if err != nil || stop {
			return err
		}
		frame, err = s.transport.Recv()
		if err != nil {
			return s.Err("internal protocol error: %v", err)
		}
	}
}

// dispatchOne decodes and acts on a single reply frame, returning whether
// the exchange is now complete.
func (s *Session) dispatchOne(frame []byte) (stop bool, err error) {
	h, err := wire.DecodeHeader(frame)
	if err != nil {
		return true, s.Err("broken kernel message: %v", err)
	}
	payload := frame[wire.HeaderSize:]

	switch h.MsgType {
	case wire.NLMSGNoop, wire.NLMSGOverrun:
		return false, nil
	case wire.NLMSGDone:
		s.finalizeDump()
		return true, nil
	case wire.NLMSGError:
		return true, s.dispatchError(payload)
	default:
		cmd, ok := h.Command()
		if !ok {
			return true, s.Err("broken kernel message: unrecognized message type")
		}
		return s.dispatchData(cmd, payload)
	}
}

// dispatchError decodes an embedded command + error code and reports it,
// applying the ACK cache side-effects on a zero code.
func (s *Session) dispatchError(payload []byte) error {
	raws, err := attr.Parse(payload)
	if err != nil {
		return s.Err("broken error report message: %v", err)
	}
	var origCmd wire.Command
	var code uint32
	var lineno uint32
	for _, r := range raws {
		switch r.Tag {
		case tagErrcmd:
			if len(r.Payload) == 1 {
				origCmd = wire.Command(r.Payload[0])
			}
		case tagErrcode:
			if len(r.Payload) == 4 {
				code = be32(r.Payload)
			}
		case tagLineno:
			if len(r.Payload) == 4 {
				lineno = be32(r.Payload)
			}
		}
	}
	if lineno != 0 {
		s.lineno = lineno
	}
	if code == 0 {
		return s.handleACK(origCmd)
	}
	return s.handleErrcode(origCmd, code)
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
