package session

import (
	"github.com/cbdog94/dset/internal/attr"
	"github.com/cbdog94/dset/internal/wire"
	"github.com/cbdog94/dset/pkg/dset/data"
)

// privateBufLen bounds the local stack-equivalent buffer private messages
// are assembled in, mirroring PRIVATE_MSG_BUFLEN.
const privateBufLen = 256

// sendPrivate assembles and sends a private (non-buffered, non-aggregated)
// message: the protocol handshake, or a HEADER/TYPE query. Its reply is
// consumed before the call returns, per SPEC_FULL.md §4.4 ("Private
// messages ... assembled in a local 256-byte stack buffer, sent
// synchronously, and their responses consumed before the function
// returns").
func (s *Session) sendPrivate(cmd wire.Command) error {
	var hdr [wire.HeaderSize]byte
	if err := s.transport.FillHeader(cmd, hdr[:]); err != nil {
		return s.Err("cannot open session to kernel: %v", err)
	}
	buf := make([]byte, 0, privateBufLen-wire.HeaderSize)
	enc := attr.NewEncoder(buf, 0)
	proto := s.protocol
	if cmd == wire.CmdProtocol {
		proto = protocolVersion
	}
	if err := enc.PutScalar(tagProtocol, attr.TypeU8, uint64(proto)); err != nil {
		return s.Err("internal error building private message: %v", err)
	}

	switch cmd {
	case wire.CmdProtocol:
	case wire.CmdHeader:
		if !s.data.Test(data.OptSetname) {
			return s.Err("invalid internal HEADER command: missing setname")
		}
		if err := attr.EncodeOpt(enc, s.data, tagSetname, cmdPolicy[tagSetname]); err != nil {
			return s.Err("internal error building HEADER message: %v", err)
		}
	case wire.CmdType:
		if !s.data.Test(data.OptTypename) {
			return s.Err("invalid internal TYPE command: missing settype")
		}
		if err := attr.EncodeOpt(enc, s.data, tagTypename, cmdPolicy[tagTypename]); err != nil {
			return s.Err("internal error building TYPE message: %v", err)
		}
		if err := enc.PutScalar(tagFamily, attr.TypeU8, 0); err != nil {
			return s.Err("internal error building TYPE message: %v", err)
		}
	default:
		return s.Err("internal error: unknown private command")
	}

	savedCmd := s.cmd
	s.cmd = cmd
	req := make([]byte, 0, wire.HeaderSize+enc.Len())
	req = append(req, hdr[:]...)
	req = append(req, enc.Bytes()...)
	reply, err := s.transport.Query(req)
	s.cmd = savedCmd
	if err != nil {
		return s.Err("internal protocol error: %v", err)
	}
	return s.dispatchStream(reply)
}

// Version runs the protocol handshake unconditionally and returns the
// negotiated protocol version, for the explicit "version" command — unlike
// checkProtocol's lazy, once-per-session, warning-suppressed call, this
// one lets a version mismatch warning reach the caller.
func (s *Session) Version() (uint8, error) {
	if err := s.sendPrivate(wire.CmdProtocol); err != nil {
		return 0, err
	}
	return s.protocol, nil
}

// checkProtocol runs the version handshake once per session, the first
// time any public command is issued.
func (s *Session) checkProtocol() error {
	if s.versionChecked {
		return nil
	}
	if err := s.sendPrivate(wire.CmdProtocol); err != nil {
		return err
	}
	if s.ReportType() == Warning {
		// Suppress the protocol warning for anything but an explicit
		// "version" command (cmd == CmdNone reaching here means the
		// caller only wanted the handshake run).
		s.ReportReset()
	}
	return nil
}

// handleProtocolReply records the kernel's negotiated protocol version,
// narrowing to the overlap between the kernel's supported window and
// this library's own, per SPEC_FULL.md §4.4.
func (s *Session) handleProtocolReply(raws []attr.Raw) error {
	s.versionChecked = true
	for _, r := range raws {
		if r.Tag == tagProtocol && len(r.Payload) == 1 {
			kernel := r.Payload[0]
			switch {
			case kernel == s.protocol:
				// exact match, nothing to do
			case kernel < s.protocol:
				s.protocol = kernel
				s.Warn("Kernel supports protocol version %d, adopting it.", kernel)
			default:
				s.Warn("Kernel supports a newer protocol version %d, staying at %d.", kernel, s.protocol)
			}
		}
	}
	return nil
}

// handleHeaderReply decodes a HEADER private reply's create-time fields
// into the session's data blob so the caller can render them.
func (s *Session) handleHeaderReply(raws []attr.Raw) error {
	for _, r := range raws {
		if r.Tag == tagData {
			nested, err := attr.ParseNested(r)
			if err != nil {
				return s.Err("broken HEADER message: %v", err)
			}
			return attr.DecodeAll(nested, createPolicy, s.data)
		}
	}
	return nil
}

// handleTypeReply decodes a TYPE private reply, validating it against
// what this process itself has registered for the name.
func (s *Session) handleTypeReply(raws []attr.Raw) error {
	var typeName string
	var revision, revisionMin, family uint8
	for _, r := range raws {
		switch r.Tag {
		case tagTypename:
			if len(r.Payload) > 0 {
				typeName = string(r.Payload[:len(r.Payload)-1])
			}
		case tagRevision:
			if len(r.Payload) == 1 {
				revision = r.Payload[0]
			}
		case tagRevisionMin:
			if len(r.Payload) == 1 {
				revisionMin = r.Payload[0]
			}
		case tagFamily:
			if len(r.Payload) == 1 {
				family = r.Payload[0]
			}
		}
	}
	_ = revisionMin
	_ = family
	if !s.Registry.CheckReceived(typeName, 0, 1) && revision != 0 {
		return s.Err("kernel reports unknown type %q", typeName)
	}
	return nil
}
