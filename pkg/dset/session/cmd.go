package session

import (
	"github.com/cbdog94/dset/internal/attr"
	"github.com/cbdog94/dset/internal/wire"
	"github.com/cbdog94/dset/pkg/dset/data"
	"github.com/cbdog94/dset/pkg/dset/types"
)

// tagMember is a structural (non-policy) nested-group tag wrapping one
// element's attributes inside the outer ADT group, so a restore-mode
// aggregation run can append further members without reopening ADT.
const tagMember attr.Tag = 1

// Cmd executes — or buffers, in restore mode — cmd. The data blob must
// already carry every field the command needs; it is cleared after the
// call for public commands, per SPEC_FULL.md §4.4/§4.5.
func (s *Session) Cmd(cmd wire.Command, lineno uint32) error {
	if cmd != wire.CmdNone && !cmd.Valid() {
		return ErrUnknownCommand
	}

	if err := s.checkProtocol(); err != nil {
		return err
	}
	if cmd == wire.CmdNone {
		return nil
	}

	if cmd == wire.CmdHeader || cmd == wire.CmdType {
		return s.sendPrivate(cmd)
	}

	aggregate := s.mayAggregateAD(cmd)
	if !aggregate {
		if err := s.commit(); err != nil {
			return err
		}
	}

	s.cmd = cmd
	s.lineno = lineno

	if cmd == wire.CmdList && s.mode == ModeNone {
		s.mode = ModePlain
	} else if cmd == wire.CmdSave && s.mode == ModeNone {
		s.mode = ModeSave
	}
	if (cmd == wire.CmdList || cmd == wire.CmdSave) && s.mode == ModeXML && !s.xmlRootOpen {
		s.outfn("<dsets>\n")
		s.xmlRootOpen = true
	}

	if err := s.buildMsg(aggregate); err == attr.ErrBufferFull {
		if cerr := s.commit(); cerr != nil {
			return cerr
		}
		if err := s.buildMsg(false); err != nil {
			s.data.Reset()
			return err
		}
	} else if err != nil {
		s.data.Reset()
		return err
	}

	if v, ok := s.data.GetAny(data.OptType); ok {
		s.savedType, _ = v.(*types.Descriptor)
	}

	if s.lineno != 0 && (cmd == wire.CmdAdd || cmd == wire.CmdDel) {
		s.savedSetname = s.data.Setname()
		s.data.Reset()
		return nil
	}

	err := s.commit()
	s.data.Reset()
	return err
}

func (s *Session) mayAggregateAD(cmd wire.Command) bool {
	return s.lineno != 0 &&
		(cmd == wire.CmdAdd || cmd == wire.CmdDel) &&
		cmd == s.cmd &&
		s.data.Setname() == s.savedSetname
}

// buildMsg appends cmd's attributes to the session's encoder, writing the
// generic header first if this is a fresh (empty) message.
func (s *Session) buildMsg(aggregate bool) error {
	if s.enc.Len() == 0 {
		aggregate = false
		if err := s.transport.FillHeader(s.cmd, s.hdr[:]); err != nil {
			return s.Err("internal error: %v", err)
		}
		if err := s.enc.PutScalar(tagProtocol, attr.TypeU8, uint64(s.protocol)); err != nil {
			return err
		}
	}

	switch s.cmd {
	case wire.CmdCreate:
		return s.buildCreate()
	case wire.CmdDestroy, wire.CmdFlush:
		return s.addSetnameIfPresent()
	case wire.CmdRename, wire.CmdSwap:
		return s.buildRenameSwap()
	case wire.CmdAdd, wire.CmdDel, wire.CmdTest:
		return s.buildADT(aggregate)
	case wire.CmdList, wire.CmdSave:
		return s.addSetnameIfPresent()
	default:
		return s.Err("internal error: unknown command %v", s.cmd)
	}
}

func (s *Session) addSetname() error {
	if !s.data.Test(data.OptSetname) {
		return s.Err("missing setname")
	}
	return attr.EncodeOpt(s.enc, s.data, tagSetname, cmdPolicy[tagSetname])
}

func (s *Session) addSetnameIfPresent() error {
	if !s.data.Test(data.OptSetname) {
		return nil
	}
	return attr.EncodeOpt(s.enc, s.data, tagSetname, cmdPolicy[tagSetname])
}

func (s *Session) buildRenameSwap() error {
	if !s.data.Test(data.OptSetname) || !s.data.Test(data.OptSetname2) {
		return s.Err("missing setname")
	}
	if err := attr.EncodeOpt(s.enc, s.data, tagSetname, cmdPolicy[tagSetname]); err != nil {
		return err
	}
	return attr.EncodeOpt(s.enc, s.data, tagSetname2, cmdPolicy[tagSetname2])
}

func (s *Session) buildCreate() error {
	if !s.data.Test(data.OptSetname) {
		return s.Err("invalid create command: missing setname")
	}
	v, ok := s.data.GetAny(data.OptType)
	if !ok {
		return s.Err("invalid create command: missing settype")
	}
	desc := v.(*types.Descriptor)

	if err := attr.EncodeOpt(s.enc, s.data, tagSetname, cmdPolicy[tagSetname]); err != nil {
		return err
	}
	if err := attr.EncodeOpt(s.enc, s.data, tagTypename, cmdPolicy[tagTypename]); err != nil {
		return err
	}
	if err := s.enc.PutScalar(tagRevision, attr.TypeU8, uint64(desc.Revision)); err != nil {
		return err
	}
	if err := s.enc.PutScalar(tagFamily, attr.TypeU8, uint64(desc.Family)); err != nil {
		return err
	}

	if err := s.enc.OpenNested(tagData); err != nil {
		return err
	}
	for tag, entry := range createPolicy {
		if entry.Opt == data.OptNone || !s.data.Test(entry.Opt) {
			continue
		}
		if err := attr.EncodeOpt(s.enc, s.data, tag, entry); err != nil {
			s.enc.CancelNested()
			return err
		}
	}
	if s.data.CadtFlags() != 0 {
		if err := s.enc.PutScalar(tagCadtFlags, attr.TypeU32, uint64(s.data.CadtFlags())); err != nil {
			s.enc.CancelNested()
			return err
		}
	}
	return s.enc.CloseNested()
}

func (s *Session) buildADT(aggregate bool) error {
	if !aggregate {
		if err := s.addSetname(); err != nil {
			return err
		}
		if err := s.enc.OpenNested(tagADT); err != nil {
			return err
		}
	}

	if err := s.enc.OpenNested(tagMember); err != nil {
		if !aggregate && s.enc.Depth() > 0 {
			s.enc.CancelNested() // drop the ADT group we just opened above
		}
		return err
	}
	if err := s.enc.PutScalar(tagLine, attr.TypeU32, uint64(s.lineno)); err != nil {
		s.enc.CancelNested()
		return err
	}
	for tag, entry := range adtPolicy {
		if entry.Opt == data.OptNone || !s.data.Test(entry.Opt) {
			continue
		}
		if err := attr.EncodeOpt(s.enc, s.data, tag, entry); err != nil {
			s.enc.CancelNested()
			return err
		}
	}
	if s.data.CadtFlags() != 0 {
		if err := s.enc.PutScalar(tagADTCadtFlags, attr.TypeU32, uint64(s.data.CadtFlags())); err != nil {
			s.enc.CancelNested()
			return err
		}
	}
	return s.enc.CloseNested()
}
