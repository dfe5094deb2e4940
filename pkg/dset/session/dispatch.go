package session

import (
	"github.com/cbdog94/dset/internal/attr"
	"github.com/cbdog94/dset/internal/wire"
	"github.com/cbdog94/dset/pkg/dset/data"
	"github.com/cbdog94/dset/pkg/dset/errcode"
	"github.com/cbdog94/dset/pkg/dset/print"
	"github.com/cbdog94/dset/pkg/dset/types"
)

// handleACK applies the cache side-effects for a zero-error reply to
// origCmd, per SPEC_FULL.md §4.4 ("ACK side-effects by original
// command").
func (s *Session) handleACK(origCmd wire.Command) error {
	switch origCmd {
	case wire.CmdCreate:
		name, _ := s.data.GetString(data.OptSetname)
		typeName, _ := s.data.GetString(data.OptTypename)
		_ = s.Names.Add(name, typeName)
	case wire.CmdDestroy:
		name, _ := s.data.GetString(data.OptSetname)
		_ = s.Names.Del(name)
	case wire.CmdRename:
		from, _ := s.data.GetString(data.OptSetname)
		to, _ := s.data.GetString(data.OptSetname2)
		_ = s.Names.Rename(from, to)
	case wire.CmdSwap:
		a, _ := s.data.GetString(data.OptSetname)
		b, _ := s.data.GetString(data.OptSetname2)
		_ = s.Names.Swap(a, b)
	case wire.CmdTest:
		if !s.envopts.Test(EnvQuiet) {
			s.printTestResult(true)
		}
	case wire.CmdFlush, wire.CmdAdd, wire.CmdDel:
		// no cache side-effect
	case wire.CmdList, wire.CmdSave:
		s.finalizeDump()
	}
	return nil
}

// handleErrcode translates a nonzero kernel error code into a report,
// special-casing TEST's "already exists" into a negative membership
// result instead of a hard error.
func (s *Session) handleErrcode(origCmd wire.Command, code uint32) error {
	if origCmd == wire.CmdTest && int(code) == int(errcode.ErrExist) {
		if !s.envopts.Test(EnvQuiet) {
			s.printTestResult(false)
		}
		return nil
	}
	typeName := ""
	if s.savedType != nil {
		typeName = s.savedType.Name
	}
	msg := errcode.Translate(errcode.Code(code), origCmd, typeName)
	return s.Err("%s", msg)
}

func (s *Session) printTestResult(found bool) {
	buf := print.NewBuffer(512)
	_ = print.Elem(buf, s.data)
	verb := "is in set"
	if !found {
		verb = "is NOT in set"
	}
	s.Notice("%s %s %s.", buf.String(), verb, s.data.Setname())
}

// dispatchData decodes a data message's command-level attributes and
// routes on the embedded command to the version handshake, a HEADER
// reply, a TYPE reply, or one LIST/SAVE row. PROTOCOL/HEADER/TYPE are
// each a single request-reply round trip with no terminal DONE frame
// behind them, so they stop the exchange themselves; LIST/SAVE keep the
// stream open for further rows until a DONE frame arrives.
func (s *Session) dispatchData(cmd wire.Command, payload []byte) (stop bool, err error) {
	raws, perr := attr.Parse(payload)
	if perr != nil {
		return true, s.Err("broken %v kernel message: %v", cmd, perr)
	}
	switch cmd {
	case wire.CmdProtocol:
		return true, s.handleProtocolReply(raws)
	case wire.CmdHeader:
		return true, s.handleHeaderReply(raws)
	case wire.CmdType:
		return true, s.handleTypeReply(raws)
	case wire.CmdList, wire.CmdSave:
		return false, s.handleListRow(raws)
	default:
		return true, s.Err("data message received when not expected")
	}
}

// handleListRow implements the list/save state machine (SPEC_FULL.md
// §4.4): a SETNAME matching the currently open set means "more ADT
// members for the same set"; any other SETNAME finalizes the previous
// set and expects a full DATA group to start the next one.
func (s *Session) handleListRow(raws []attr.Raw) error {
	top := data.New()
	var adtRaws, dataRaws []attr.Raw
	for _, r := range raws {
		switch r.Tag {
		case tagSetname:
			if err := attr.DecodeOpt(r, cmdPolicy[tagSetname], top); err != nil {
				return s.Err("broken list message: %v", err)
			}
		case tagData:
			nested, err := attr.ParseNested(r)
			if err != nil {
				return s.Err("broken list message: %v", err)
			}
			dataRaws = nested
		case tagADT:
			nested, err := attr.ParseNested(r)
			if err != nil {
				return s.Err("broken list message: %v", err)
			}
			adtRaws = nested
		case tagTypename, tagRevision, tagFamily:
			if err := attr.DecodeOpt(r, cmdPolicy[r.Tag], top); err != nil {
				return s.Err("broken list message: %v", err)
			}
		}
	}
	setname := top.Setname()
	continuation := s.out.open && s.out.setname == setname

	if !continuation {
		if dataRaws == nil {
			return s.Err("broken list message: missing header data for new set %q", setname)
		}
		header := data.New()
		if err := attr.DecodeAll(dataRaws, createPolicy, header); err != nil {
			return s.Err("broken list message: %v", err)
		}
		typeName, _ := top.GetString(data.OptTypename)
		family, _ := top.GetU8(data.OptFamily)
		desc, derr := s.Registry.ForFamily(s.Registry.ResolveName(typeName), types.Family(family))
		if derr != nil {
			return s.Err("unknown set type %q reported by kernel", typeName)
		}
		if err := s.startSet(desc, setname, header); err != nil {
			return err
		}
	} else if dataRaws != nil {
		return s.Err("protocol error: unexpected header data for continuation row")
	}

	for _, member := range adtRaws {
		if !member.Nested {
			return s.Err("broken list message: malformed ADT member")
		}
		fields, err := attr.ParseNested(member)
		if err != nil {
			return s.Err("broken list message: %v", err)
		}
		row := data.New()
		if err := attr.DecodeAll(fields, adtPolicy, row); err != nil {
			return s.Err("broken list message: %v", err)
		}
		row.SetAny(data.OptType, s.out.desc)
		buf := print.NewBuffer(4096)
		if err := renderRow(buf, s.mode, s.out.desc, row); err != nil {
			return err
		}
		s.out.appendRow(s.out.desc, buf.String(), s.envopts.Test(EnvSorted))
	}
	return nil
}
