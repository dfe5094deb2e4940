package dset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cbdog94/dset/pkg/dset/data"
	"github.com/cbdog94/dset/pkg/dset/parse"
	"github.com/cbdog94/dset/pkg/dset/session"
	"github.com/cbdog94/dset/pkg/dset/types"
)

// ErrInteractive signals that argv was a lone "-" token: the caller
// should switch to reading further lines from standard input.
var ErrInteractive = errors.New("dset: enter interactive mode")

// ErrRestore signals a recognized "restore" command: restore has no wire
// message of its own (it is purely this driver reading a save-format
// stream and replaying it as ADD/DEL/CREATE commands), so ParseArgv
// leaves actually opening that stream to the caller (cmd/dset reads
// -file or stdin) instead of routing it through Session.Cmd.
var ErrRestore = errors.New("dset: restore")

// tokenizeLine splits line into argv the way parse-line does (spec.md
// §4.5): whitespace-separated tokens, with `"..."` spans taken verbatim
// (no escape processing inside quotes) and an unbalanced quote rejected
// as a syntax error.
func tokenizeLine(line string) ([]string, error) {
	var out []string
	var cur strings.Builder
	inQuote := false
	have := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			have = true
		case !inQuote && (r == ' ' || r == '\t'):
			if have {
				out = append(out, cur.String())
				cur.Reset()
				have = false
			}
		default:
			cur.WriteRune(r)
			have = true
		}
	}
	if inQuote {
		return nil, fmt.Errorf("dset: %w: unbalanced quote", parse.ErrSyntax)
	}
	if have {
		out = append(out, cur.String())
	}
	return out, nil
}

// ParseArgv runs the full four-pass parse-argv driver (spec.md §4.5) over
// one already-tokenized argv and executes the recognized command against
// d.Session. lineno is 0 outside restore mode.
func (d *Dset) ParseArgv(argv []string, lineno uint32) (ExitCode, error) {
	envArgv, err := d.consumeEnvOpts(argv)
	if err != nil {
		return ExitParameter, err
	}
	if len(envArgv) == 0 {
		return ExitSuccess, nil
	}
	if len(envArgv) == 1 && envArgv[0] == "-" {
		return ExitSuccess, ErrInteractive
	}

	action, ok := matchCommand(envArgv[0])
	if !ok {
		return ExitParameter, fmt.Errorf("dset: unknown argument %q", envArgv[0])
	}
	rest := envArgv[1:]

	switch action {
	case ActionQuit:
		return ExitSuccess, ErrQuit
	case ActionHelp:
		d.runHelp(rest)
		return ExitSuccess, nil
	case ActionVersion:
		v, err := d.Session.Version()
		if err != nil {
			return ExitVersion, err
		}
		if d.Session.ReportType() == session.Warning {
			return ExitVersion, fmt.Errorf("%s", d.Session.Report())
		}
		d.Session.Print(fmt.Sprintf("dset protocol version %d\n", v))
		return ExitSuccess, nil
	case ActionRestore:
		return ExitSuccess, ErrRestore
	}

	d.Session.Lineno(lineno)
	if err := d.buildCommand(action, rest); err != nil {
		return ExitParameter, err
	}
	if err := d.Session.Cmd(action.Cmd(), lineno); err != nil {
		return d.exitForErr(), err
	}
	return ExitSuccess, nil
}

// exitForErr maps the session's current report severity to an ExitCode,
// per spec.md §7 ("warnings exit success in batch mode; notices exit
// failure in batch mode ...; errors always fail").
func (d *Dset) exitForErr() ExitCode {
	switch d.Session.ReportType() {
	case session.Warning:
		return ExitSuccess
	case session.Notice, session.Error:
		return ExitGeneric
	default:
		return ExitSession
	}
}

// buildCommand fills d.Session.Data() for action from rest, consulting
// the resolved type's CREATE or ADD/DEL/TEST menu for anything beyond
// the positional setname/type/element arguments, per spec.md §4.5 step 4.
func (d *Dset) buildCommand(action Action, rest []string) error {
	blob := d.Session.Data()
	switch action {
	case ActionCreate:
		if len(rest) < 2 {
			return fmt.Errorf("dset: create needs a set name and a type")
		}
		name, typeToken := rest[0], rest[1]
		resolvedName := d.Session.Registry.ResolveName(typeToken)
		if resolvedName == "" {
			return fmt.Errorf("dset: unknown set type %q", typeToken)
		}
		desc, ok := d.Session.Registry.Highest(resolvedName)
		if !ok {
			return fmt.Errorf("dset: unknown set type %q", typeToken)
		}
		if err := parse.Setname(blob, data.OptSetname, name); err != nil {
			return err
		}
		blob.SetString(data.OptTypename, desc.Name)
		blob.SetAny(data.OptType, desc)
		return d.parseMenu(desc.CreateMenu, rest[2:])

	case ActionAdd, ActionDel, ActionTest:
		if len(rest) < 1 {
			return fmt.Errorf("dset: %s needs a set name", rest)
		}
		name := rest[0]
		desc, err := d.resolveSetType(name)
		if err != nil {
			return err
		}
		if err := parse.Setname(blob, data.OptSetname, name); err != nil {
			return err
		}
		blob.SetAny(data.OptType, desc)
		optional := action == ActionDel
		if len(rest) >= 2 {
			if err := parse.Elem(blob, desc, optional, rest[1]); err != nil {
				return err
			}
			return d.parseMenu(desc.ADTMenu, rest[2:])
		}
		if !optional {
			return fmt.Errorf("dset: %s needs an element", rest[0])
		}
		return d.parseMenu(desc.ADTMenu, rest[1:])

	case ActionDestroy, ActionList, ActionSave:
		if len(rest) >= 1 {
			return parse.Setname(blob, data.OptSetname, rest[0])
		}
		return nil

	case ActionFlush:
		// Supplemented feature (SPEC_FULL.md §10): flush with no setname
		// targets every known set.
		if len(rest) >= 1 {
			return parse.Setname(blob, data.OptSetname, rest[0])
		}
		return nil

	case ActionRename, ActionSwap:
		if len(rest) < 2 {
			return fmt.Errorf("dset: needs two set names")
		}
		if err := parse.Setname(blob, data.OptSetname, rest[0]); err != nil {
			return err
		}
		return parse.Setname(blob, data.OptSetname2, rest[1])

	default:
		return fmt.Errorf("dset: command not implemented")
	}
}

// resolveSetType finds the type descriptor for an already-created set,
// consulting the session's name cache (populated from CREATE/RENAME/SWAP
// ACKs; LIST replies do not add to it). A set this session has never seen
// created cannot be resolved locally; the kernel-side HEADER reply this module decodes
// carries only CADT fields, not a type name (see pkg/dset/session
// handleHeaderReply), so there is no query fallback.
func (d *Dset) resolveSetType(name string) (*types.Descriptor, error) {
	typeName, ok := d.Session.Names.TypeOf(name)
	if !ok {
		return nil, fmt.Errorf("dset: set %q is unknown to this session; create it first", name)
	}
	resolved := d.Session.Registry.ResolveName(typeName)
	desc, ok := d.Session.Registry.Highest(resolved)
	if !ok {
		return nil, fmt.Errorf("dset: set %q has unregistered type %q", name, typeName)
	}
	return desc, nil
}

// parseMenu consumes tokens against m, routing each recognized keyword
// through its Parse function and rejecting anything the menu doesn't
// list. check-mandatory/check-allowed then verify the result; check-allowed
// looks only at options added by the menu, not at the positional set name,
// type and element already stored in the blob.
func (d *Dset) parseMenu(m *types.Menu, tokens []string) error {
	blob := d.Session.Data()
	positional := blob.PresentMask()
	for i := 0; i < len(tokens); i++ {
		arg, ok := m.Lookup(tokens[i])
		if !ok {
			return fmt.Errorf("dset: %w: unknown argument %q", parse.ErrSyntax, tokens[i])
		}
		if blob.Test(arg.Opt) {
			return fmt.Errorf("dset: %w: option %q specified twice", parse.ErrSyntax, tokens[i])
		}
		switch arg.Arity {
		case types.ArityNone:
			if err := arg.Parse(blob, ""); err != nil {
				return err
			}
		case types.ArityMandatory:
			i++
			if i >= len(tokens) {
				return fmt.Errorf("dset: %w: %q needs an argument", parse.ErrSyntax, arg.Keyword)
			}
			if err := arg.Parse(blob, tokens[i]); err != nil {
				return err
			}
		case types.ArityOptional:
			if i+1 < len(tokens) {
				if _, isKeyword := m.Lookup(tokens[i+1]); !isKeyword {
					i++
					if err := arg.Parse(blob, tokens[i]); err != nil {
						return err
					}
					continue
				}
			}
			if err := arg.Parse(blob, ""); err != nil {
				return err
			}
		}
	}

	present := blob.PresentMask()
	if missing, ok := m.CheckMandatory(present); !ok {
		return fmt.Errorf("dset: %w: missing mandatory option %q", parse.ErrSyntax, missing)
	}
	if extra, ok := m.CheckAllowed(present &^ positional); !ok {
		return fmt.Errorf("dset: %w: option %q is not allowed here", parse.ErrSyntax, extra)
	}
	return nil
}

// ParseLine tokenizes and executes one restore/interactive input line.
func (d *Dset) ParseLine(line string, lineno uint32) (ExitCode, error) {
	argv, err := tokenizeLine(line)
	if err != nil {
		return ExitParameter, err
	}
	if len(argv) == 0 {
		return ExitSuccess, nil
	}
	return d.ParseArgv(argv, lineno)
}

// lineKind classifies one raw input line for ParseStream.
func lineKind(line string) (isCommit, isComment bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return false, true
	}
	return trimmed == "COMMIT", false
}
