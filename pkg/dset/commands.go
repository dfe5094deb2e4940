// Package dset implements the command driver (component C8): the layer
// that turns one line of argv into a session.Session call, consulting a
// set type's CREATE or ADD/DEL/TEST argument menu (pkg/dset/types.Menu)
// along the way. It is the top-level library entry point; cmd/dset wraps
// it in a thin cobra shell.
package dset

import (
	"strings"

	"github.com/cbdog94/dset/internal/wire"
)

// Action identifies a recognized command-line verb. Most map directly to
// a wire.Command; help/version/quit are driver-level concerns with no
// wire counterpart of their own (version still triggers the protocol
// handshake through the session, but it is not itself a message the
// kernel receives unprompted).
type Action int

const (
	ActionNone Action = iota
	ActionCreate
	ActionAdd
	ActionDel
	ActionTest
	ActionDestroy
	ActionList
	ActionSave
	ActionRestore
	ActionFlush
	ActionRename
	ActionSwap
	ActionHelp
	ActionVersion
	ActionQuit
)

// Cmd returns the wire.Command a handles, or wire.CmdNone for driver-only
// actions (help/version/quit).
func (a Action) Cmd() wire.Command {
	switch a {
	case ActionCreate:
		return wire.CmdCreate
	case ActionAdd:
		return wire.CmdAdd
	case ActionDel:
		return wire.CmdDel
	case ActionTest:
		return wire.CmdTest
	case ActionDestroy:
		return wire.CmdDestroy
	case ActionList:
		return wire.CmdList
	case ActionSave:
		return wire.CmdSave
	case ActionRestore:
		return wire.CmdRestore
	case ActionFlush:
		return wire.CmdFlush
	case ActionRename:
		return wire.CmdRename
	case ActionSwap:
		return wire.CmdSwap
	default:
		return wire.CmdNone
	}
}

// commandEntry is one row of the command table: a long name matched by
// unique prefix, plus exact-match aliases (letters and/or "-X" short
// forms), per spec.md §6's CLI surface table.
type commandEntry struct {
	Name    string
	Aliases []string
	Action  Action
}

var commandTable = []commandEntry{
	{Name: "create", Aliases: []string{"new", "-N"}, Action: ActionCreate},
	{Name: "add", Aliases: []string{"-A"}, Action: ActionAdd},
	{Name: "del", Aliases: []string{"-D"}, Action: ActionDel},
	{Name: "test", Aliases: []string{"-T"}, Action: ActionTest},
	{Name: "destroy", Aliases: []string{"x", "-X"}, Action: ActionDestroy},
	{Name: "list", Aliases: []string{"-L"}, Action: ActionList},
	{Name: "save", Aliases: []string{"-S"}, Action: ActionSave},
	{Name: "restore", Aliases: []string{"-R"}, Action: ActionRestore},
	{Name: "flush", Aliases: []string{"-F"}, Action: ActionFlush},
	{Name: "rename", Aliases: []string{"e", "-E"}, Action: ActionRename},
	{Name: "swap", Aliases: []string{"w", "-W"}, Action: ActionSwap},
	{Name: "help", Aliases: []string{"-h", "-H"}, Action: ActionHelp},
	{Name: "version", Aliases: []string{"-v", "-V"}, Action: ActionVersion},
	{Name: "quit", Aliases: nil, Action: ActionQuit},
}

// matchCommand resolves token against the command table: an exact alias
// match always wins; otherwise token (with a leading "--" stripped) is
// matched as a case-sensitive prefix of exactly one command's long name.
// Per spec.md §4.5 step 2.
func matchCommand(token string) (Action, bool) {
	for _, e := range commandTable {
		for _, a := range e.Aliases {
			if a == token {
				return e.Action, true
			}
		}
		if e.Name == token {
			return e.Action, true
		}
	}

	stripped := strings.TrimPrefix(token, "--")
	if stripped == "" {
		return ActionNone, false
	}
	var match Action
	found := 0
	for _, e := range commandTable {
		if strings.HasPrefix(e.Name, stripped) {
			match = e.Action
			found++
		}
	}
	if found == 1 {
		return match, true
	}
	return ActionNone, false
}
