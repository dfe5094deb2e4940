package dset

import (
	"fmt"

	"github.com/cbdog94/dset/pkg/dset/types"
)

// usage is the top-level CLI surface summary (spec.md §6), printed by a
// bare "help" with no type argument.
const usage = `dset v0 -- manage kernel-resident domain sets

Commands:
  create/new/-N  SETNAME TYPE [create-options]
  add/-A         SETNAME ELEMENT [add-options]
  del/-D         SETNAME [ELEMENT] [del-options]
  test/-T        SETNAME ELEMENT [test-options]
  destroy/x/-X   [SETNAME]
  list/-L        [SETNAME]
  save/-S        [SETNAME]
  restore/-R
  flush/-F       [SETNAME]
  rename/e/-E    FROM TO
  swap/w/-W      SETNAME1 SETNAME2
  help/-h/-H     [TYPE]
  version/-v/-V
  quit

Environment options (may appear anywhere on the line):
  -o|-output {plain|save|xml}
  -s|-sorted
  -q|-quiet
  -!|-exist
  -n|-name
  -t|-terse
  -f|-file PATH
`

// runHelp implements parse-argv's "help [type]" case (spec.md §4.5 step
// 3): the general usage text, plus — if a type name is given — that
// type's per-command argument menus in create, add, del, test order.
func (d *Dset) runHelp(rest []string) {
	d.Session.Print(usage)
	if len(rest) == 0 {
		return
	}
	typeToken := rest[0]
	resolvedName := d.Session.Registry.ResolveName(typeToken)
	if resolvedName == "" {
		d.Session.Print(fmt.Sprintf("\nUnknown set type %q\n", typeToken))
		return
	}
	desc, ok := d.Session.Registry.Highest(resolvedName)
	if !ok {
		return
	}
	d.Session.Print(fmt.Sprintf("\n%s\nRevision %d: %s\n", desc.Name, desc.Revision, desc.Usage))
	d.printMenu("create", desc.CreateMenu)
	d.printMenu("add", desc.ADTMenu)
	d.printMenu("del", desc.ADTMenu)
	d.printMenu("test", desc.ADTMenu)
}

func (d *Dset) printMenu(cmdName string, m *types.Menu) {
	if m == nil || len(m.Args) == 0 {
		return
	}
	d.Session.Print(fmt.Sprintf("  %s options:\n", cmdName))
	for _, a := range m.Args {
		switch a.Arity {
		case types.ArityNone:
			d.Session.Print(fmt.Sprintf("    %s\n", a.Keyword))
		case types.ArityOptional:
			d.Session.Print(fmt.Sprintf("    %s [VALUE]\n", a.Keyword))
		default:
			d.Session.Print(fmt.Sprintf("    %s VALUE\n", a.Keyword))
		}
	}
}
