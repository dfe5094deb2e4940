package dset

import (
	"fmt"

	"github.com/cbdog94/dset/pkg/dset/session"
)

// consumeEnvOpts performs parse-argv pass 1 (spec.md §4.5): it scans argv
// for environment-option tokens, applies each one to the session as it is
// recognized, and returns argv with every consumed option (and its value,
// if any) shifted out. Environment options may appear anywhere on the
// line, not just at the front.
func (d *Dset) consumeEnvOpts(argv []string) ([]string, error) {
	out := make([]string, 0, len(argv))
	for i := 0; i < len(argv); i++ {
		tok := argv[i]
		switch tok {
		case "-o", "-output":
			if i+1 >= len(argv) {
				return nil, fmt.Errorf("dset: %s needs an argument", tok)
			}
			i++
			if err := d.setOutputMode(argv[i]); err != nil {
				return nil, err
			}
		case "-s", "-sorted":
			d.Session.EnvSet(session.EnvSorted)
		case "-q", "-quiet":
			d.Session.EnvSet(session.EnvQuiet)
		case "-!", "-exist":
			d.Session.EnvSet(session.EnvExist)
		case "-n", "-name":
			d.Session.EnvSet(session.EnvListSetname)
		case "-t", "-terse":
			d.Session.EnvSet(session.EnvListHeader)
		case "-f", "-file":
			if i+1 >= len(argv) {
				return nil, fmt.Errorf("dset: %s needs an argument", tok)
			}
			i++
			d.filePath = argv[i]
		default:
			out = append(out, tok)
		}
	}
	return out, nil
}

func (d *Dset) setOutputMode(name string) error {
	switch name {
	case "plain":
		d.Session.SetOutputMode(session.ModePlain)
	case "save":
		d.Session.SetOutputMode(session.ModeSave)
	case "xml":
		d.Session.SetOutputMode(session.ModeXML)
	default:
		return fmt.Errorf("dset: unknown output mode %q", name)
	}
	return nil
}
