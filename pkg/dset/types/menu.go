package types

import "github.com/cbdog94/dset/pkg/dset/data"

// Arity says how many tokens a recognized keyword consumes from argv.
type Arity int

const (
	// ArityNone means the keyword itself is the value (a flag).
	ArityNone Arity = iota
	// ArityOptional means the keyword may be followed by a value, but
	// isn't required to be. No built-in menu uses it.
	ArityOptional
	// ArityMandatory means the keyword must be followed by exactly one
	// value token.
	ArityMandatory
)

// ArgParseFunc stores str (empty for ArityNone) into blob under the
// keyword's associated option.
type ArgParseFunc func(blob *data.Blob, str string) error

// Arg is one recognized keyword in a command's argument menu, per
// spec.md §4.5 step 4 ("each recognized keyword consumes zero or one
// argument").
type Arg struct {
	Keyword string
	Arity   Arity
	Opt     data.Opt
	Parse   ArgParseFunc
	// MinRevision is the lowest revision of the owning descriptor this
	// keyword is valid from. The argument parser does not consult it: an
	// unknown keyword is rejected without looking at other revisions.
	MinRevision uint8
}

// Menu is a type's full keyword table for one command family (CREATE, or
// ADD/DEL/TEST), plus the mandatory/allowed option masks check-mandatory
// and check-allowed verify against.
type Menu struct {
	Args []Arg
	Need uint64 // every bit must be present after parsing (check-mandatory)
	Full uint64 // no present option may fall outside this mask (check-allowed)
}

// Lookup returns the Arg matching keyword, or ok=false.
func (m *Menu) Lookup(keyword string) (Arg, bool) {
	if m == nil {
		return Arg{}, false
	}
	for _, a := range m.Args {
		if a.Keyword == keyword {
			return a, true
		}
	}
	return Arg{}, false
}

// CheckMandatory reports the first Need bit missing from present, or ok
// if every mandatory option was supplied.
func (m *Menu) CheckMandatory(present uint64) (missing data.Opt, ok bool) {
	if m == nil {
		return data.OptNone, true
	}
	rest := m.Need &^ present
	if rest == 0 {
		return data.OptNone, true
	}
	for o := data.Opt(0); o < 64; o++ {
		if rest&o.Flag() != 0 {
			return o, false
		}
	}
	return data.OptNone, true
}

// CheckAllowed reports the first present option that falls outside the
// Full mask, or ok if every present option is allowed.
func (m *Menu) CheckAllowed(present uint64) (extra data.Opt, ok bool) {
	if m == nil {
		return data.OptNone, true
	}
	rest := present &^ m.Full
	if rest == 0 {
		return data.OptNone, true
	}
	for o := data.Opt(0); o < 64; o++ {
		if rest&o.Flag() != 0 {
			return o, false
		}
	}
	return data.OptNone, true
}
