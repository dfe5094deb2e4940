// Package data implements the typed option bag ("data blob") that holds the
// fields of one in-flight dset command: one Blob is reused across the
// lifetime of a session and reset after every completed command.
package data

// Opt enumerates every field a command can carry. The numeric values and
// gaps mirror enum dset_opt from the original kernel module so that wire
// attribute tags (see internal/attr) stay a stable, library-independent
// contract.
type Opt uint8

const (
	OptNone Opt = iota
	// Common options.
	OptSetname
	OptTypename
	OptFamily
	// CADT (create-and-add-time) options.
	OptDomain
	OptTimeout
	// Create-specific options.
	OptGC
	OptHashsize
	OptMaxelem
	OptProbes
	OptResize
	OptSize
	OptForceadd
	// Create-specific, filled in by the kernel.
	OptElements
	OptReferences
	OptMemsize
	// ADT-specific options.
	OptName
	OptNameref
	// Swap/rename target.
	OptSetname2
	// Flag and further CADT options. Those also realized as bits in the
	// aggregate flag words (OptExist, OptBefore, OptPhysdev, OptNomatch,
	// OptCounters, OptSkbinfo, and OptForceadd above) are listed in flags.go.
	OptExist
	OptBefore
	OptPhysdev
	OptNomatch
	OptCounters
	OptPackets
	OptBytes
	OptCreateComment
	OptAdtComment
	OptSkbinfo
	OptSkbmark
	OptSkbprio
	OptSkbqueue

	// Internal options, kept at fixed offsets so external policy tables can
	// reference them without depending on how many CADT options exist above.
	OptFlags     Opt = 48
	OptCadtFlags Opt = 49
	OptElem      Opt = 50
	OptType      Opt = 51
	OptLineno    Opt = 52
	OptRevision  Opt = 53
	OptRevisionMin Opt = 54
	OptIndex     Opt = 55

	optMax Opt = 56
)

// String names an option kind for diagnostics.
func (o Opt) String() string {
	if s, ok := optNames[o]; ok {
		return s
	}
	return "opt(?)"
}

var optNames = map[Opt]string{
	OptNone:        "none",
	OptSetname:     "setname",
	OptTypename:    "typename",
	OptFamily:      "family",
	OptDomain:      "domain",
	OptTimeout:     "timeout",
	OptGC:          "gc",
	OptHashsize:    "hashsize",
	OptMaxelem:     "maxelem",
	OptProbes:      "probes",
	OptResize:      "resize",
	OptSize:        "size",
	OptForceadd:    "forceadd",
	OptElements:    "elements",
	OptReferences:  "references",
	OptMemsize:     "memsize",
	OptName:        "name",
	OptNameref:     "nameref",
	OptSetname2:    "setname2",
	OptExist:       "exist",
	OptBefore:      "before",
	OptPhysdev:     "physdev",
	OptNomatch:     "nomatch",
	OptCounters:    "counters",
	OptPackets:     "packets",
	OptBytes:       "bytes",
	OptCreateComment: "comment",
	OptAdtComment:  "comment",
	OptSkbinfo:     "skbinfo",
	OptSkbmark:     "skbmark",
	OptSkbprio:     "skbprio",
	OptSkbqueue:    "skbqueue",
	OptFlags:       "flags",
	OptCadtFlags:   "cadt-flags",
	OptElem:        "elem",
	OptType:        "type",
	OptLineno:      "lineno",
	OptRevision:    "revision",
	OptRevisionMin: "revision-min",
	OptIndex:       "index",
}

// Flag returns the bit associated with opt in a present/ignored bitset.
func (o Opt) Flag() uint64 {
	return uint64(1) << uint(o)
}
