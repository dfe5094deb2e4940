package dset

import (
	"github.com/cbdog94/dset/pkg/dset/data"
	"github.com/cbdog94/dset/pkg/dset/parse"
	"github.com/cbdog94/dset/pkg/dset/types"
)

// Per-command argument menus live here rather than in pkg/dset/types
// itself, since a menu's Parse functions are supplied by pkg/dset/parse
// and types cannot import parse without a cycle (parse.Elem already
// depends on types.Descriptor). Wiring them at package init keeps every
// built-in descriptor fully populated before the first command ever runs,
// mirroring how the original registers a type's whole ipset_type_cmd
// table in one static initializer.
func init() {
	types.HashDomain.CreateMenu = hashDomainCreateMenu
	types.HashDomain.ADTMenu = hashDomainADTMenu
}

var hashDomainCreateMenu = &types.Menu{
	Args: []Arg{
		{Keyword: "hashsize", Arity: types.ArityMandatory, Opt: data.OptHashsize,
			Parse: func(b *data.Blob, s string) error { return parse.Uint32(b, data.OptHashsize, s) }},
		{Keyword: "maxelem", Arity: types.ArityMandatory, Opt: data.OptMaxelem,
			Parse: func(b *data.Blob, s string) error { return parse.Uint32(b, data.OptMaxelem, s) }},
		{Keyword: "timeout", Arity: types.ArityMandatory, Opt: data.OptTimeout,
			Parse: func(b *data.Blob, s string) error { return parse.Timeout(b, data.OptTimeout, s) }},
		{Keyword: "counters", Arity: types.ArityNone, Opt: data.OptCounters,
			Parse: func(b *data.Blob, _ string) error { return parse.Flag(b, data.OptCounters) }},
		{Keyword: "forceadd", Arity: types.ArityNone, Opt: data.OptForceadd,
			Parse: func(b *data.Blob, _ string) error { return parse.Flag(b, data.OptForceadd) }},
		{Keyword: "comment", Arity: types.ArityMandatory, Opt: data.OptCreateComment,
			Parse: func(b *data.Blob, s string) error { return createComment(b, s) }},
		{Keyword: "probes", Arity: types.ArityMandatory, Opt: data.OptProbes,
			Parse: func(b *data.Blob, _ string) error { _ = parse.Ignored(b, data.OptProbes); return nil }},
		{Keyword: "resize", Arity: types.ArityMandatory, Opt: data.OptResize,
			Parse: func(b *data.Blob, _ string) error { _ = parse.Ignored(b, data.OptResize); return nil }},
		{Keyword: "gc", Arity: types.ArityMandatory, Opt: data.OptGC,
			Parse: func(b *data.Blob, _ string) error { _ = parse.Ignored(b, data.OptGC); return nil }},
	},
	Need: 0,
	Full: data.OptHashsize.Flag() | data.OptMaxelem.Flag() | data.OptTimeout.Flag() |
		data.OptCounters.Flag() | data.OptForceadd.Flag() | data.OptCreateComment.Flag() |
		data.OptProbes.Flag() | data.OptResize.Flag() | data.OptGC.Flag(),
}

var hashDomainADTMenu = &types.Menu{
	Args: []Arg{
		{Keyword: "timeout", Arity: types.ArityMandatory, Opt: data.OptTimeout,
			Parse: func(b *data.Blob, s string) error { return parse.Timeout(b, data.OptTimeout, s) }},
		{Keyword: "comment", Arity: types.ArityMandatory, Opt: data.OptAdtComment,
			Parse: parse.Comment},
		{Keyword: "skbmark", Arity: types.ArityMandatory, Opt: data.OptSkbmark,
			Parse: parse.Skbmark},
		{Keyword: "skbprio", Arity: types.ArityMandatory, Opt: data.OptSkbprio,
			Parse: parse.Skbprio},
	},
	Need: 0,
	Full: data.OptTimeout.Flag() | data.OptAdtComment.Flag() |
		data.OptSkbmark.Flag() | data.OptSkbprio.Flag(),
}

// createComment stores a create-time comment: same syntax rules as
// parse.Comment (no embedded quote, NFC-normalized, length-bounded) but
// under the create-time slot instead of the per-element one.
func createComment(blob *data.Blob, str string) error {
	scratch := data.New()
	if err := parse.Comment(scratch, str); err != nil {
		return err
	}
	v, _ := scratch.GetString(data.OptAdtComment)
	blob.SetString(data.OptCreateComment, v)
	return nil
}

// Arg is the command driver's own alias of types.Arg, kept local so
// menus.go reads as this package's own argument table rather than a
// reach-through into pkg/dset/types's field names.
type Arg = types.Arg
