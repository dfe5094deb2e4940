package types

import "github.com/cbdog94/dset/pkg/dset/data"

// HashDomain is the built-in hash:domain type, revision 0: a one-dimension
// set of domain names, family-neutral, with the classic hash:* create-time
// knobs (hashsize, maxelem, timeout) plus three accepted-but-ignored
// legacy keywords kept only so old save files and scripts still parse.
var HashDomain = &Descriptor{
	Name:      "hash:domain",
	Aliases:   []string{"dhash"},
	Revision:  0,
	Family:    FamilyUnspec,
	Dimension: 1,
	Elem: [3]ElemPart{
		{Opt: data.OptDomain},
	},
	Usage:       "Domain supported.",
	Description: "Initial revision",
}

// legacyCreateKeywords are hash:domain CREATE arguments accepted for
// backward compatibility and silently ignored, per dset_hash_domain.c's
// DSET_ARG_PROBES / DSET_ARG_RESIZE / DSET_ARG_GC entries.
var legacyCreateKeywords = map[string]bool{
	"probes": true,
	"resize": true,
	"gc":     true,
}

// IsLegacyCreateKeyword reports whether keyword is one of hash:domain's
// backward-compatibility CREATE arguments that the parser should accept
// and the data blob should mark Ignored rather than reject.
func IsLegacyCreateKeyword(keyword string) bool {
	return legacyCreateKeywords[keyword]
}

// RegisterBuiltins adds every type this module ships with to r.
func RegisterBuiltins(r *Registry) {
	r.Add(HashDomain)
}
