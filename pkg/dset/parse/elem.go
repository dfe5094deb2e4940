package parse

import (
	"strings"

	"github.com/cbdog94/dset/pkg/dset/data"
	"github.com/cbdog94/dset/pkg/dset/types"
)

// ElemParser parses one dimension of an element string into the blob,
// keyed by the data.Opt the set type's descriptor assigns that dimension
// (e.g. OptDomain for hash:domain's single dimension).
type ElemParser func(blob *data.Blob, o data.Opt, part string) error

// ElemParsers maps the handful of element option kinds this module ships
// parsers for to their single-dimension parse function. A real multi-
// dimension type (hash:ip,port, ...) would register more entries here;
// the built-in hash:domain only ever needs OptDomain.
var ElemParsers = map[data.Opt]ElemParser{
	data.OptDomain: func(blob *data.Blob, o data.Opt, part string) error {
		return Domain(blob, part)
	},
}

// Elem parses str as a (possibly multi-part) element according to desc's
// dimension, splitting on comma and routing each part to desc.Elem[i]'s
// parser. optional relaxes the "every dimension must be present" rule for
// commands (like DEL) that allow a partial element.
func Elem(blob *data.Blob, desc *types.Descriptor, optional bool, str string) error {
	parts := strings.Split(str, ",")
	if len(parts) > int(desc.Dimension) {
		return syntaxErr("too many elements in %s for type with dimension %d", str, desc.Dimension)
	}
	if len(parts) < int(desc.Dimension) && !optional {
		return syntaxErr("element %s is missing a part required by this set type", str)
	}
	for i, part := range parts {
		elemOpt := desc.Elem[i].Opt
		parser, ok := ElemParsers[elemOpt]
		if !ok {
			return syntaxErr("Internal error: missing parser function for %s", desc.Name)
		}
		if err := parser(blob, elemOpt, part); err != nil {
			return err
		}
	}
	return nil
}
