package parse

import (
	"github.com/cbdog94/dset/pkg/dset/data"
	"github.com/cbdog94/dset/pkg/dset/types"
)

// Typename resolves str against reg (following aliases), storing both
// the canonical name and the resolved descriptor in the blob. family
// narrows resolution to a descriptor that actually supports it.
func Typename(blob *data.Blob, reg *types.Registry, family types.Family, str string) error {
	if len(str) > MaxNameLen-1 {
		return syntaxErr("typename '%s' is longer than %d characters", str, MaxNameLen-1)
	}
	canonical := reg.ResolveName(str)
	if canonical == "" {
		return syntaxErr("typename '%s' is unknown", str)
	}
	desc, err := reg.ForFamily(canonical, family)
	if err != nil {
		return syntaxErr("typename '%s' does not support this family", str)
	}
	blob.SetString(data.OptTypename, canonical)
	blob.SetAny(data.OptType, desc)
	return nil
}
