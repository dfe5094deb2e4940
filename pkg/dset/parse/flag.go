package parse

import "github.com/cbdog94/dset/pkg/dset/data"

// Flag "parses" a boolean option: there is nothing to convert, the mere
// presence of the argument is the value. Storing a u8 is enough to mark
// o present and, for flag-backed options, flip the matching bit in the
// blob's aggregate flag word.
func Flag(blob *data.Blob, o data.Opt) error {
	blob.SetU8(o, 1)
	return nil
}
