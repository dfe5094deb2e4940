package parse

import "github.com/cbdog94/dset/pkg/dset/data"

// Ignored "parses" a deprecated option by doing nothing but recording
// that it was used, so the caller can warn once per option per session
// (data.Blob.Ignored already tracks the "already warned" bit).
func Ignored(blob *data.Blob, o data.Opt) (alreadyWarned bool) {
	return blob.Ignored(o)
}
