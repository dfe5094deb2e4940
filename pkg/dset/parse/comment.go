package parse

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/cbdog94/dset/pkg/dset/data"
)

// MaxCommentLen bounds a stored comment's length, matching the wire
// protocol's fixed comment buffer (inherited from the same ipset lineage
// as MaxNameLen).
const MaxCommentLen = 255

// Comment parses str as a per-element comment: it may not contain a
// double quote (the save-file format uses unescaped quotes as a
// delimiter) and must fit MaxCommentLen. The string is normalized to NFC
// first so visually-identical comments compare and sort identically
// regardless of the composing form the shell or a save file handed us.
func Comment(blob *data.Blob, str string) error {
	if strings.ContainsRune(str, '"') {
		return syntaxErr("\" character is not permitted in comments")
	}
	normalized := norm.NFC.String(str)
	if len(normalized) > MaxCommentLen {
		return syntaxErr("Comment is longer than the maximum allowed %d characters", MaxCommentLen)
	}
	blob.SetString(data.OptAdtComment, normalized)
	return nil
}
