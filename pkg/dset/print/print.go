// Package print implements the output formatters (component C6): each
// exported function renders one typed value from a data.Blob into a
// bounded buffer, returning ErrOverflow if the caller's buffer was too
// small so the caller can retry with more room (the same overflow-and-
// retry contract the wire codec's Encoder uses for ErrBufferFull).
package print

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cbdog94/dset/pkg/dset/data"
	"github.com/cbdog94/dset/pkg/dset/types"
)

// ErrOverflow is returned when buf cannot hold the formatted value.
var ErrOverflow = errors.New("print: buffer too small")

// Buffer is a fixed-capacity output buffer that formatters append to.
// Unlike strings.Builder it has a hard ceiling: Printf returns
// ErrOverflow instead of growing once that ceiling is reached, so a
// caller that wants unbounded output can catch the error and retry with
// a larger buffer rather than let a single massive value run away.
type Buffer struct {
	cap int
	b   strings.Builder
}

// NewBuffer returns a Buffer that rejects writes once its written length
// would exceed capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{cap: capacity}
}

// Printf appends the formatted string, or returns ErrOverflow without
// modifying buf if doing so would exceed its capacity.
func (buf *Buffer) Printf(format string, args ...any) error {
	s := fmt.Sprintf(format, args...)
	if buf.b.Len()+len(s) > buf.cap {
		return ErrOverflow
	}
	buf.b.WriteString(s)
	return nil
}

// String returns everything written so far.
func (buf *Buffer) String() string { return buf.b.String() }

// Len reports how many bytes have been written so far.
func (buf *Buffer) Len() int { return buf.b.Len() }

// Type prints a resolved type descriptor's canonical name.
func Type(buf *Buffer, blob *data.Blob) error {
	v, ok := blob.GetAny(data.OptType)
	if !ok {
		return fmt.Errorf("print: %w", errNoType)
	}
	desc := v.(*types.Descriptor)
	return buf.Printf("%s", desc.Name)
}

var errNoType = errors.New("type not resolved")

// Number prints a uint8/uint32/uint64-valued option as a plain decimal,
// trying each width data.Blob might hold it under.
func Number(buf *Buffer, blob *data.Blob, o data.Opt) error {
	if v, ok := blob.GetU8(o); ok {
		return buf.Printf("%d", v)
	}
	if v, ok := blob.GetU32(o); ok {
		return buf.Printf("%d", v)
	}
	if v, ok := blob.GetU64(o); ok {
		return buf.Printf("%d", v)
	}
	return fmt.Errorf("print: no numeric value set for %s", o)
}

// Name prints a set name, plus its list:set "before"/"after" reference
// when one is attached.
func Name(buf *Buffer, blob *data.Blob) error {
	name, _ := blob.GetString(data.OptName)
	if err := buf.Printf("%s", name); err != nil {
		return err
	}
	if !blob.Test(data.OptNameref) {
		return nil
	}
	ref, _ := blob.GetString(data.OptNameref)
	rel := "after"
	if blob.CadtFlags()&flagBefore != 0 {
		rel = "before"
	}
	return buf.Printf(" %s %s", rel, ref)
}

// flagBefore mirrors data/flags.go's flagBits assignment for OptBefore (bit
// 0 of the CADT word); kept local since print has no reason to import the
// data package's internal flag table.
const flagBefore = 1 << 0

// Domain prints a domain element.
func Domain(buf *Buffer, blob *data.Blob) error {
	v, _ := blob.GetString(data.OptDomain)
	return buf.Printf("%s", v)
}

// Comment prints a double-quoted comment.
func Comment(buf *Buffer, blob *data.Blob) error {
	v, _ := blob.GetString(data.OptAdtComment)
	return buf.Printf("%q", v)
}

// Skbmark prints a packed skbmark value as "0xMARK" or "0xMARK/0xMASK"
// when the mask is not the all-ones default.
func Skbmark(buf *Buffer, blob *data.Blob) error {
	v, _ := blob.GetU64(data.OptSkbmark)
	mark := uint32(v >> 32)
	mask := uint32(v & 0xffffffff)
	if mask == 0xffffffff {
		return buf.Printf("0x%x", mark)
	}
	return buf.Printf("0x%x/0x%x", mark, mask)
}

// Skbprio prints a packed skbprio value as "MAJOR:MINOR" hex.
func Skbprio(buf *Buffer, blob *data.Blob) error {
	v, _ := blob.GetU32(data.OptSkbprio)
	return buf.Printf("%x:%x", v>>16, v&0xffff)
}

// Flag prints nothing: a flag option's value is its mere presence.
func Flag(buf *Buffer, blob *data.Blob, o data.Opt) error {
	return nil
}

// Elem prints the resolved type's element, dimension by dimension,
// separated by commas. Every one of the type's Dimension parts is printed;
// no dimension is treated as optional.
func Elem(buf *Buffer, blob *data.Blob) error {
	v, ok := blob.GetAny(data.OptType)
	if !ok {
		return fmt.Errorf("print: %w", errNoType)
	}
	desc := v.(*types.Descriptor)

	for i := 0; i < int(desc.Dimension); i++ {
		part := desc.Elem[i]
		if i > 0 {
			if err := buf.Printf(","); err != nil {
				return err
			}
		}
		if err := printElemPart(buf, blob, part.Opt); err != nil {
			return err
		}
	}
	return nil
}

func printElemPart(buf *Buffer, blob *data.Blob, o data.Opt) error {
	switch o {
	case data.OptDomain:
		return Domain(buf, blob)
	default:
		return fmt.Errorf("print: no element printer registered for %s", o)
	}
}

// Data is the generic dispatcher mirroring dset_print_data: it routes opt
// to the formatter appropriate for its kind.
func Data(buf *Buffer, blob *data.Blob, o data.Opt) error {
	switch o {
	case data.OptDomain:
		return Domain(buf, blob)
	case data.OptType:
		return Type(buf, blob)
	case data.OptSetname:
		return buf.Printf("%s", blob.Setname())
	case data.OptElem:
		return Elem(buf, blob)
	case data.OptGC, data.OptHashsize, data.OptMaxelem, data.OptProbes,
		data.OptResize, data.OptTimeout, data.OptReferences,
		data.OptElements, data.OptSize:
		return Number(buf, blob, o)
	default:
		return fmt.Errorf("print: no formatter registered for %s", o)
	}
}
