package parse

import (
	"fmt"

	"github.com/cbdog94/dset/pkg/dset/data"
)

// Skbmark parses a "MARK/MASK" or bare "MARK" hex pair (e.g. "0x1/0xff")
// into a single packed 64-bit value: mark in the high 32 bits, mask (or
// 0xffffffff if omitted) in the low 32 bits.
func Skbmark(blob *data.Blob, str string) error {
	var mark, mask uint64
	n, _ := fmt.Sscanf(str, "0x%x/0x%x", &mark, &mask)
	if n != 2 {
		mask = 0xffffffff
		n, _ = fmt.Sscanf(str, "0x%x", &mark)
		if n != 1 {
			return syntaxErr("Invalid skbmark format, it should be: MARK/MASK or MARK (see manpage)")
		}
	}
	blob.SetU64(data.OptSkbmark, (mark<<32)|(mask&0xffffffff))
	return nil
}

// Skbprio parses a "MAJOR:MINOR" hex pair into a single packed 32-bit TC
// handle: major in the high 16 bits, minor in the low 16 bits.
func Skbprio(blob *data.Blob, str string) error {
	var major, minor uint32
	n, _ := fmt.Sscanf(str, "%x:%x", &major, &minor)
	if n != 2 {
		return syntaxErr("Invalid skbprio format, it should be: MAJOR:MINOR (see manpage)")
	}
	blob.SetU32(data.OptSkbprio, (major<<16)|(minor&0xffff))
	return nil
}
