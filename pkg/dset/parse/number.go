// Package parse implements the argument parsers (component C5): each
// exported function takes the raw string an option's value arrived as and
// stores its typed form into a data.Blob, returning a syntax error that
// already carries the "Syntax error: " prefix the session reports to the
// user.
package parse

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/cbdog94/dset/pkg/dset/data"
)

// ErrSyntax wraps every parser failure so callers can distinguish a bad
// argument from an internal error without string-matching messages.
var ErrSyntax = errors.New("parse: syntax error")

func syntaxErr(format string, args ...any) error {
	return fmt.Errorf("%w: Syntax error: %s", ErrSyntax, fmt.Sprintf(format, args...))
}

// number parses str as a base-agnostic (0x/0 prefixes honored) unsigned
// integer bounded to [0, max], mirroring string_to_number_ll's strtoull
// plus range check.
func number(str string, max uint64) (uint64, error) {
	v, err := strconv.ParseUint(str, 0, 64)
	if err != nil {
		return 0, syntaxErr("'%s' is invalid as number", str)
	}
	if max != 0 && v > max {
		return 0, syntaxErr("'%s' is out of range 0-%d", str, max)
	}
	return v, nil
}

// Uint8 parses str as an 8-bit unsigned integer and stores it.
func Uint8(blob *data.Blob, o data.Opt, str string) error {
	v, err := number(str, 255)
	if err != nil {
		return err
	}
	blob.SetU8(o, uint8(v))
	return nil
}

// Uint16 parses str as a 16-bit unsigned integer, storing it widened into
// the blob's u32 slot (see internal/attr's TypeU16 handling: no option
// genuinely needs narrower-than-u32 storage).
func Uint16(blob *data.Blob, o data.Opt, str string) error {
	v, err := number(str, 65535)
	if err != nil {
		return err
	}
	blob.SetU32(o, uint32(v))
	return nil
}

// Uint32 parses str as a 32-bit unsigned integer and stores it.
func Uint32(blob *data.Blob, o data.Opt, str string) error {
	v, err := number(str, 0xffffffff)
	if err != nil {
		return err
	}
	blob.SetU32(o, uint32(v))
	return nil
}

// Uint64 parses str as a 64-bit unsigned integer and stores it.
func Uint64(blob *data.Blob, o data.Opt, str string) error {
	v, err := number(str, 0)
	if err != nil {
		return err
	}
	blob.SetU64(o, v)
	return nil
}

// Timeout parses str as a timeout in seconds, bounded so the value fits
// the kernel's signed-jiffies conversion ((UINT_MAX>>1)/1000 seconds),
// and stores it as a 32-bit value.
func Timeout(blob *data.Blob, o data.Opt, str string) error {
	const maxTimeoutSeconds = (0xffffffff >> 1) / 1000
	v, err := number(str, maxTimeoutSeconds)
	if err != nil {
		return err
	}
	blob.SetU32(o, uint32(v))
	return nil
}
