package parse

import (
	"strings"

	"github.com/cbdog94/dset/pkg/dset/data"
)

// MaxNameLen is the size of the wire protocol's fixed-size name field,
// terminating NUL included, so a set name may be at most MaxNameLen-1
// bytes long (the original library's
// DSET_MAXNAMELEN, inherited unchanged from the ipset lineage this
// protocol is modeled on).
const MaxNameLen = 32

func checkSetname(str string) error {
	if len(str) > MaxNameLen-1 {
		return syntaxErr("setname '%s' is longer than %d characters", str, MaxNameLen-1)
	}
	return nil
}

// Setname parses str as a plain set name and stores it under o (used for
// OptSetname, OptName, OptSetname2).
func Setname(blob *data.Blob, o data.Opt, str string) error {
	if err := checkSetname(str); err != nil {
		return err
	}
	blob.SetString(o, str)
	return nil
}

// Domain stores str verbatim as a domain-name element; the wire protocol
// does not itself validate domain syntax, leaving that to the kernel.
func Domain(blob *data.Blob, str string) error {
	blob.SetString(data.OptDomain, str)
	return nil
}

// Before parses str as a list:set "insert before" reference name. Errors
// if a conflicting "before"/"after" reference was already set this
// command (the original C parser only warns here and keeps going; this
// port treats it as a hard error, since silently accepting a
// self-contradictory command is not a behavior worth preserving).
func Before(blob *data.Blob, str string) error {
	if blob.Test(data.OptNameref) {
		return syntaxErr("mixed syntax, before|after option already used")
	}
	if err := checkSetname(str); err != nil {
		return err
	}
	blob.SetString(data.OptBefore, str)
	blob.SetString(data.OptNameref, str)
	return nil
}

// After parses str as a list:set "insert after" reference name.
func After(blob *data.Blob, str string) error {
	if blob.Test(data.OptNameref) {
		return syntaxErr("mixed syntax, before|after option already used")
	}
	if err := checkSetname(str); err != nil {
		return err
	}
	blob.SetString(data.OptNameref, str)
	return nil
}

// NameCompat parses the compatibility "setname[,before|after,setname]"
// pattern accepted in place of a plain element for list:set sets.
func NameCompat(blob *data.Blob, str string) error {
	if blob.Test(data.OptNameref) {
		return syntaxErr("mixed syntax, before|after option already used")
	}

	parts := strings.SplitN(str, ",", 3)
	name := parts[0]
	if err := checkSetname(name); err != nil {
		return err
	}
	blob.SetString(data.OptName, name)

	if len(parts) == 1 {
		return nil
	}
	if len(parts) != 3 || (parts[1] != "before" && parts[1] != "after") {
		return syntaxErr("you must specify elements as setname,[before|after],setname")
	}
	ref := parts[2]
	if err := checkSetname(ref); err != nil {
		return err
	}
	blob.SetString(data.OptNameref, ref)
	if parts[1] == "before" {
		blob.SetU8(data.OptBefore, 1)
	}
	return nil
}
