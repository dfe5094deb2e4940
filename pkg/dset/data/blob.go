package data

import "fmt"

// Blob is the typed option bag for one in-flight command. It is created
// empty per session, reset after every completed command, and destroyed
// with the session — see pkg/dset/session.Session.
//
// Every option kind maps to exactly one of the typed slots below, except
// for the handful realized as bits inside the two aggregate flag words
// (OptFlags / OptCadtFlags); those also mark their Opt present so callers
// can test either representation uniformly (spec.md §3, §9 "Tagged options
// with mixed storage").
type Blob struct {
	present uint64
	ignored uint64
	warned  uint64

	strs map[Opt]string
	u8   map[Opt]uint8
	u32  map[Opt]uint32
	u64  map[Opt]uint64
	any  map[Opt]any

	flags     uint32
	cadtFlags uint32
}

// New returns an empty Blob.
func New() *Blob {
	return &Blob{
		strs: make(map[Opt]string),
		u8:   make(map[Opt]uint8),
		u32:  make(map[Opt]uint32),
		u64:  make(map[Opt]uint64),
		any:  make(map[Opt]any),
	}
}

func (b *Blob) markPresent(o Opt) {
	b.present |= o.Flag()
	if top, bit, ok := FlagWordBit(o); ok {
		if top {
			b.flags |= 1 << bit
		} else {
			b.cadtFlags |= 1 << bit
		}
	}
}

// Test reports whether opt currently holds a value, either because it was
// set directly or because its backing flag-word bit is set (e.g. decoded
// from a kernel FLAGS/CADT_FLAGS attribute without an individual Set call).
func (b *Blob) Test(o Opt) bool {
	if b.present&o.Flag() != 0 {
		return true
	}
	if top, bit, ok := FlagWordBit(o); ok {
		if top {
			return b.flags&(1<<bit) != 0
		}
		return b.cadtFlags&(1<<bit) != 0
	}
	return false
}

// SetString stores a string-valued option.
func (b *Blob) SetString(o Opt, v string) {
	b.strs[o] = v
	b.markPresent(o)
}

// GetString returns a string-valued option. ok is false if untested.
// Typename is the one exception noted in spec.md §3 ("test-before-get is
// mandatory except for type-name which may fall back to a stored string"):
// callers may call GetString(OptTypename) without Test first.
func (b *Blob) GetString(o Opt) (string, bool) {
	if !b.Test(o) && o != OptTypename {
		return "", false
	}
	v, ok := b.strs[o]
	return v, ok
}

// SetU8 stores a uint8-valued option (family, revision, revision-min, index).
func (b *Blob) SetU8(o Opt, v uint8) {
	b.u8[o] = v
	b.markPresent(o)
}

// GetU8 returns a uint8-valued option.
func (b *Blob) GetU8(o Opt) (uint8, bool) {
	if !b.Test(o) {
		return 0, false
	}
	v, ok := b.u8[o]
	return v, ok
}

// SetU32 stores a uint32-valued option.
func (b *Blob) SetU32(o Opt, v uint32) {
	b.u32[o] = v
	b.markPresent(o)
}

// GetU32 returns a uint32-valued option.
func (b *Blob) GetU32(o Opt) (uint32, bool) {
	if !b.Test(o) {
		return 0, false
	}
	v, ok := b.u32[o]
	return v, ok
}

// SetU64 stores a uint64-valued option (skbmark).
func (b *Blob) SetU64(o Opt, v uint64) {
	b.u64[o] = v
	b.markPresent(o)
}

// GetU64 returns a uint64-valued option.
func (b *Blob) GetU64(o Opt) (uint64, bool) {
	if !b.Test(o) {
		return 0, false
	}
	v, ok := b.u64[o]
	return v, ok
}

// SetAny stores a pointer-valued option: the resolved *types.Descriptor
// (OptType) or the parsed element parts (OptElem). Kept as `any` here so
// this low-level package does not depend on the type registry.
func (b *Blob) SetAny(o Opt, v any) {
	b.any[o] = v
	b.markPresent(o)
}

// GetAny returns a pointer-valued option.
func (b *Blob) GetAny(o Opt) (any, bool) {
	if !b.Test(o) {
		return nil, false
	}
	v, ok := b.any[o]
	return v, ok
}

// PresentMask returns the raw present bitset, for check-mandatory/
// check-allowed menu validation (pkg/dset/types.Menu) which needs to
// reason about the whole set of options at once rather than one at a
// time through Test.
func (b *Blob) PresentMask() uint64 { return b.present }

// Flags returns the top-level aggregate flag word (e.g. OptExist).
func (b *Blob) Flags() uint32 { return b.flags }

// CadtFlags returns the create/add-time aggregate flag word.
func (b *Blob) CadtFlags() uint32 { return b.cadtFlags }

// SetFlags overwrites the top-level flag word directly, as happens when
// decoding a kernel FLAGS attribute (internal/attr).
func (b *Blob) SetFlags(v uint32) {
	b.flags = v
	b.present |= OptFlags.Flag()
}

// SetCadtFlags overwrites the CADT flag word directly.
func (b *Blob) SetCadtFlags(v uint32) {
	b.cadtFlags = v
	b.present |= OptCadtFlags.Flag()
}

// Ignored marks opt as silently dropped for backward compatibility and
// reports whether a warning for it has already been emitted this session,
// marking it emitted as a side effect. Preserves the source's "at most one
// warning per option" behavior while keeping the two concerns (dropped vs.
// already-warned) in separate bitsets, per spec.md §9's open question.
func (b *Blob) Ignored(o Opt) (alreadyWarned bool) {
	b.ignored |= o.Flag()
	already := b.warned&o.Flag() != 0
	b.warned |= o.Flag()
	return already
}

// IsIgnored reports whether opt was dropped as a legacy/no-op option.
func (b *Blob) IsIgnored(o Opt) bool {
	return b.ignored&o.Flag() != 0
}

// Reset clears every bit and zero-initializes storage, ready for the next
// command. The ignored/warned bitsets persist across Reset since warning
// cardinality is scoped to the whole session, not a single command.
func (b *Blob) Reset() {
	b.present = 0
	b.flags = 0
	b.cadtFlags = 0
	for k := range b.strs {
		delete(b.strs, k)
	}
	for k := range b.u8 {
		delete(b.u8, k)
	}
	for k := range b.u32 {
		delete(b.u32, k)
	}
	for k := range b.u64 {
		delete(b.u64, k)
	}
	for k := range b.any {
		delete(b.any, k)
	}
}

// Setname is a shortcut for the common OptSetname string lookup.
func (b *Blob) Setname() string {
	v, _ := b.GetString(OptSetname)
	return v
}

// String implements fmt.Stringer for debugging.
func (b *Blob) String() string {
	return fmt.Sprintf("Blob{present=%064b}", b.present)
}
