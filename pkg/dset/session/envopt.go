package session

// EnvOpt is one bit of the session's environment-option word, mirroring
// enum dset_envopt: behavior that applies across every command issued on
// the session rather than to a single one.
type EnvOpt uint8

const (
	// EnvSorted requests stable, sorted member listing for hash:* types.
	EnvSorted EnvOpt = 1 << iota
	// EnvQuiet suppresses the "is/is not in set" TEST report.
	EnvQuiet
	// EnvResolve resolves IPs to names in output (kept for parity with the
	// original; this module's only built-in type has nothing to resolve).
	EnvResolve
	// EnvExist records the exist option. No command consults it: a kernel
	// "already exists" reply is reported as an error whether or not it is
	// set.
	EnvExist
	// EnvListSetname records the name-only option. LIST/SAVE output does
	// not consult it and prints the full listing.
	EnvListSetname
	// EnvListHeader restricts LIST output to the header block, omitting
	// members.
	EnvListHeader
)

// EnvTest reports whether opt is set.
func (s *Session) EnvTest(opt EnvOpt) bool {
	return s.envopts.Test(opt)
}

// Test reports whether opt is set in the word.
func (e EnvOpt) Test(opt EnvOpt) bool { return e&opt != 0 }

// EnvSet turns opt on.
func (s *Session) EnvSet(opt EnvOpt) {
	s.envopts |= opt
}

// EnvUnset turns opt off.
func (s *Session) EnvUnset(opt EnvOpt) {
	s.envopts &^= opt
}
