package dset

import (
	"errors"

	"github.com/cbdog94/dset/pkg/dset/session"
	"github.com/cbdog94/dset/pkg/dset/transport"
)

// ExitCode mirrors the original driver's four-way exit status, per
// spec.md §6 ("Exit codes: 0 success, 1 generic, 2 parameter problem,
// 3 version problem, 4 session problem").
type ExitCode int

const (
	ExitSuccess ExitCode = 0
	ExitGeneric ExitCode = 1
	ExitParameter ExitCode = 2
	ExitVersion ExitCode = 3
	ExitSession ExitCode = 4
)

// ErrQuit is returned internally by ParseArgv for the "quit" command so
// ParseStream can break its read loop without ExitCode having to carry a
// fifth, driver-only meaning.
var ErrQuit = errors.New("dset: quit")

// Dset is the top-level library handle: one command driver bound to one
// session. Exported so embedders can drive a session without going
// through cmd/dset at all.
type Dset struct {
	Session *session.Session

	filePath string
}

// New returns a Dset wired to a fresh session over t. Callers still need
// Init before issuing any command.
func New(t transport.Transport) *Dset {
	return &Dset{Session: session.New(t)}
}

// FilePath returns the path given to the "-f/-file" environment option,
// or "" if none was given. Only restore reads it (from stdin when it is
// empty); save output always goes through the session's print callback.
func (d *Dset) FilePath() string { return d.filePath }

// Init opens the underlying transport.
func (d *Dset) Init() error { return d.Session.Init() }

// Fini flushes any buffered restore-mode aggregation and releases the
// transport.
func (d *Dset) Fini() error {
	_ = d.Session.Commit()
	return d.Session.Fini()
}
