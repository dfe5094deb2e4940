// Package session implements the session and message pipeline (component
// C7): the single stateful object a command driver talks to, which owns
// the kernel transport, the in-flight data blob, the type registry and
// name cache, and the buffered send/receive path described in
// SPEC_FULL.md §4.4.
package session

import (
	"errors"
	"fmt"
	"os"

	"github.com/cbdog94/dset/internal/attr"
	"github.com/cbdog94/dset/internal/wire"
	"github.com/cbdog94/dset/pkg/dset/data"
	"github.com/cbdog94/dset/pkg/dset/transport"
	"github.com/cbdog94/dset/pkg/dset/types"
)

// protocolVersion is the protocol version this library speaks, offered
// during the handshake as the userspace half of the negotiated window.
const protocolVersion = 1

// bufSize is the page-sized send buffer every session is pinned to at
// init, per SPEC_FULL.md §5 ("the send buffer is pinned at session
// init (one page)").
const bufSize = 4096

// errorReserve is kept free in the send buffer for a trailing error
// reply, mirroring internal/attr's MaxErrorTrailer budget.
const errorReserve = attr.MaxErrorTrailer

// Session is the stateful center of one conversation with the kernel
// module: exactly one command in flight at a time (SPEC_FULL.md §5).
type Session struct {
	transport transport.Transport
	Registry  *types.Registry
	Names     *types.NameCache

	data  *data.Blob
	hdr   [wire.HeaderSize]byte
	buf   []byte
	enc   *attr.Encoder

	cmd           wire.Command
	lineno        uint32
	savedSetname  string
	savedType     *types.Descriptor
	printedSet    bool
	versionChecked bool
	protocol      uint8

	envopts EnvOpt
	mode    OutputMode
	out     *output
	outfn   PrintOutFn

	reportMsg string
	errType   ErrType

	xmlRootOpen bool
}

// PrintOutFn receives formatted session output; the default writes to
// os.Stdout exactly the way the original's default_print_outfn writes to
// session->ostream.
type PrintOutFn func(s string)

// New returns a Session bound to t, with an empty data blob and a fresh
// type registry containing only the built-in types. Callers add further
// type descriptors via Registry.Add before use.
func New(t transport.Transport) *Session {
	reg := types.NewRegistry()
	types.RegisterBuiltins(reg)

	s := &Session{
		transport: t,
		Registry:  reg,
		Names:     types.NewNameCache(),
		data:      data.New(),
		buf:       make([]byte, 0, bufSize-wire.HeaderSize),
		protocol:  protocolVersion,
	}
	s.enc = attr.NewEncoder(s.buf, errorReserve)
	s.out = newOutput()
	s.outfn = func(str string) { fmt.Fprint(os.Stdout, str) }
	return s
}

// Data returns the session's data blob, the field bag every parser and
// printer reads and writes through.
func (s *Session) Data() *data.Blob { return s.data }

// SavedType returns the type descriptor saved by the last dispatched
// command, needed to decode type-specific error codes in restore mode.
func (s *Session) SavedType() *types.Descriptor { return s.savedType }

// Lineno sets the current line number, so restore-mode parser errors are
// reported against the right input line.
func (s *Session) Lineno(n uint32) { s.lineno = n }

// Print sends one formatted chunk through the session's current output
// callback, the same path LIST/SAVE rows use, for one-off driver messages
// (e.g. the "version" command's negotiated-version line) that aren't part
// of a listed set.
func (s *Session) Print(str string) { s.outfn(str) }

// SetPrintOutFn overrides where rendered output goes; outfn receives every
// formatted chunk the session emits.
func (s *Session) SetPrintOutFn(outfn PrintOutFn) {
	if outfn == nil {
		outfn = func(str string) { fmt.Fprint(os.Stdout, str) }
	}
	s.outfn = outfn
}

// Init opens the underlying transport.
func (s *Session) Init() error {
	return s.transport.Init()
}

// Fini releases the transport. Commands still buffered for restore-mode
// aggregation are not sent; Dset.Fini commits them first.
func (s *Session) Fini() error {
	return s.transport.Fini()
}

var (
	// ErrUnknownCommand is returned by Cmd for a command value outside
	// the recognized range.
	ErrUnknownCommand = errors.New("session: unknown command")
	// ErrSessionClosed signals a protocol-level failure that poisoned the
	// session's report, per SPEC_FULL.md §5 ("protocol errors ... poison
	// the session's report").
	ErrSessionClosed = errors.New("session: protocol error")
)
