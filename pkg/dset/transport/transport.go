// Package transport defines the boundary between a session and however it
// actually reaches the kernel (component C3): a small interface a real
// socket transport and an in-memory test double both satisfy.
package transport

import "github.com/cbdog94/dset/internal/wire"

// Transport delivers one encoded request buffer to the kernel and
// returns the kernel's reply, filling in the generic header each command
// needs before it is sent.
type Transport interface {
	// Init prepares the transport for use (opening a socket, etc).
	Init() error
	// FillHeader writes the generic message header for cmd into the
	// front of buf, leaving room for attributes to follow.
	FillHeader(cmd wire.Command, buf []byte) error
	// Query sends buf and returns the kernel's first reply payload.
	Query(buf []byte) ([]byte, error)
	// Recv reads one further reply payload without sending anything,
	// draining a multi-message exchange (LIST/SAVE) the same way a real
	// netlink socket is read with repeated recv calls after a single send.
	Recv() ([]byte, error)
	// Fini releases any resources Init acquired.
	Fini() error
}
