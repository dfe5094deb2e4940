// Package faketransport is an in-memory transport.Transport used by
// session tests: it records every request it is sent and returns
// caller-queued replies, so session logic can be exercised without a
// real kernel (or even a real Linux host) present.
package faketransport

import (
	"errors"

	"github.com/cbdog94/dset/internal/wire"
)

// ErrNoReply is returned by Query when the queue is empty.
var ErrNoReply = errors.New("faketransport: no queued reply")

// Transport is a Transport double. Zero value is usable after a call to
// Init.
type Transport struct {
	initialized bool
	Requests    [][]byte // every buffer passed to Query, in order
	replies     [][]byte // queued in FIFO order, consumed by Query
}

// New returns an empty Transport.
func New() *Transport {
	return &Transport{}
}

// Init marks the transport ready; Query before Init panics in spirit
// (returns an error) the same way a real socket would refuse use before
// being opened.
func (t *Transport) Init() error {
	t.initialized = true
	return nil
}

// FillHeader writes the generic header in the real transport's layout —
// faking the transport doesn't mean faking the wire format — but leaves
// Family at zero where the real transport writes a default family.
func (t *Transport) FillHeader(cmd wire.Command, buf []byte) error {
	h := wire.Header{Version: 1, MsgType: wire.MessageType(cmd)}
	return h.Encode(buf)
}

// QueueReply appends a reply to be returned by the next Query call.
func (t *Transport) QueueReply(buf []byte) {
	t.replies = append(t.replies, buf)
}

// Query records buf and returns the next queued reply.
func (t *Transport) Query(buf []byte) ([]byte, error) {
	if !t.initialized {
		return nil, errors.New("faketransport: Query before Init")
	}
	cp := make([]byte, len(buf))
	copy(cp, buf)
	t.Requests = append(t.Requests, cp)

	if len(t.replies) == 0 {
		return nil, ErrNoReply
	}
	reply := t.replies[0]
	t.replies = t.replies[1:]
	return reply, nil
}

// Recv pops and returns the next queued reply without recording a
// request, draining a multi-frame exchange the way repeated reads off a
// real socket would after a single send.
func (t *Transport) Recv() ([]byte, error) {
	if len(t.replies) == 0 {
		return nil, ErrNoReply
	}
	reply := t.replies[0]
	t.replies = t.replies[1:]
	return reply, nil
}

// Fini marks the transport uninitialized; recorded Requests and queued
// replies are kept.
func (t *Transport) Fini() error {
	t.initialized = false
	return nil
}
