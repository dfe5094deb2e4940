// Package netlink implements transport.Transport against a real netlink
// socket, the way the original library talks to its kernel module. The
// socket family and the syscalls it needs are Linux-only; other
// platforms get a stub that always reports ErrUnsupported so callers
// still link.
package netlink

import (
	"errors"

	"github.com/cbdog94/dset/internal/wire"
)

// ErrUnsupported is returned by every Transport method on platforms
// without a real netlink socket (anything but linux).
var ErrUnsupported = errors.New("netlink: transport not supported on this platform")

// ErrShortWrite/ErrShortRead report a send or receive that moved fewer
// bytes than the caller asked for.
var (
	ErrShortWrite = errors.New("netlink: short write to socket")
	ErrShortRead  = errors.New("netlink: short read from socket")
)

// protocolNumber is this subsystem's netlink protocol number. Real
// netlink protocols are small integers registered with the kernel at
// module-load time (NETLINK_ROUTE is 0, NETLINK_NETFILTER is 12, ...);
// this one is reserved for the dset kernel module the same way.
const protocolNumber = 31

// BufferSize is the default per-message buffer, matching the session's
// default send/receive buffer (one memory page).
const BufferSize = 4096

// fillGenericHeader writes the 8-byte generic header every message
// opens with, shared by both platform-specific Transport
// implementations.
func fillGenericHeader(cmd wire.Command, buf []byte) error {
	h := wire.Header{
		Family:  2, // NFPROTO_IPV4-equivalent default; caller may overwrite
		Version: 1,
		MsgType: wire.MessageType(cmd),
	}
	return h.Encode(buf)
}
