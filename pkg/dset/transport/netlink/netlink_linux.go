//go:build linux

package netlink

import (
	"golang.org/x/sys/unix"

	"github.com/cbdog94/dset/internal/wire"
)

// Transport is the Linux netlink socket implementation of
// transport.Transport: one AF_NETLINK/SOCK_RAW socket bound to this
// process's pid, talking to the kernel (pid 0) over protocolNumber.
type Transport struct {
	fd int
}

// New returns an unopened Transport; call Init before Query.
func New() *Transport {
	return &Transport{fd: -1}
}

// Init opens and binds the netlink socket.
func (t *Transport) Init() error {
	fd, err := unix.Socket(unix.AF_NETLINK, unix.SOCK_RAW, protocolNumber)
	if err != nil {
		return err
	}
	sa := &unix.SockaddrNetlink{Family: unix.AF_NETLINK}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return err
	}
	t.fd = fd
	return nil
}

// FillHeader writes the generic message header for cmd into buf.
func (t *Transport) FillHeader(cmd wire.Command, buf []byte) error {
	return fillGenericHeader(cmd, buf)
}

// Query sends buf to the kernel and returns its reply.
func (t *Transport) Query(buf []byte) ([]byte, error) {
	dest := &unix.SockaddrNetlink{Family: unix.AF_NETLINK}
	if err := unix.Sendto(t.fd, buf, 0, dest); err != nil {
		return nil, err
	}

	reply := make([]byte, BufferSize)
	n, _, err := unix.Recvfrom(t.fd, reply, 0)
	if err != nil {
		return nil, err
	}
	return reply[:n], nil
}

// Recv reads one further reply from the socket without sending anything,
// the same way mnl_socket_recvfrom is called in a loop to drain a
// multi-message exchange after a single send.
func (t *Transport) Recv() ([]byte, error) {
	reply := make([]byte, BufferSize)
	n, _, err := unix.Recvfrom(t.fd, reply, 0)
	if err != nil {
		return nil, err
	}
	return reply[:n], nil
}

// Fini closes the socket.
func (t *Transport) Fini() error {
	if t.fd < 0 {
		return nil
	}
	err := unix.Close(t.fd)
	t.fd = -1
	return err
}
