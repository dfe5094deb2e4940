//go:build !linux

package netlink

import "github.com/cbdog94/dset/internal/wire"

// Transport is the non-Linux stand-in: there is no real netlink socket
// to open, so every method reports ErrUnsupported. Build the session
// against transport/faketransport on these platforms instead.
type Transport struct{}

// New returns an unopened Transport.
func New() *Transport { return &Transport{} }

func (t *Transport) Init() error { return ErrUnsupported }

func (t *Transport) FillHeader(cmd wire.Command, buf []byte) error {
	return ErrUnsupported
}

func (t *Transport) Query(buf []byte) ([]byte, error) {
	return nil, ErrUnsupported
}

func (t *Transport) Recv() ([]byte, error) {
	return nil, ErrUnsupported
}

func (t *Transport) Fini() error { return ErrUnsupported }
