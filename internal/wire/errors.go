package wire

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("wire: truncated buffer")
	// ErrBoundsCheck indicates a buffer access exceeded bounds.
	ErrBoundsCheck = errors.New("wire: buffer bounds exceeded")
	// ErrBufferFull indicates appending would exceed the message's buffer budget.
	ErrBufferFull = errors.New("wire: buffer full")
)
