package device

import "io"

// Transport is the raw byte-stream link to the serial bus. It has no framing
// knowledge; the Session does all encoding and decoding.
//
// Read is expected to honor a port-level timeout: returning (0, nil) or
// (0, io.EOF) when no bytes arrive is treated as a poll tick, not a failure.
// The serialport package provides the hardware implementation; tests use
// in-memory mocks.
//
// A Transport handed to a Session is owned by that Session until Close. No
// other reader or writer may touch it for the Session's lifetime.
type Transport interface {
	io.ReadWriteCloser

	// Flush discards any pending unread input.
	Flush() error
}
