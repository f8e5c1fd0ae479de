package device

import "fmt"

// TransportError indicates that the physical link failed during a
// transaction. It is fatal: the session does not retry it, since a broken
// link is not bus noise.
type TransportError struct {
	// Op is the transport operation that failed ("write", "read", "flush")
	Op string

	// Err is the underlying transport failure
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NoResponseError indicates that every transaction attempt elapsed without a
// single byte arriving from the bus.
type NoResponseError struct {
	// Attempts is the number of request writes performed
	Attempts int
}

func (e *NoResponseError) Error() string {
	return fmt.Sprintf("no response from device after %d attempts", e.Attempts)
}
