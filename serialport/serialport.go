// Package serialport implements the device.Transport interface on top of a
// physical serial port, using github.com/tarm/serial.
//
// The AC250Kxxx communication specification fixes the line settings: 9600
// baud, 8 data bits, no parity, 1 stop bit, no flow control. Open applies
// them unconditionally; only the port path and the poll timeout vary.
package serialport

import (
	"time"

	"github.com/tarm/serial"
)

// Line settings required by the AC250Kxxx communication specification.
const (
	// BaudRate is the fixed bus speed
	BaudRate = 9600

	// DataBits is the character size
	DataBits = 8

	// DefaultReadTimeout is the port-level poll interval. A single port
	// read returns after this long without bytes; the session keeps
	// polling until its own response window elapses, so this stays well
	// below device.Config.ReadTimeout.
	DefaultReadTimeout = 100 * time.Millisecond
)

// Port is a device.Transport bound to a physical serial port.
type Port struct {
	port *serial.Port
}

// Open opens the serial port at path with the device's fixed line settings.
// readTimeout is the port-level poll interval (DefaultReadTimeout when in
// doubt).
//
// Example:
//
//	port, err := serialport.Open("/dev/ttyS0", serialport.DefaultReadTimeout)
func Open(path string, readTimeout time.Duration) (*Port, error) {
	cfg := &serial.Config{
		Name:        path,
		Baud:        BaudRate,
		Size:        DataBits,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
		ReadTimeout: readTimeout,
	}

	port, err := serial.OpenPort(cfg)
	if err != nil {
		return nil, err
	}

	return &Port{port: port}, nil
}

// Read reads available bytes, returning io.EOF after the poll interval when
// the line is silent.
func (p *Port) Read(b []byte) (int, error) {
	return p.port.Read(b)
}

// Write writes b to the line.
func (p *Port) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Flush discards unread input left on the line by earlier traffic.
func (p *Port) Flush() error {
	return p.port.Flush()
}

// Close releases the port.
func (p *Port) Close() error {
	return p.port.Close()
}
