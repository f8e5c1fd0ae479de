// Package device provides a session-based API for controlling AC250Kxxx
// bench power supplies over a shared serial bus.
//
// # Overview
//
// A Session binds one bus address to one Transport and exposes the device's
// attributes as explicit read/write methods:
//
//	sess.Identification(ctx)       // device name, model, revision
//	sess.Voltage(ctx)              // set output voltage in Volts
//	sess.SetVoltage(ctx, 100)
//	sess.OutputEnabled(ctx)        // output relay state
//	sess.SetOutputEnabled(ctx, true)
//
// Every call is exactly one bus transaction: the request frame is written,
// the response collected within a fixed window, decoded, and returned. There
// is no caching; the physical device can change state from its front panel,
// so the bus is always consulted.
//
// # Failure Model
//
// Validation failures (protocol.InvalidAddressError,
// protocol.InvalidVoltageError) surface before any I/O. A transport write or
// read failure is fatal and returns a *TransportError without retrying.
// Timeouts and undecodable responses are treated as bus noise and retried up
// to the configured budget; exhausting it yields *NoResponseError when the
// bus stayed silent, or the last decode failure
// (protocol.MalformedResponseError, protocol.AddressMismatchError) when
// bytes arrived but never decoded. A device that answers a set instruction
// with Err produces protocol.CommandRefusedError immediately.
//
// # Basic Usage
//
//	port, err := serialport.Open("/dev/ttyS0", serialport.DefaultReadTimeout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sess, err := device.New(port, 10)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sess.Close()
//
//	if err := sess.SetVoltage(context.Background(), 100); err != nil {
//	    log.Fatal(err)
//	}
//
// # Concurrency
//
// The bus is half-duplex and shared: a Session is single-owner by
// construction. The Transport is moved into the Session at New and released
// at Close; nothing else may read or write it in between, and Session
// methods must not be called concurrently.
//
// # Hardware Independence
//
// The package does not open serial ports itself. Any Transport
// implementation works: the serialport package for real hardware, or an
// in-memory mock for tests.
package device
