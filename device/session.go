package device

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/mkoutny/go-ac250k/protocol"
)

// Session drives one AC250Kxxx power source on a shared serial bus.
// It owns its Transport exclusively for its whole lifetime and executes one
// addressed request/response transaction per accessor call, with a bounded
// retry budget for bus noise.
//
// The bus is half-duplex: transactions never overlap, and each call blocks
// until the device answers or the retry budget is exhausted.
type Session struct {
	transport Transport
	address   int
	config    Config
}

// New creates a Session bound to the given bus address, taking ownership of
// the transport. The address must be in the assignable range 0-31 or the
// broadcast address 255; note that broadcast frames are never answered, so a
// broadcast session can only observe NoResponseError.
//
// Example:
//
//	port, err := serialport.Open("/dev/ttyS0", serialport.DefaultReadTimeout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sess, err := device.New(port, 10, device.WithRetries(3))
func New(transport Transport, address int, opts ...Option) (*Session, error) {
	if transport == nil {
		panic("transport cannot be nil")
	}

	if !protocol.ValidAddress(address) {
		return nil, &protocol.InvalidAddressError{Address: address}
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Session{
		transport: transport,
		address:   address,
		config:    cfg,
	}, nil
}

// Address returns the bus address the session is bound to.
func (s *Session) Address() int {
	return s.address
}

// Close releases the transport. Pending input is discarded first so a later
// session on the same port does not start on a stale partial frame.
func (s *Session) Close() error {
	if err := s.transport.Flush(); err != nil {
		s.logError("flush on close", "error", err.Error())
	}
	return s.transport.Close()
}

// Identification reads the device name, model and revision.
func (s *Session) Identification(ctx context.Context) (string, error) {
	frame, err := protocol.BuildGetIdentificationCmd(s.address)
	if err != nil {
		return "", err
	}

	var id string
	err = s.transact(ctx, frame, func(payload string) error {
		v, err := protocol.ParseIdentificationResponse(payload)
		if err != nil {
			return err
		}
		id = v
		return nil
	})
	if err != nil {
		return "", err
	}

	s.logDebug("identification read", "id", id)
	return id, nil
}

// Voltage reads the set output voltage in Volts. The device is the sole
// source of truth; every call is a fresh bus transaction.
func (s *Session) Voltage(ctx context.Context) (int, error) {
	frame, err := protocol.BuildGetVoltageCmd(s.address)
	if err != nil {
		return 0, err
	}

	var volts int
	err = s.transact(ctx, frame, func(payload string) error {
		v, err := protocol.ParseVoltageResponse(payload)
		if err != nil {
			return err
		}
		volts = v
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logDebug("voltage read", "volts", volts)
	return volts, nil
}

// SetVoltage sets the output voltage in Volts. The value is validated
// against the device's rated range before any bytes are written. The device
// acknowledges the instruction; an unacknowledged set fails like any other
// transaction, and a clean Err acknowledgment surfaces as
// protocol.CommandRefusedError.
func (s *Session) SetVoltage(ctx context.Context, volts int) error {
	frame, err := protocol.BuildSetVoltageCmd(s.address, volts)
	if err != nil {
		return err
	}

	if err := s.transact(ctx, frame, ackDecoder(instructionOf(frame))); err != nil {
		return err
	}

	s.logInfo("voltage set", "volts", volts)
	return nil
}

// OutputEnabled reads the output relay state.
func (s *Session) OutputEnabled(ctx context.Context) (bool, error) {
	frame, err := protocol.BuildGetOutputCmd(s.address)
	if err != nil {
		return false, err
	}

	var on bool
	err = s.transact(ctx, frame, func(payload string) error {
		v, err := protocol.ParseOutputResponse(payload)
		if err != nil {
			return err
		}
		on = v
		return nil
	})
	if err != nil {
		return false, err
	}

	s.logDebug("output state read", "enabled", on)
	return on, nil
}

// SetOutputEnabled switches the output relay on or off, waiting for the
// device's acknowledgment.
func (s *Session) SetOutputEnabled(ctx context.Context, on bool) error {
	frame, err := protocol.BuildSetOutputCmd(s.address, on)
	if err != nil {
		return err
	}

	if err := s.transact(ctx, frame, ackDecoder(instructionOf(frame))); err != nil {
		return err
	}

	s.logInfo("output state set", "enabled", on)
	return nil
}

// transact runs one full transaction: flush stale input, write the request,
// collect the response within the read window, decode. Timeouts and
// undecodable responses spend the retry budget; transport failures and
// device refusals end the transaction immediately.
//
// When the budget runs out the most informative observed failure wins: a
// decode error from any attempt beats the bare timeout.
func (s *Session) transact(ctx context.Context, frame []byte, decode func(payload string) error) error {
	var lastDecodeErr error

	for attempt := 1; attempt <= s.config.Retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Stale bytes from earlier traffic would be misread as the
		// start of this response.
		if err := s.transport.Flush(); err != nil {
			return &TransportError{Op: "flush", Err: err}
		}

		if _, err := s.transport.Write(frame); err != nil {
			return &TransportError{Op: "write", Err: err}
		}

		if s.config.CommandDelay > 0 {
			time.Sleep(s.config.CommandDelay)
		}

		raw, err := s.readFrame()
		if err != nil {
			return &TransportError{Op: "read", Err: err}
		}

		if len(raw) == 0 {
			s.logDebug("response timeout", "attempt", attempt)
			continue
		}

		payload, err := protocol.ParseResponse(s.address, raw)
		if err != nil {
			lastDecodeErr = err
			s.logDebug("undecodable response", "attempt", attempt, "error", err.Error())
			continue
		}

		if err := decode(payload); err != nil {
			if transientDecodeError(err) {
				lastDecodeErr = err
				s.logDebug("unexpected reply shape", "attempt", attempt, "error", err.Error())
				continue
			}
			return err
		}

		return nil
	}

	if lastDecodeErr != nil {
		return lastDecodeErr
	}
	return &NoResponseError{Attempts: s.config.Retries}
}

// readFrame collects bytes until a complete frame arrives or the read
// window elapses. Returns whatever accumulated: empty means a silent bus,
// an unterminated tail means a partial frame for the decoder to reject.
func (s *Session) readFrame() ([]byte, error) {
	deadline := time.Now().Add(s.config.ReadTimeout)
	buf := make([]byte, 0, 64)
	chunk := make([]byte, 64)

	for {
		n, err := s.transport.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			// A frame is complete once a terminator follows the
			// initiator; bare terminators in line noise are not an
			// end of frame.
			if start := bytes.IndexByte(buf, protocol.ResponseInitiator); start >= 0 {
				if bytes.IndexByte(buf[start:], protocol.FrameTerminator) >= 0 {
					return buf, nil
				}
			}
		}
		// tarm/serial reports an elapsed port timeout as io.EOF with
		// zero bytes; that is a poll tick, not a link failure.
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if !time.Now().Before(deadline) {
			return buf, nil
		}
	}
}

// transientDecodeError reports whether a decode failure is retryable bus
// noise rather than a definitive answer.
func transientDecodeError(err error) bool {
	var malformed *protocol.MalformedResponseError
	var mismatch *protocol.AddressMismatchError
	return errors.As(err, &malformed) || errors.As(err, &mismatch)
}

// ackDecoder decodes a set instruction's acknowledgment, tagging a refusal
// with the instruction that was refused.
func ackDecoder(instruction string) func(payload string) error {
	return func(payload string) error {
		err := protocol.ParseAckResponse(payload)
		var refused *protocol.CommandRefusedError
		if errors.As(err, &refused) {
			return &protocol.CommandRefusedError{Instruction: instruction}
		}
		return err
	}
}

// instructionOf extracts the instruction field from a built request frame
// (between the address digits and the control sum).
func instructionOf(frame []byte) string {
	return string(frame[1+protocol.AddressDigits : len(frame)-protocol.ChecksumDigits-1])
}

// logDebug logs a debug message if a logger is configured.
func (s *Session) logDebug(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (s *Session) logInfo(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (s *Session) logError(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Error(msg, keysAndValues...)
	}
}
