package protocol

import "fmt"

// InvalidAddressError indicates a bus address outside the protocol range.
// Raised before any bytes touch the bus.
type InvalidAddressError struct {
	// Address is the rejected value
	Address int
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid bus address %d: valid range is %d-%d or broadcast %d",
		e.Address, MinAddress, MaxAddress, BroadcastAddress)
}

// InvalidVoltageError indicates a set-voltage value outside the device's
// rated range. Raised before any bytes touch the bus.
type InvalidVoltageError struct {
	// Volts is the rejected value
	Volts int
}

func (e *InvalidVoltageError) Error() string {
	return fmt.Sprintf("invalid voltage %d V: valid range is %d-%d V",
		e.Volts, MinVoltage, MaxVoltage)
}

// MalformedResponseError indicates bytes that do not form a complete,
// well-formed response frame, or a frame whose payload does not match the
// reply shape of the command that was sent.
type MalformedResponseError struct {
	// Reason describes what was wrong with the bytes
	Reason string

	// Frame is the raw bytes that failed to decode (may be truncated noise)
	Frame []byte
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %s (raw %q)", e.Reason, e.Frame)
}

// AddressMismatchError indicates a structurally valid response frame that
// was sent by a different device than the one queried.
type AddressMismatchError struct {
	// Want is the address the request was sent to
	Want int

	// Got is the address embedded in the response
	Got int
}

func (e *AddressMismatchError) Error() string {
	return fmt.Sprintf("response from address %d, queried address %d", e.Got, e.Want)
}

// CommandRefusedError indicates the device received a set instruction
// cleanly and answered with the Err acknowledgment. The exchange itself
// succeeded, so the condition is never retried.
type CommandRefusedError struct {
	// Instruction is the refused instruction verb, when known
	Instruction string
}

func (e *CommandRefusedError) Error() string {
	if e.Instruction == "" {
		return "device refused the instruction"
	}
	return fmt.Sprintf("device refused instruction %q", e.Instruction)
}
