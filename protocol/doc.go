// Package protocol implements the AC250Kxxx bench supply communication
// protocol.
//
// This package provides functions to build request frames and parse response
// frames for Diametral AC250Kxxx series power sources on a shared multi-drop
// serial bus. It performs no I/O; the device package drives a transport with
// the frames produced here.
//
// # Protocol Overview
//
// The bus speaks an ASCII line protocol:
//
//	Request:  [@][ADDR][INSTRUCTION][SUM][CR]
//	Response: [#][ADDR][PAYLOAD][CR]
//
// Where:
//   - ADDR = device bus address, two uppercase hex digits (0-31, or FF for
//     broadcast)
//   - SUM = control sum of ADDR+INSTRUCTION, ASCII codes summed modulo 256,
//     two uppercase hex digits
//   - CR = carriage return terminator
//
// Responses echo the responding device's address and carry no control sum.
//
// # Command Builders
//
// Use the Build* functions to create request frames:
//
//	frame, err := protocol.BuildSetVoltageCmd(10, 100) // "@0ANAP100E1\r"
//	frame, err := protocol.BuildGetOutputCmd(10)
//	// ... etc
//
// Builders validate the address and any carried value before encoding, so an
// out-of-range input fails without producing bytes.
//
// # Response Parsers
//
// ParseResponse validates the frame and the responder address:
//
//	payload, err := protocol.ParseResponse(10, raw)
//
// then the Parse* functions decode the command-specific payload:
//
//	volts, err := protocol.ParseVoltageResponse(payload)
//	on, err := protocol.ParseOutputResponse(payload)
//	err = protocol.ParseAckResponse(payload)
//
// # Error Handling
//
// Decode failures are structured: MalformedResponseError for bytes that do
// not form a valid frame, AddressMismatchError for a frame from the wrong
// device, CommandRefusedError for a clean Err acknowledgment. The device
// package treats the first two as transient bus noise and retries them.
package protocol
