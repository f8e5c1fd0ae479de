package protocol

import (
	"bytes"
	"strconv"
)

// ParseResponse validates a raw response frame and extracts the instruction
// payload, checking that the embedded address matches the queried device.
//
// Response frame structure:
//
//	[#][ADDR_H][ADDR_L][PAYLOAD...][CR]
//
// Responses carry no control sum. Bytes preceding the initiator are line
// noise and are skipped; everything between the address field and the first
// terminator is the payload.
func ParseResponse(address int, frame []byte) (string, error) {
	start := bytes.IndexByte(frame, ResponseInitiator)
	if start < 0 {
		return "", &MalformedResponseError{Reason: "missing frame initiator", Frame: frame}
	}

	end := bytes.IndexByte(frame[start:], FrameTerminator)
	if end < 0 {
		return "", &MalformedResponseError{Reason: "missing frame terminator", Frame: frame}
	}
	end += start

	if end-start+1 < MinResponseSize {
		return "", &MalformedResponseError{Reason: "frame too short", Frame: frame[start : end+1]}
	}

	addrField := string(frame[start+1 : start+1+AddressDigits])
	responder, err := strconv.ParseUint(addrField, 16, 8)
	if err != nil {
		return "", &MalformedResponseError{Reason: "address field is not hexadecimal", Frame: frame[start : end+1]}
	}

	if int(responder) != address {
		return "", &AddressMismatchError{Want: address, Got: int(responder)}
	}

	payload := string(frame[start+1+AddressDigits : end])
	if payload == "" {
		return "", &MalformedResponseError{Reason: "empty payload", Frame: frame[start : end+1]}
	}

	return payload, nil
}

// ParseIdentificationResponse extracts the identification text from an ID?
// reply. The device returns free text (name, model, revision), so any
// non-empty payload is valid.
func ParseIdentificationResponse(payload string) (string, error) {
	if payload == "" {
		return "", &MalformedResponseError{Reason: "empty identification"}
	}
	return payload, nil
}

// ParseVoltageResponse extracts the voltage in Volts from a NAP??? reply.
//
// Payload format: NAP followed by exactly three decimal digits.
// The rendering is the exact inverse of the set-voltage encoding, so a value
// round-trips unchanged through encode and decode.
func ParseVoltageResponse(payload string) (int, error) {
	if len(payload) != len(MsgVoltagePrefix)+VoltageDigits ||
		payload[:len(MsgVoltagePrefix)] != MsgVoltagePrefix {
		return 0, &MalformedResponseError{Reason: "not a voltage reply", Frame: []byte(payload)}
	}

	volts, err := strconv.Atoi(payload[len(MsgVoltagePrefix):])
	if err != nil {
		return 0, &MalformedResponseError{Reason: "voltage field is not decimal", Frame: []byte(payload)}
	}

	return volts, nil
}

// ParseOutputResponse extracts the output relay state from an OUT? reply.
//
// Payload format: OUT0 (disabled) or OUT1 (enabled).
func ParseOutputResponse(payload string) (bool, error) {
	switch payload {
	case MsgOutputOn:
		return true, nil
	case MsgOutputOff:
		return false, nil
	default:
		return false, &MalformedResponseError{Reason: "not an output state reply", Frame: []byte(payload)}
	}
}

// ParseAckResponse checks the acknowledgment of a set instruction.
// Returns nil for OK, a CommandRefusedError for Err, and a
// MalformedResponseError for anything else.
func ParseAckResponse(payload string) error {
	switch payload {
	case AckOK:
		return nil
	case AckErr:
		return &CommandRefusedError{}
	default:
		return &MalformedResponseError{Reason: "not an acknowledgment", Frame: []byte(payload)}
	}
}
