package protocol

import "fmt"

// buildFrame assembles a complete request frame around an instruction.
//
// Frame structure:
//
//	[@][ADDR_H][ADDR_L][INSTRUCTION...][SUM_H][SUM_L][CR]
//
// ADDR and SUM are two uppercase hexadecimal digits each; the control sum
// covers everything between the initiator and the sum itself.
func buildFrame(address int, instruction string) ([]byte, error) {
	if !ValidAddress(address) {
		return nil, &InvalidAddressError{Address: address}
	}

	body := hexByte(byte(address)) + instruction

	frame := make([]byte, 0, 1+len(body)+ChecksumDigits+1)
	frame = append(frame, RequestInitiator)
	frame = append(frame, body...)
	frame = append(frame, hexByte(controlSum([]byte(body)))...)
	frame = append(frame, FrameTerminator)

	return frame, nil
}

// BuildGetIdentificationCmd constructs an identification query frame.
// The device answers with its name, model and revision as free text.
func BuildGetIdentificationCmd(address int) ([]byte, error) {
	return buildFrame(address, MsgGetIdentification)
}

// BuildGetVoltageCmd constructs a voltage query frame.
// The device answers with NAPxxx where xxx is the set voltage in Volts.
func BuildGetVoltageCmd(address int) ([]byte, error) {
	return buildFrame(address, MsgGetVoltage)
}

// BuildSetVoltageCmd constructs a set-voltage frame for the given value in
// Volts. The value is validated against the device's rated range before any
// encoding happens.
//
// Example: BuildSetVoltageCmd(10, 100) produces "@0ANAP100E1\r".
func BuildSetVoltageCmd(address, volts int) ([]byte, error) {
	if !ValidVoltage(volts) {
		return nil, &InvalidVoltageError{Volts: volts}
	}
	return buildFrame(address, fmt.Sprintf("%s%0*d", MsgVoltagePrefix, VoltageDigits, volts))
}

// BuildGetOutputCmd constructs an output state query frame.
// The device answers with OUT0 or OUT1.
func BuildGetOutputCmd(address int) ([]byte, error) {
	return buildFrame(address, MsgGetOutput)
}

// BuildSetOutputCmd constructs a frame enabling or disabling the output
// relay.
func BuildSetOutputCmd(address int, on bool) ([]byte, error) {
	if on {
		return buildFrame(address, MsgOutputOn)
	}
	return buildFrame(address, MsgOutputOff)
}
