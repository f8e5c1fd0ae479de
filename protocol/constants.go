package protocol

// Frame structure constants per the AC250Kxxx communication specification.
const (
	// RequestInitiator starts every request frame ('@')
	RequestInitiator = '@'

	// ResponseInitiator starts every response frame ('#')
	ResponseInitiator = '#'

	// FrameTerminator ends every frame (carriage return)
	FrameTerminator = '\r'

	// AddressDigits is the width of the hexadecimal address field
	AddressDigits = 2

	// ChecksumDigits is the width of the hexadecimal control sum field
	ChecksumDigits = 2

	// MinResponseSize is the minimum response frame size in bytes:
	// initiator(1) + address(2) + terminator(1)
	MinResponseSize = 4
)

// Bus address range. Each device on the shared line is configured with an
// address between MinAddress and MaxAddress; the configured address is shown
// on the front panel by holding the Clear button.
const (
	// MinAddress is the lowest assignable device address
	MinAddress = 0

	// MaxAddress is the highest assignable device address
	MaxAddress = 31

	// BroadcastAddress is accepted by every device on the bus. A device
	// never answers a broadcast frame, so a broadcast transaction cannot
	// produce a response.
	BroadcastAddress = 255
)

// Output voltage range accepted by the AC250Kxxx series, in Volts.
// The wire field is three decimal digits; the device class tops out at 250 V.
const (
	// MinVoltage is the lowest settable output voltage
	MinVoltage = 0

	// MaxVoltage is the highest settable output voltage
	MaxVoltage = 250

	// VoltageDigits is the width of the decimal voltage field
	VoltageDigits = 3
)

// Instruction verbs per the AC250Kxxx communication specification.
const (
	// MsgGetIdentification queries the device name, model and revision
	MsgGetIdentification = "ID?"

	// MsgGetVoltage queries the set output voltage
	MsgGetVoltage = "NAP???"

	// MsgVoltagePrefix prefixes both the set-voltage instruction and the
	// voltage query reply; followed by three decimal digits
	MsgVoltagePrefix = "NAP"

	// MsgGetOutput queries the output relay state
	MsgGetOutput = "OUT?"

	// MsgOutputOn enables the output relay
	MsgOutputOn = "OUT1"

	// MsgOutputOff disables the output relay
	MsgOutputOff = "OUT0"
)

// Acknowledgment replies sent by the device for set instructions.
const (
	// AckOK acknowledges an accepted instruction
	AckOK = "OK"

	// AckErr acknowledges a refused instruction
	AckErr = "Err"
)

// ValidAddress reports whether address is usable on the bus: the assignable
// range plus the broadcast address.
func ValidAddress(address int) bool {
	return (address >= MinAddress && address <= MaxAddress) || address == BroadcastAddress
}

// ValidVoltage reports whether volts is inside the device's rated range.
func ValidVoltage(volts int) bool {
	return volts >= MinVoltage && volts <= MaxVoltage
}
