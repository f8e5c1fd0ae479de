package protocol

import "fmt"

// controlSum computes the control sum of a frame body (address digits plus
// instruction, everything between the initiator and the sum itself).
//
// The sum is the total of the ASCII codes of the body characters reduced
// modulo 256. The device manual phrases the reduction as "subtract 256 while
// the sum is greater than 256", which is the same value for every sum it can
// render in two hex digits; modulo keeps the 2-character field well defined
// in the remaining corner.
func controlSum(body []byte) byte {
	var sum int
	for _, c := range body {
		sum += int(c)
	}
	return byte(sum % 0x100)
}

// hexByte renders a value as exactly two uppercase hexadecimal digits, the
// representation required for both the address and control sum fields.
func hexByte(v byte) string {
	return fmt.Sprintf("%02X", v)
}
