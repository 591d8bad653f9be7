// internal/dcc/constants.go
package dcc

// NMRA S-9.2 / S-9.2.1 constants used by the encoder.
// These values define the protocol and MUST NOT be configurable.

// ---- ADDRESSING ----

// MinAddress is the lowest addressable multi-function decoder.
// Address 0 (broadcast / analog stretching) is not supported.
const MinAddress = 1

// MinLongAddress is the first address that requires long (two byte) framing.
const MinLongAddress = 128

// MaxLongAddress is the last valid long address (inclusive).
const MaxLongAddress = 0x27FF

// longAddressMarker occupies the top two bits of the first long-address byte.
const longAddressMarker = 0xC0

// ---- INSTRUCTIONS ----

// Speed128Selector is the first instruction byte of a 128 speed step packet.
const Speed128Selector byte = 0x3F

// MaxSpeed is the highest 128-step speed value.
const MaxSpeed = 127

// forwardBit marks forward direction in the speed instruction byte.
const forwardBit byte = 0x80

// FunctionGroup1Base is the instruction prefix for function group 1 (F0-F4).
const FunctionGroup1Base byte = 0x80

// MaxFunctionIndex is the highest function number in group 1.
const MaxFunctionIndex = 4

// functionMasks translates a group 1 function number to its instruction bit.
// F0 (usually the headlight) lives in the high nibble.
var functionMasks = [MaxFunctionIndex + 1]byte{0x10, 0x01, 0x02, 0x04, 0x08}

// ---- PACKETS ----

// MaxPayload is the longest payload accepted for transmission, checksum excluded.
const MaxPayload = 5

// IdleAddress and IdleInstruction form the NMRA idle packet.
const (
	IdleAddress     byte = 0xFF
	IdleInstruction byte = 0x00
)

// IdlePacket returns a fresh copy of the idle packet payload.
func IdlePacket() []byte {
	return []byte{IdleAddress, IdleInstruction}
}
