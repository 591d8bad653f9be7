// internal/dcc/encode.go
package dcc

// Pure encoding. No IO. No state.

// ValidateAddress checks a multi-function decoder address.
func ValidateAddress(addr int) error {
	if addr < MinAddress || addr > MaxLongAddress {
		return ErrInvalidAddress
	}
	return nil
}

// IsLongAddress reports whether addr needs two-byte framing.
func IsLongAddress(addr int) bool {
	return addr >= MinLongAddress
}

// EncodeAddress frames a decoder address.
//
// Short (1-127):        [addr]
// Long  (128-0x27FF):   [0xC0 | addr>>8, addr & 0xFF]
func EncodeAddress(addr int) ([]byte, error) {
	if err := ValidateAddress(addr); err != nil {
		return nil, err
	}
	if !IsLongAddress(addr) {
		return []byte{byte(addr)}, nil
	}
	return []byte{
		longAddressMarker | byte(addr>>8),
		byte(addr & 0xFF),
	}, nil
}

// SpeedInstruction builds the trailing byte of a 128-step speed packet.
func SpeedInstruction(dir Direction, speed int) (byte, error) {
	if !dir.Valid() {
		return 0, ErrInvalidDirection
	}
	if speed < 0 || speed > MaxSpeed {
		return 0, ErrInvalidSpeed
	}
	var b byte
	if dir == Forward {
		b = forwardBit
	}
	return b | byte(speed&0x7F), nil
}

// EncodeSpeed returns the two instruction bytes of a 128-step speed packet.
func EncodeSpeed(dir Direction, speed int) ([]byte, error) {
	inst, err := SpeedInstruction(dir, speed)
	if err != nil {
		return nil, err
	}
	return []byte{Speed128Selector, inst}, nil
}

// FunctionMask maps a group 1 function number to its instruction bit.
func FunctionMask(index int) (byte, error) {
	if index < 0 || index > MaxFunctionIndex {
		return 0, ErrInvalidFunction
	}
	return functionMasks[index], nil
}

func validateState(state int) error {
	if state != 0 && state != 1 {
		return ErrInvalidState
	}
	return nil
}

// EncodeFunctionGroup1 returns the instruction byte for a fresh group 1
// command with only the requested function set (or none when state is 0).
func EncodeFunctionGroup1(index, state int) (byte, error) {
	return ApplyFunction(FunctionGroup1Base, index, state)
}

// ApplyFunction sets or clears one function bit of an existing group 1
// instruction byte, leaving the other functions untouched.
func ApplyFunction(inst byte, index, state int) (byte, error) {
	mask, err := FunctionMask(index)
	if err != nil {
		return 0, err
	}
	if err := validateState(state); err != nil {
		return 0, err
	}
	if state == 1 {
		return inst | mask, nil
	}
	return inst &^ mask, nil
}

// Checksum is the XOR of every payload byte.
func Checksum(payload []byte) byte {
	var c byte
	for _, b := range payload {
		c ^= b
	}
	return c
}

// Packet returns the full payload (address + instructions, no checksum).
func (c SpeedDirection) Packet() ([]byte, error) {
	addr, err := EncodeAddress(c.Address)
	if err != nil {
		return nil, err
	}
	inst, err := EncodeSpeed(c.Direction, c.Speed)
	if err != nil {
		return nil, err
	}
	return append(addr, inst...), nil
}

// Key returns the registry key of the command.
func (c SpeedDirection) Key() Key {
	return Key{Class: ClassSpeed, Address: c.Address}
}

// Packet returns the full payload (address + instruction, no checksum).
func (c FunctionGroup1) Packet() ([]byte, error) {
	addr, err := EncodeAddress(c.Address)
	if err != nil {
		return nil, err
	}
	inst, err := EncodeFunctionGroup1(c.Index, c.State)
	if err != nil {
		return nil, err
	}
	return append(addr, inst), nil
}

// Key returns the registry key of the command.
func (c FunctionGroup1) Key() Key {
	return Key{Class: ClassFunctionGroup1, Address: c.Address}
}
