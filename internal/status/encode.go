// internal/status/encode.go
package status

// Encode converts a Snapshot into the live part of a station status block
// (slots 0 through SlotLive-1). Counters wrap at 32 bits; the entry count
// saturates at 65535.
// No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, SlotLive)

	if s.Power {
		regs[SlotPower] = 1
	}
	regs[SlotHealth] = s.Health
	regs[SlotLastErrorCode] = s.LastErrorCode

	switch {
	case s.Entries < 0:
		regs[SlotEntries] = 0
	case s.Entries > 0xFFFF:
		regs[SlotEntries] = 0xFFFF
	default:
		regs[SlotEntries] = uint16(s.Entries)
	}

	putU32(regs, SlotSentHi, s.Sent)
	putU32(regs, SlotIdleHi, s.Idle)
	putU32(regs, SlotDroppedHi, s.Dropped)

	return regs
}

func putU32(regs []uint16, hi int, v uint64) {
	regs[hi] = uint16(v >> 16)
	regs[hi+1] = uint16(v)
}

// EncodeName packs up to NameMaxChars ASCII characters into SlotNameSlots
// registers, two bytes per register, big-endian. Non-printable bytes become '?'.
func EncodeName(name string) []uint16 {
	out := make([]uint16, SlotNameSlots)

	b := []byte(name)
	if len(b) > NameMaxChars {
		b = b[:NameMaxChars]
	}

	for i := 0; i < len(b); i++ {
		if b[i] < 0x20 || b[i] > 0x7E {
			b[i] = '?'
		}
	}

	for i := 0; i < NameMaxChars; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = b[i]
		}
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}

	return out
}

// Block returns a full status block: live slots, zeroed reserved slots and
// the encoded name.
func Block(s Snapshot, name []uint16) []uint16 {
	regs := make([]uint16, SlotsPerStation)
	copy(regs, Encode(s))
	for i := 0; i < SlotNameSlots && i < len(name); i++ {
		regs[SlotNameStart+i] = name[i]
	}
	return regs
}
