// internal/wire/decoder.go
package wire

// MinPreambleBits is the shortest preamble a decoder accepts (NMRA S-9.2).
const MinPreambleBits = 10

// Packet is one packet recovered from a line bit stream.
type Packet struct {
	Bytes []byte // address, instructions and checksum
}

// Payload returns the packet without its checksum byte.
func (p Packet) Payload() []byte {
	if len(p.Bytes) == 0 {
		return nil
	}
	return p.Bytes[:len(p.Bytes)-1]
}

// ChecksumOK reports whether the XOR of every byte, checksum included, is zero.
func (p Packet) ChecksumOK() bool {
	var c byte
	for _, b := range p.Bytes {
		c ^= b
	}
	return len(p.Bytes) >= 2 && c == 0
}

type decodeState int

const (
	stateHunt decodeState = iota
	stateByte
	stateAfterByte
)

// Decoder rebuilds packets from a stream of line bits the way a track
// decoder would. It is used to verify engine output.
type Decoder struct {
	state decodeState
	ones  int
	cur   byte
	nbits int
	buf   []byte
}

// Push feeds one bit. It returns a packet and true when an end bit closes one.
func (d *Decoder) Push(bit bool) (Packet, bool) {
	switch d.state {
	case stateHunt:
		if bit {
			d.ones++
			return Packet{}, false
		}
		if d.ones >= MinPreambleBits {
			// start bit of the first byte
			d.state = stateByte
			d.buf = d.buf[:0]
			d.cur, d.nbits = 0, 0
		}
		d.ones = 0

	case stateByte:
		d.cur <<= 1
		if bit {
			d.cur |= 1
		}
		d.nbits++
		if d.nbits == 8 {
			d.buf = append(d.buf, d.cur)
			d.state = stateAfterByte
		}

	case stateAfterByte:
		if !bit {
			// start bit of the next byte
			d.state = stateByte
			d.cur, d.nbits = 0, 0
			return Packet{}, false
		}
		// end bit; it may also count as the first preamble bit
		out := Packet{Bytes: append([]byte(nil), d.buf...)}
		d.state = stateHunt
		d.ones = 1
		return out, true
	}
	return Packet{}, false
}

// PushAll feeds bits and returns every completed packet.
func (d *Decoder) PushAll(bits []bool) []Packet {
	var out []Packet
	for _, b := range bits {
		if p, ok := d.Push(b); ok {
			out = append(out, p)
		}
	}
	return out
}
