// internal/wire/word.go

// Package wire defines the 32-bit control words exchanged between the packet
// scheduler and the bitstream timing engine.
//
// Word layout (MSB first):
//
//	bit 31      marker: 1 = preamble/padding, 0 = data byte
//	bit 30      final byte (data words only): append one '1' end bit
//	bits 15..0  preamble/padding: 16 line bits emitted verbatim
//	bits 8..0   data: implicit '0' start bit + 8 data bits
package wire

import (
	"errors"
	"fmt"

	"github.com/tamzrod/dcc-station/internal/dcc"
)

// Word is one engine control word.
type Word uint32

const (
	markerBit    Word = 1 << 31
	finalByteBit Word = 1 << 30

	// PreambleWord emits 16 '1' bits (NMRA requires at least 14).
	PreambleWord Word = 0x8000FFFF

	// PaddingWord emits 16 '0' bits, used as inter-packet filler.
	PaddingWord Word = 0x80000000

	// SegmentBits is the number of line bits in a preamble/padding word.
	SegmentBits = 16

	// DataBits is the number of line bits in a data word (start + 8).
	DataBits = 9
)

// MaxPacketWords is the largest number of words one packet needs:
// preamble + MaxPayload data bytes + checksum.
const MaxPacketWords = 1 + dcc.MaxPayload + 1

var ErrPayloadTooLong = errors.New("wire: payload exceeds 5 bytes")

// Data builds a data-byte word. final marks the checksum byte.
func Data(b byte, final bool) Word {
	w := Word(b)
	if final {
		w |= finalByteBit
	}
	return w
}

// IsSegment reports whether w is a preamble/padding word.
func (w Word) IsSegment() bool { return w&markerBit != 0 }

// IsFinal reports whether w is the last data byte of a packet.
func (w Word) IsFinal() bool { return !w.IsSegment() && w&finalByteBit != 0 }

// Byte returns the data byte carried by a data word.
func (w Word) Byte() byte { return byte(w) }

// Segment returns the 16 literal line bits of a preamble/padding word.
func (w Word) Segment() uint16 { return uint16(w) }

// LineBits returns the bits the engine shifts out for w, in order, not
// counting the end bit appended after a final byte.
func (w Word) LineBits() (bits uint16, n int) {
	if w.IsSegment() {
		return w.Segment(), SegmentBits
	}
	// start bit is bit 8 and always 0
	return uint16(w.Byte()), DataBits
}

func (w Word) String() string {
	switch {
	case w == PreambleWord:
		return "preamble"
	case w == PaddingWord:
		return "padding"
	case w.IsSegment():
		return fmt.Sprintf("segment(%016b)", w.Segment())
	case w.IsFinal():
		return fmt.Sprintf("data(0x%02x,final)", w.Byte())
	default:
		return fmt.Sprintf("data(0x%02x)", w.Byte())
	}
}

// Frame converts a payload (address + instruction bytes, no checksum) into
// the word sequence for one packet:
//
//	[preamble, data(b0) ... data(bn), data(checksum, final)]
func Frame(payload []byte) ([]Word, error) {
	if len(payload) > dcc.MaxPayload {
		return nil, ErrPayloadTooLong
	}
	words := make([]Word, 0, len(payload)+2)
	words = append(words, PreambleWord)
	for _, b := range payload {
		words = append(words, Data(b, false))
	}
	words = append(words, Data(dcc.Checksum(payload), true))
	return words, nil
}

// Padding returns n padding words.
func Padding(n int) []Word {
	out := make([]Word, n)
	for i := range out {
		out[i] = PaddingWord
	}
	return out
}
