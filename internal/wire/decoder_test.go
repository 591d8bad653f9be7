// internal/wire/decoder_test.go
package wire

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// lineBits expands words into line bits the same way the engine does.
func lineBits(words []Word) []bool {
	var out []bool
	for _, w := range words {
		bits, n := w.LineBits()
		for i := n - 1; i >= 0; i-- {
			out = append(out, bits&(1<<uint(i)) != 0)
		}
		if w.IsFinal() {
			out = append(out, true)
		}
	}
	return out
}

func TestDecoder_RecoversFramedPackets(t *testing.T) {
	var words []Word
	for _, payload := range [][]byte{
		{0x03, 0x3F, 0xB2},
		{0x03, 0x90},
		{0xC3, 0xE8, 0x3F, 0x01},
	} {
		w, err := Frame(payload)
		if err != nil {
			t.Fatalf("Frame: %v", err)
		}
		words = append(words, w...)
		words = append(words, PaddingWord)
	}

	var d Decoder
	pkts := d.PushAll(lineBits(words))
	if len(pkts) != 3 {
		t.Fatalf("decoded %d packets, want 3", len(pkts))
	}

	want := [][]byte{
		{0x03, 0x3F, 0xB2, 0x8E},
		{0x03, 0x90, 0x93},
		{0xC3, 0xE8, 0x3F, 0x01, 0x15},
	}
	for i, p := range pkts {
		if diff := cmp.Diff(want[i], p.Bytes); diff != "" {
			t.Fatalf("packet %d mismatch (-want +got):\n%s", i, diff)
		}
		if !p.ChecksumOK() {
			t.Fatalf("packet %d failed checksum", i)
		}
	}
}

func TestDecoder_ShortPreambleIgnored(t *testing.T) {
	bits := make([]bool, 0, 64)
	for i := 0; i < 8; i++ {
		bits = append(bits, true)
	}
	bits = append(bits, false) // start bit after only 8 ones
	for i := 0; i < 20; i++ {
		bits = append(bits, false)
	}

	var d Decoder
	if pkts := d.PushAll(bits); len(pkts) != 0 {
		t.Fatalf("expected no packets, got %d", len(pkts))
	}
}

func TestPacket_ChecksumMismatch(t *testing.T) {
	p := Packet{Bytes: []byte{0x03, 0x90, 0x00}}
	if p.ChecksumOK() {
		t.Fatalf("corrupt packet reported valid")
	}
	if diff := cmp.Diff([]byte{0x03, 0x90}, p.Payload()); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}
