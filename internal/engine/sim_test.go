// internal/engine/sim_test.go
package engine

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tamzrod/dcc-station/internal/wire"
)

func bitsOf(words []wire.Word) []bool {
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

func TestSim_UnderrunKeepsZeroRate(t *testing.T) {
	rec := &Recorder{}
	s := NewSim(rec)

	for i := 0; i < 20; i++ {
		if s.Step() {
			t.Fatalf("step %d: got '1' on empty queue", i)
		}
	}

	cycles := rec.HalfCycles()
	if len(cycles) != 40 {
		t.Fatalf("expected 40 half-cycles, got %d", len(cycles))
	}
	for i, c := range cycles {
		if c.Duration != ZeroHalf {
			t.Fatalf("half-cycle %d: duration %v, want %v", i, c.Duration, ZeroHalf)
		}
		if c.High != (i%2 == 0) {
			t.Fatalf("half-cycle %d: level %v breaks alternation", i, c.High)
		}
	}
}

func TestSim_PacketWaveform(t *testing.T) {
	rec := &Recorder{}
	s := NewSim(rec)

	words, err := wire.Frame([]byte{0x03, 0x3F, 0xB2})
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if n := s.Enqueue(words); n != len(words) {
		t.Fatalf("enqueued %d of %d words", n, len(words))
	}

	want := bitsOf(words)
	if len(want) != 16+4*9+1 {
		t.Fatalf("unexpected expected-bit count %d", len(want))
	}

	var got []bool
	for range want {
		got = append(got, s.Step())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("bit stream mismatch (-want +got):\n%s", diff)
	}

	// the end bit is followed by underrun zeros
	if s.Step() {
		t.Fatalf("expected '0' after end bit")
	}

	for i, c := range rec.HalfCycles()[:2*len(want)] {
		wantD := HalfCycle(want[i/2])
		if c.Duration != wantD {
			t.Fatalf("half-cycle %d: %v want %v", i, c.Duration, wantD)
		}
	}

	var dec wire.Decoder
	pkts := dec.PushAll(rec.Bits())
	if len(pkts) != 1 {
		t.Fatalf("decoded %d packets, want 1", len(pkts))
	}
	if diff := cmp.Diff([]byte{0x03, 0x3F, 0xB2, 0x8E}, pkts[0].Bytes); diff != "" {
		t.Fatalf("decoded packet mismatch (-want +got):\n%s", diff)
	}
}

func TestSim_WordArrivingDuringUnderrunWaitsForZeroWord(t *testing.T) {
	s := NewSim(Discard)

	// first step loads an implicit zero word (9 bits)
	s.Step()
	s.Enqueue([]wire.Word{wire.PreambleWord})

	for i := 1; i < wire.DataBits; i++ {
		if s.Step() {
			t.Fatalf("bit %d of underrun word should be 0", i)
		}
	}
	if !s.Step() {
		t.Fatalf("preamble should start after the underrun word")
	}
}

func TestSim_EnqueueCapacity(t *testing.T) {
	s := NewSim(Discard)

	words := make([]wire.Word, 10)
	if n := s.Enqueue(words); n != QueueCapacity {
		t.Fatalf("accepted %d, want %d", n, QueueCapacity)
	}
	if n := s.Enqueue(words); n != 0 {
		t.Fatalf("full queue accepted %d words", n)
	}
	if s.Queued() != QueueCapacity {
		t.Fatalf("queued=%d", s.Queued())
	}
}

func TestSim_StopDrainsQueuedPacket(t *testing.T) {
	rec := &Recorder{}
	s := NewSim(rec)

	words, _ := wire.Frame([]byte{0x03, 0x90})
	s.Enqueue(words)

	s.Start()
	s.Stop()

	done := s.Done()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("engine did not halt")
	}

	if s.Running() {
		t.Fatalf("engine still running after drain")
	}
	if s.Queued() != 0 {
		t.Fatalf("queue not drained: %d", s.Queued())
	}

	var dec wire.Decoder
	pkts := dec.PushAll(rec.Bits())
	if len(pkts) != 1 {
		t.Fatalf("tail packet not emitted: decoded %d packets", len(pkts))
	}

	cycles := rec.HalfCycles()
	last := cycles[len(cycles)-1]
	if last.High || last.Duration != 0 {
		t.Fatalf("line not parked low: %+v", last)
	}
}

func TestSim_RestartAfterStop(t *testing.T) {
	s := NewSim(Discard)
	s.Start()
	s.Stop()
	<-s.Done()

	s.Start()
	if !s.Running() {
		t.Fatalf("engine should run after restart")
	}
	s.Stop()
	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("engine did not halt after restart")
	}
}

func TestPacketDuration_FitsSchedulerPeriod(t *testing.T) {
	idle, _ := wire.Frame([]byte{0xFF, 0x00})
	if got, want := PacketDuration(idle), 6028*time.Microsecond; got != want {
		t.Fatalf("idle packet duration %v, want %v", got, want)
	}

	worst, _ := wire.Frame([]byte{0, 0, 0, 0, 0})
	if d := PacketDuration(worst); d >= 15*time.Millisecond {
		t.Fatalf("worst-case packet %v does not fit a 15ms period", d)
	}
}
