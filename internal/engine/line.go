// internal/engine/line.go
package engine

import (
	"sync"
	"time"

	"github.com/tamzrod/dcc-station/internal/clock"
	"github.com/tamzrod/dcc-station/internal/wire"
)

// Line is the logic-level DCC output. Drive holds the line at the given
// level for d. A zero d parks the line at that level.
type Line interface {
	Drive(high bool, d time.Duration)
}

// LineFunc adapts a function to Line.
type LineFunc func(high bool, d time.Duration)

func (f LineFunc) Drive(high bool, d time.Duration) { f(high, d) }

// Discard is a Line that drops every half-cycle.
var Discard Line = LineFunc(func(bool, time.Duration) {})

// Paced wraps next so every half-cycle takes real (or mocked) time.
func Paced(next Line, clk clock.Clock) Line {
	return LineFunc(func(high bool, d time.Duration) {
		next.Drive(high, d)
		if d > 0 {
			clk.Sleep(d)
		}
	})
}

// HalfCycleRecord is one recorded half-cycle.
type HalfCycleRecord struct {
	High     bool
	Duration time.Duration
}

// Recorder is a Line that keeps every half-cycle for inspection.
type Recorder struct {
	mu     sync.Mutex
	cycles []HalfCycleRecord
}

func (r *Recorder) Drive(high bool, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cycles = append(r.cycles, HalfCycleRecord{High: high, Duration: d})
}

// HalfCycles returns a copy of the recorded half-cycles.
func (r *Recorder) HalfCycles() []HalfCycleRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]HalfCycleRecord, len(r.cycles))
	copy(out, r.cycles)
	return out
}

// Bits classifies recorded high/low pairs back into bit values.
// Parking entries (zero duration) are skipped.
func (r *Recorder) Bits() []bool {
	var out []bool
	var pendingHigh time.Duration
	for _, c := range r.HalfCycles() {
		if c.Duration == 0 {
			continue
		}
		if c.High {
			pendingHigh = c.Duration
			continue
		}
		if pendingHigh == 0 {
			continue
		}
		out = append(out, pendingHigh == OneHalf)
		pendingHigh = 0
	}
	return out
}

// Decoding wraps next and reports every packet seen on the line.
func Decoding(next Line, onPacket func(wire.Packet)) Line {
	var (
		mu   sync.Mutex
		dec  wire.Decoder
		high time.Duration
	)
	return LineFunc(func(level bool, d time.Duration) {
		next.Drive(level, d)
		if d == 0 {
			return
		}

		mu.Lock()
		if level {
			high = d
			mu.Unlock()
			return
		}
		if high == 0 {
			mu.Unlock()
			return
		}
		pkt, ok := dec.Push(high == OneHalf)
		high = 0
		mu.Unlock()

		if ok && onPacket != nil {
			onPacket(pkt)
		}
	})
}
