// internal/engine/engine.go

// Package engine turns control words into a continuously driven DCC line.
//
// The physical mechanism (peripheral program, DMA+timer, external
// co-processor) is hidden behind Engine. Every implementation honours the
// same timing contract:
//
//	'1' bit: two 58us half-cycles
//	'0' bit: two 100us half-cycles
//	queue empty: zero bits keep flowing, the line never idles
//	final data byte: exactly one '1' end bit follows
package engine

import (
	"time"

	"github.com/tamzrod/dcc-station/internal/wire"
)

// Engine is the contract the scheduler and the power controller use.
type Engine interface {
	// Start begins (or resumes) signal generation.
	Start()
	// Stop halts generation once the words already queued have been
	// emitted. It never gates track power.
	Stop()
	// Enqueue appends as many words as fit and returns how many were
	// accepted. It never blocks.
	Enqueue(words []wire.Word) int
}

// QueueCapacity is the depth of the word queue (TX and RX FIFOs joined).
const QueueCapacity = 8

// ---- TIMING ----

// TickPeriod is the peripheral clock period (500 kHz).
const TickPeriod = 2 * time.Microsecond

// Half-cycle lengths in peripheral ticks.
const (
	OneHalfTicks  = 29
	ZeroHalfTicks = 50
)

// Half-cycle durations.
const (
	OneHalf  = OneHalfTicks * TickPeriod  // 58us
	ZeroHalf = ZeroHalfTicks * TickPeriod // 100us
)

// HalfCycle returns the half-cycle duration for a bit value.
func HalfCycle(bit bool) time.Duration {
	if bit {
		return OneHalf
	}
	return ZeroHalf
}

// BitPeriod returns the full cycle duration for a bit value.
func BitPeriod(bit bool) time.Duration {
	return 2 * HalfCycle(bit)
}

// PacketDuration is the line time needed to emit words, end bits included.
func PacketDuration(words []wire.Word) time.Duration {
	var d time.Duration
	for _, w := range words {
		bits, n := w.LineBits()
		for i := n - 1; i >= 0; i-- {
			d += BitPeriod(bits&(1<<uint(i)) != 0)
		}
		if w.IsFinal() {
			d += BitPeriod(true)
		}
	}
	return d
}

// Freer is implemented by engines that can report free queue space.
// The scheduler uses it to avoid splitting a packet across a full queue.
type Freer interface {
	Free() int
}
