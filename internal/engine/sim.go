// internal/engine/sim.go
package engine

import (
	"sync"

	"github.com/tamzrod/dcc-station/internal/wire"
)

// Sim is a software model of the waveform peripheral. Each Step shifts out
// one line bit as a high half-cycle followed by a low half-cycle on Line.
//
// The shifter mirrors the peripheral program:
//
//	AwaitWord -> Segment(16) | StartAndByte(9) -> [EndBit] -> AwaitWord
//
// When the queue is empty an all-zero data word is loaded, so the line
// carries nine '0' bits before the queue is checked again.
type Sim struct {
	line Line
	q    fifo

	stepMu    sync.Mutex
	shift     uint16
	remaining int
	final     bool // current word is a final byte
	endBit    bool // end bit due next

	mu       sync.Mutex
	running  bool
	stopping bool
	done     chan struct{}
}

// NewSim returns a stopped engine driving line.
func NewSim(line Line) *Sim {
	return &Sim{line: line}
}

func (s *Sim) Enqueue(words []wire.Word) int {
	return s.q.push(words)
}

// Queued reports how many words are waiting in the queue.
func (s *Sim) Queued() int {
	return s.q.len()
}

// Start launches the generator goroutine. A Start while a Stop is still
// draining cancels the stop.
func (s *Sim) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopping = false
	if s.running {
		return
	}
	s.running = true
	s.done = make(chan struct{})
	go s.run(s.done)
}

// Stop asks the generator to halt after the queued words are emitted.
// It returns immediately.
func (s *Sim) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.stopping = true
	}
}

// Running reports whether the generator goroutine is active.
func (s *Sim) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Done returns a channel closed when the current run exits, or nil when
// the engine has never been started.
func (s *Sim) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *Sim) run(done chan struct{}) {
	defer close(done)
	for {
		if s.shouldExit() {
			s.line.Drive(false, 0)
			return
		}
		s.Step()
	}
}

func (s *Sim) shouldExit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopping || !s.idle() || s.q.len() > 0 {
		return false
	}
	s.running = false
	s.stopping = false
	return true
}

// idle reports whether no word is partially emitted.
func (s *Sim) idle() bool {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()
	return s.remaining == 0 && !s.endBit
}

// Step emits exactly one bit and returns its value.
func (s *Sim) Step() bool {
	bit := s.nextBit()
	half := HalfCycle(bit)
	s.line.Drive(true, half)
	s.line.Drive(false, half)
	return bit
}

func (s *Sim) nextBit() bool {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()

	if s.endBit {
		s.endBit = false
		return true
	}

	if s.remaining == 0 {
		w, ok := s.q.pop()
		if !ok {
			w = 0 // underrun: behave as a zero data word
		}
		bits, n := w.LineBits()
		s.shift = bits
		s.remaining = n
		s.final = w.IsFinal()
	}

	s.remaining--
	bit := s.shift&(1<<uint(s.remaining)) != 0
	if s.remaining == 0 && s.final {
		s.endBit = true
		s.final = false
	}
	return bit
}

// Free reports the remaining queue capacity.
func (s *Sim) Free() int {
	return QueueCapacity - s.q.len()
}
