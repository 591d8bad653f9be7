// internal/scheduler/scheduler.go
package scheduler

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/tamzrod/dcc-station/internal/clock"
	"github.com/tamzrod/dcc-station/internal/dcc"
	"github.com/tamzrod/dcc-station/internal/engine"
	"github.com/tamzrod/dcc-station/internal/monitoring"
	"github.com/tamzrod/dcc-station/internal/wire"
)

// Scheduler sends exactly one packet per tick.
type Scheduler struct {
	cfg Config
	src Source
	eng engine.Engine
	clk clock.Clock

	sent    atomic.Uint64
	idle    atomic.Uint64
	dropped atomic.Uint64

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
	err  error
}

// New creates a scheduler with immutable config.
func New(cfg Config, src Source, eng engine.Engine, clk clock.Clock) (*Scheduler, error) {
	if cfg.Period <= 0 {
		return nil, errors.New("scheduler: period must be > 0")
	}
	if cfg.Period > MaxPeriod {
		return nil, fmt.Errorf("scheduler: period %v exceeds %v", cfg.Period, MaxPeriod)
	}
	if cfg.PadWords < 0 {
		return nil, errors.New("scheduler: pad words must be >= 0")
	}
	if wire.MaxPacketWords+cfg.PadWords > engine.QueueCapacity {
		return nil, fmt.Errorf("scheduler: %d pad words do not fit the engine queue", cfg.PadWords)
	}
	if src == nil || eng == nil || clk == nil {
		return nil, errors.New("scheduler: source, engine and clock required")
	}
	return &Scheduler{cfg: cfg, src: src, eng: eng, clk: clk}, nil
}

// Tick performs exactly one scheduling step: the next registry entry, or
// the idle packet when the registry is empty. Only packets that reach the
// engine queue are counted as sent or idle.
func (s *Scheduler) Tick() error {
	e, ok := s.src.Next()
	if !ok {
		queued, err := s.send(dcc.IdlePacket())
		if err != nil {
			return err
		}
		if queued {
			s.idle.Add(1)
		}
		return nil
	}
	queued, err := s.send(e.Payload)
	if err != nil {
		return fmt.Errorf("scheduler: key %s: %w", e.Key, err)
	}
	if queued {
		s.sent.Add(1)
	}
	return nil
}

// Send frames payload with its checksum and hands it to the engine.
// Fire-and-forget: a full engine queue drops the whole packet and is
// logged as a scheduling anomaly, not returned.
func (s *Scheduler) Send(payload []byte) error {
	_, err := s.send(payload)
	return err
}

// send reports whether the packet was queued.
func (s *Scheduler) send(payload []byte) (bool, error) {
	words, err := wire.Frame(payload)
	if err != nil {
		return false, fmt.Errorf("%w: %d bytes", ErrPacketTooLong, len(payload))
	}
	if s.cfg.PadWords > 0 {
		words = append(words, wire.Padding(s.cfg.PadWords)...)
	}

	if f, ok := s.eng.(engine.Freer); ok {
		if room := f.Free(); room < len(words) {
			s.drop(payload, room, len(words))
			return false, nil
		}
	}
	if n := s.eng.Enqueue(words); n < len(words) {
		s.drop(payload, n, len(words))
		return false, nil
	}
	return true, nil
}

func (s *Scheduler) drop(payload []byte, room, need int) {
	s.dropped.Add(1)
	monitoring.Logf("scheduler: scheduling anomaly: engine queue full, packet % x dropped (room=%d need=%d)",
		payload, room, need)
}

// Reset restarts the round-robin pass at the first registry key.
func (s *Scheduler) Reset() {
	s.src.Reset()
}

// Stats returns a snapshot of the tick counters.
func (s *Scheduler) Stats() Stats {
	return Stats{
		Sent:    s.sent.Load(),
		Idle:    s.idle.Load(),
		Dropped: s.dropped.Load(),
	}
}

// Err returns the configuration error that aborted the tick loop, if any.
func (s *Scheduler) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
