// internal/station/station.go

// Package station is the command surface of the command station. It owns the
// packet registry, the scheduler and the power controller, and wires them to
// the timing engine and booster line supplied by the caller.
package station

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/tamzrod/dcc-station/internal/clock"
	"github.com/tamzrod/dcc-station/internal/dcc"
	"github.com/tamzrod/dcc-station/internal/engine"
	"github.com/tamzrod/dcc-station/internal/monitoring"
	"github.com/tamzrod/dcc-station/internal/power"
	"github.com/tamzrod/dcc-station/internal/registry"
	"github.com/tamzrod/dcc-station/internal/scheduler"
)

// ErrAlreadyOpen is returned by Open after the first successful call.
var ErrAlreadyOpen = errors.New("station: already open")

// Deps are the collaborators of a station.
type Deps struct {
	Engine    engine.Engine
	Booster   power.BoosterLine
	Clock     clock.Clock
	Scheduler scheduler.Config
}

type Station struct {
	reg   *registry.Registry
	sched *scheduler.Scheduler
	power *power.Controller
}

var opened atomic.Bool

// Open constructs the process-wide station. Only the first successful call
// returns a station; later calls fail with ErrAlreadyOpen.
func Open(d Deps) (*Station, error) {
	if !opened.CompareAndSwap(false, true) {
		return nil, ErrAlreadyOpen
	}
	s, err := New(d)
	if err != nil {
		opened.Store(false)
		return nil, err
	}
	return s, nil
}

// New constructs a station without the once-only guard.
func New(d Deps) (*Station, error) {
	if d.Engine == nil {
		return nil, errors.New("station: engine required")
	}
	if d.Booster == nil {
		d.Booster = &power.MemoryLine{}
	}
	if d.Clock == nil {
		d.Clock = clock.Real{}
	}
	if d.Scheduler.Period == 0 {
		d.Scheduler.Period = scheduler.DefaultPeriod
	}

	reg := registry.New()

	sched, err := scheduler.New(d.Scheduler, reg, d.Engine, d.Clock)
	if err != nil {
		return nil, fmt.Errorf("station: %w", err)
	}

	pc, err := power.New(d.Booster, d.Engine, sched)
	if err != nil {
		return nil, fmt.Errorf("station: %w", err)
	}

	return &Station{reg: reg, sched: sched, power: pc}, nil
}

// Power applies req when non-nil and returns the booster line state.
func (s *Station) Power(req *power.State) power.State {
	if req != nil {
		if _, err := s.power.Set(*req); err != nil {
			monitoring.Logf("station: power %v failed: %v", *req, err)
		}
	}
	return s.power.State()
}

// SetSpeed records a 128-step speed and direction command for addr.
// It reports false, with no side effect, when any argument is invalid.
func (s *Station) SetSpeed(addr int, dir dcc.Direction, speed int) bool {
	return s.reg.SetSpeed(addr, dir, speed) == nil
}

// SetFunctionGroup1 sets or clears one of F0..F4 for addr.
// It reports false, with no side effect, when any argument is invalid.
func (s *Station) SetFunctionGroup1(addr, index, state int) bool {
	return s.reg.SetFunctionGroup1(addr, index, state) == nil
}

// Entries returns the pending commands in transmission order.
func (s *Station) Entries() []registry.Entry { return s.reg.Entries() }

func (s *Station) Stats() scheduler.Stats { return s.sched.Stats() }

// Err returns the fatal scheduler error, if any.
func (s *Station) Err() error { return s.sched.Err() }
