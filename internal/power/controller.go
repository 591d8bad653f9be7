// internal/power/controller.go

// Package power sequences the booster enable line, the timing engine and the
// packet scheduler.
//
//	ON:  booster on  -> engine Start -> cursor reset -> tick Start
//	OFF: booster off -> tick Stop    -> engine Stop
//
// Registry contents are never touched by a transition.
package power

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tamzrod/dcc-station/internal/engine"
	"github.com/tamzrod/dcc-station/internal/monitoring"
)

// Controller is the power state machine. Initial state is Off.
type Controller struct {
	mu    sync.Mutex
	line  BoosterLine
	eng   engine.Engine
	sched Dispatcher
}

// New creates a controller and drives the booster line to Off.
func New(line BoosterLine, eng engine.Engine, sched Dispatcher) (*Controller, error) {
	if line == nil || eng == nil || sched == nil {
		return nil, errors.New("power: booster line, engine and scheduler required")
	}
	if err := line.Set(false); err != nil {
		return nil, fmt.Errorf("power: initial booster off: %w", err)
	}
	return &Controller{line: line, eng: eng, sched: sched}, nil
}

// State returns the booster enable-line state. No side effects.
func (c *Controller) State() State {
	if c.line.Get() {
		return On
	}
	return Off
}

// Set performs a transition and returns the resulting state.
// Requesting the current state repeats the transition sequence, which is
// harmless for every step.
func (c *Controller) Set(s State) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch s {
	case On:
		if err := c.line.Set(true); err != nil {
			return c.State(), fmt.Errorf("power: booster on: %w", err)
		}
		c.eng.Start()
		c.sched.Reset()
		c.sched.Start()
		monitoring.Logf("power: ON")

	case Off:
		lineErr := c.line.Set(false)
		// engine and scheduler stop even if the booster line failed
		c.sched.Stop()
		c.eng.Stop()
		monitoring.Logf("power: OFF")
		if lineErr != nil {
			return c.State(), fmt.Errorf("power: booster off: %w", lineErr)
		}

	default:
		return c.State(), fmt.Errorf("power: unknown state %d", int(s))
	}

	return c.State(), nil
}
