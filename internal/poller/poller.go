// internal/poller/poller.go

// Package poller reads throttle panels over Modbus and turns their holding
// registers into station commands.
package poller

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tamzrod/dcc-station/internal/clock"
	"github.com/tamzrod/dcc-station/internal/dcc"
	"github.com/tamzrod/dcc-station/internal/monitoring"
	"github.com/tamzrod/dcc-station/internal/power"
)

// Client abstracts the Modbus operation needed by the poller.
type Client interface {
	ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) // FC 3
}

// ClientFactory makes one connection attempt per call.
type ClientFactory func() (Client, error)

// Config is the minimal runtime config the poller needs.
type Config struct {
	PanelID       string
	Interval      time.Duration
	PowerRegister *uint16
	Locos         []LocoBlock
}

// Poller is a dumb, clock-driven reader.
// After a failed cycle the client is discarded and the factory is used on
// a later cycle.
type Poller struct {
	cfg     Config
	client  Client
	factory ClientFactory
	clk     clock.Clock
}

// New creates a poller with immutable config. client may be nil when a
// factory is given.
func New(cfg Config, client Client, factory ClientFactory) (*Poller, error) {
	if cfg.PanelID == "" {
		return nil, errors.New("poller: panel id required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if len(cfg.Locos) == 0 && cfg.PowerRegister == nil {
		return nil, errors.New("poller: at least one loco block or a power register required")
	}
	if client == nil && factory == nil {
		return nil, errors.New("poller: client or factory required")
	}
	return &Poller{cfg: cfg, client: client, factory: factory, clk: clock.Real{}}, nil
}

// WithClock replaces the clock used for timestamps and the poll ticker.
func (p *Poller) WithClock(clk clock.Clock) *Poller {
	p.clk = clk
	return p
}

// PollOnce performs exactly one poll cycle.
// All-or-nothing: any failure aborts the cycle.
func (p *Poller) PollOnce() PollResult {
	res := PollResult{
		PanelID: p.cfg.PanelID,
		At:      p.clk.Now(),
	}

	if p.client == nil {
		if p.factory == nil {
			res.Err = errors.New("poller: no client")
			return res
		}
		c, err := p.factory()
		if err != nil {
			res.Err = err
			return res
		}
		p.client = c
	}

	var pw *power.State
	if p.cfg.PowerRegister != nil {
		regs, err := p.read(*p.cfg.PowerRegister, 1)
		if err != nil {
			res.Err = err
			return res
		}
		s := power.Off
		if regs[0] != 0 {
			s = power.On
		}
		pw = &s
	}

	locos := make([]LocoState, 0, len(p.cfg.Locos))
	for _, lb := range p.cfg.Locos {
		regs, err := p.read(lb.Register, LocoRegisters)
		if err != nil {
			res.Err = err
			return res
		}
		locos = append(locos, decodeLoco(lb.Address, regs))
	}

	// Commit only if all reads succeeded
	res.Power = pw
	res.Locos = locos
	return res
}

func (p *Poller) read(addr, qty uint16) ([]uint16, error) {
	regs, err := p.client.ReadHoldingRegisters(addr, qty)
	if err == nil && len(regs) != int(qty) {
		err = fmt.Errorf("poller: short read at %d: got %d registers, want %d", addr, len(regs), qty)
	}
	if err != nil {
		p.discard()
		return nil, err
	}
	return regs, nil
}

func (p *Poller) discard() {
	if p.factory == nil {
		return
	}
	if c, ok := p.client.(io.Closer); ok {
		if err := c.Close(); err != nil {
			monitoring.Logf("poller: close failed (panel=%s): %v", p.cfg.PanelID, err)
		}
	}
	p.client = nil
}

func decodeLoco(addr int, regs []uint16) LocoState {
	dir := dcc.Forward
	if regs[RegDirection] != 0 {
		dir = dcc.Reverse
	}
	speed := int(regs[RegSpeed])
	return LocoState{
		Address:   addr,
		Speed:     speed,
		Direction: dir,
		Functions: uint8(regs[RegFunctions] & 0x1F),
	}
}
