// internal/poller/apply.go
package poller

import (
	"errors"
	"fmt"

	"github.com/tamzrod/dcc-station/internal/dcc"
	"github.com/tamzrod/dcc-station/internal/power"
)

// Commander is the station command surface a panel drives.
type Commander interface {
	Power(req *power.State) power.State
	SetSpeed(addr int, dir dcc.Direction, speed int) bool
	SetFunctionGroup1(addr, index, state int) bool
}

// Applier turns successive poll results of one panel into commands.
// Only changes are applied; the first result applies everything.
type Applier struct {
	cmd   Commander
	power *power.State
	locos map[int]LocoState
}

func NewApplier(cmd Commander) *Applier {
	return &Applier{cmd: cmd, locos: make(map[int]LocoState)}
}

// Apply issues the commands implied by res. A failed poll applies nothing
// and returns its error.
func (a *Applier) Apply(res PollResult) error {
	if res.Err != nil {
		return res.Err
	}

	if res.Power != nil && (a.power == nil || *a.power != *res.Power) {
		want := *res.Power
		a.cmd.Power(&want)
		a.power = &want
	}

	var errs []error
	for _, l := range res.Locos {
		prev, seen := a.locos[l.Address]
		ok := true

		if !seen || prev.Speed != l.Speed || prev.Direction != l.Direction {
			if !a.cmd.SetSpeed(l.Address, l.Direction, l.Speed) {
				ok = false
				errs = append(errs, fmt.Errorf("panel %s: loco %d: speed %d %v rejected", res.PanelID, l.Address, l.Speed, l.Direction))
			}
		}

		for i := 0; i <= dcc.MaxFunctionIndex; i++ {
			if seen && prev.Function(i) == l.Function(i) {
				continue
			}
			if !a.cmd.SetFunctionGroup1(l.Address, i, l.Function(i)) {
				ok = false
				errs = append(errs, fmt.Errorf("panel %s: loco %d: F%d rejected", res.PanelID, l.Address, i))
			}
		}

		// a loco with a rejected command is re-applied in full next time
		if ok {
			a.locos[l.Address] = l
		} else {
			delete(a.locos, l.Address)
		}
	}

	return errors.Join(errs...)
}
