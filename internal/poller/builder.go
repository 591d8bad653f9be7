// internal/poller/builder.go
package poller

import (
	"time"

	cfg "github.com/tamzrod/dcc-station/internal/config"
	pmodbus "github.com/tamzrod/dcc-station/internal/poller/modbus"
)

// Build constructs a Poller for one throttle panel and wires the Modbus
// client lifecycle.
// Connection is reused while healthy.
// After a failed cycle the Poller discards the client and uses the factory
// on a future tick.
func Build(t cfg.ThrottleConfig) (*Poller, error) {
	// client factory: ONE attempt per call
	factory := func() (Client, error) {
		return pmodbus.New(pmodbus.Config{
			Endpoint: t.Endpoint,
			UnitID:   t.UnitID,
			Timeout:  time.Duration(t.TimeoutMs) * time.Millisecond,
		})
	}

	locos := make([]LocoBlock, 0, len(t.Locos))
	for _, l := range t.Locos {
		locos = append(locos, LocoBlock{
			Address:  l.Address,
			Register: l.Register,
		})
	}

	// no initial client: a panel that is offline at startup must not stop
	// the station, so the first tick connects
	return New(
		Config{
			PanelID:       t.ID,
			Interval:      time.Duration(t.Poll.IntervalMs) * time.Millisecond,
			PowerRegister: t.PowerRegister,
			Locos:         locos,
		},
		nil,
		factory,
	)
}
