// internal/writer/builder.go
package writer

import (
	"errors"
	"time"

	cfg "github.com/tamzrod/dcc-station/internal/config"
	wmodbus "github.com/tamzrod/dcc-station/internal/writer/modbus"
)

// BuildPlan converts the status config into a StatusPlan.
// Assumes config has already passed validation and normalization.
func BuildPlan(c cfg.StatusConfig) (StatusPlan, error) {
	if c.Endpoint == "" {
		return StatusPlan{}, errors.New("writer: status.endpoint required")
	}
	return StatusPlan{
		Endpoint:    c.Endpoint,
		UnitID:      c.UnitID,
		BaseSlot:    c.BaseSlot,
		StationName: c.StationName,
	}, nil
}

// BuildStatusWriter connects the status memory endpoint and returns a
// writer with its closer.
func BuildStatusWriter(c cfg.StatusConfig) (StatusWriter, func() error, error) {
	plan, err := BuildPlan(c)
	if err != nil {
		return nil, nil, err
	}

	cli, err := wmodbus.NewEndpointClient(wmodbus.Config{
		Endpoint: plan.Endpoint,
		Timeout:  time.Duration(c.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, err
	}

	sw, err := NewStatusWriter(plan, cli)
	if err != nil {
		_ = cli.Close()
		return nil, nil, err
	}
	return sw, cli.Close, nil
}
