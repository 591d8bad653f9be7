// cmd/dccstation/throttles.go
package main

import (
	"context"
	"errors"
	"log"
	"slices"
	"sync"

	"github.com/tamzrod/dcc-station/internal/config"
	"github.com/tamzrod/dcc-station/internal/poller"
	"github.com/tamzrod/dcc-station/internal/station"
	"github.com/tamzrod/dcc-station/internal/status"
)

// startThrottle runs one panel: poller producer plus an applier consumer.
func startThrottle(ctx context.Context, t config.ThrottleConfig, st *station.Station, health *panelHealth) error {
	p, err := poller.Build(t)
	if err != nil {
		return err
	}

	apply := poller.NewApplier(st)
	out := make(chan poller.PollResult)

	go func(panelID string) {
		for {
			select {
			case <-ctx.Done():
				return
			case res := <-out:
				health.record(panelID, res.Err)
				if err := apply.Apply(res); err != nil {
					log.Printf("throttle error (panel=%s): %v", panelID, err)
				}
			}
		}
	}(t.ID)

	go p.Run(ctx, out)
	return nil
}

// panelHealth keeps the last poll outcome of every throttle panel.
type panelHealth struct {
	mu    sync.Mutex
	ids   []string          // panels in config order
	codes map[string]uint16 // 0 = ok; absent = not polled yet
}

func newPanelHealth(ids ...string) *panelHealth {
	return &panelHealth{
		ids:   append([]string(nil), ids...),
		codes: make(map[string]uint16),
	}
}

func (h *panelHealth) record(panelID string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, seen := h.codes[panelID]; !seen && !slices.Contains(h.ids, panelID) {
		h.ids = append(h.ids, panelID)
	}
	h.codes[panelID] = errorCode(err)
}

// overlay folds panel results into s. A station fault wins, then the first
// failing panel (HealthError), then HealthUnknown while any panel has not
// reported yet.
func (h *panelHealth) overlay(s status.Snapshot) status.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s.Health == status.HealthFault {
		return s
	}
	pending := false
	for _, id := range h.ids {
		code, seen := h.codes[id]
		if !seen {
			pending = true
			continue
		}
		if code != 0 {
			s.Health = status.HealthError
			s.LastErrorCode = code
			return s
		}
	}
	if pending {
		s.Health = status.HealthUnknown
	}
	return s
}

// errorCode extracts a best-effort uint16 code from an error without assuming concrete types.
// If the error does not expose a code, returns 1 (generic error).
func errorCode(err error) uint16 {
	if err == nil {
		return 0
	}

	type coder interface{ Code() uint16 }

	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}

	return 1
}
