// cmd/dccstation/throttles_test.go
package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tamzrod/dcc-station/internal/poller/modbus"
	"github.com/tamzrod/dcc-station/internal/status"
)

func TestErrorCode(t *testing.T) {
	if got := errorCode(nil); got != 0 {
		t.Fatalf("nil: got %d", got)
	}
	if got := errorCode(errors.New("timeout")); got != 1 {
		t.Fatalf("plain: got %d", got)
	}
	wrapped := fmt.Errorf("poll: %w", &modbus.ExceptionError{Function: 0x83, Exception: 2})
	if got := errorCode(wrapped); got != 2 {
		t.Fatalf("exception: got %d", got)
	}
}

func TestPanelHealthOverlay(t *testing.T) {
	h := newPanelHealth()
	ok := status.Snapshot{Health: status.HealthOK}

	if got := h.overlay(ok); got.Health != status.HealthOK {
		t.Fatalf("no panels: got %d", got.Health)
	}

	h.record("p1", nil)
	h.record("p2", &modbus.ExceptionError{Exception: 4})
	got := h.overlay(ok)
	if got.Health != status.HealthError || got.LastErrorCode != 4 {
		t.Fatalf("panel error: got %+v", got)
	}

	fault := status.Snapshot{Health: status.HealthFault}
	if got := h.overlay(fault); got.Health != status.HealthFault {
		t.Fatalf("fault must win: got %d", got.Health)
	}

	h.record("p2", nil)
	if got := h.overlay(ok); got.Health != status.HealthOK || got.LastErrorCode != 0 {
		t.Fatalf("recovered: got %+v", got)
	}
}

func TestPanelHealthUnknownUntilFirstPoll(t *testing.T) {
	h := newPanelHealth("p1", "p2")
	ok := status.Snapshot{Health: status.HealthOK}

	if got := h.overlay(ok); got.Health != status.HealthUnknown {
		t.Fatalf("boot: got %d", got.Health)
	}

	h.record("p1", nil)
	if got := h.overlay(ok); got.Health != status.HealthUnknown {
		t.Fatalf("one pending: got %d", got.Health)
	}

	fault := status.Snapshot{Health: status.HealthFault}
	if got := h.overlay(fault); got.Health != status.HealthFault {
		t.Fatalf("fault must win: got %d", got.Health)
	}

	h.record("p2", nil)
	if got := h.overlay(ok); got.Health != status.HealthOK {
		t.Fatalf("all polled: got %d", got.Health)
	}
}

func TestPanelHealthErrorBeatsPending(t *testing.T) {
	h := newPanelHealth("p1", "p2")
	h.record("p2", &modbus.ExceptionError{Exception: 3})

	got := h.overlay(status.Snapshot{Health: status.HealthOK})
	if got.Health != status.HealthError || got.LastErrorCode != 3 {
		t.Fatalf("got %+v", got)
	}
}
