// internal/clock/clock_test.go
package clock

import (
	"testing"
	"time"
)

func TestManualTicker_FiresOnPeriod(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	tk := m.NewTicker(15 * time.Millisecond)

	m.Advance(10 * time.Millisecond)
	select {
	case <-tk.C():
		t.Fatalf("ticker fired early")
	default:
	}

	m.Advance(5 * time.Millisecond)
	select {
	case <-tk.C():
	default:
		t.Fatalf("ticker did not fire at 15ms")
	}
}

func TestManualTicker_StopSilences(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	tk := m.NewTicker(time.Millisecond)
	tk.Stop()

	m.Advance(10 * time.Millisecond)
	select {
	case <-tk.C():
		t.Fatalf("stopped ticker fired")
	default:
	}
	if m.Tickers() != 0 {
		t.Fatalf("expected 0 running tickers, got %d", m.Tickers())
	}
}

func TestManual_SleepAdvances(t *testing.T) {
	start := time.Unix(100, 0)
	m := NewManual(start)
	m.Sleep(58 * time.Microsecond)
	m.Sleep(100 * time.Microsecond)

	if got := m.Now().Sub(start); got != 158*time.Microsecond {
		t.Fatalf("now advanced by %v, want 158us", got)
	}
	if len(m.Sleeps()) != 2 {
		t.Fatalf("expected 2 recorded sleeps, got %d", len(m.Sleeps()))
	}
}

func TestRealClock_Ticker(t *testing.T) {
	tk := Real{}.NewTicker(5 * time.Millisecond)
	defer tk.Stop()

	select {
	case <-tk.C():
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("real ticker did not fire")
	}
}
