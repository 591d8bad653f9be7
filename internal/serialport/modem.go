// internal/serialport/modem.go
package serialport

import (
	"fmt"
	"sync"
)

// Signal selects a modem control output.
type Signal int

const (
	DTR Signal = iota
	RTS
)

func (s Signal) String() string {
	switch s {
	case DTR:
		return "DTR"
	case RTS:
		return "RTS"
	default:
		return fmt.Sprintf("Signal(%d)", int(s))
	}
}

// ModemLine drives a booster enable input from a modem control output.
// Get reports the last level successfully written.
type ModemLine struct {
	mu     sync.Mutex
	port   Port
	signal Signal
	invert bool
	on     bool
}

func NewModemLine(port Port, signal Signal, invert bool) *ModemLine {
	return &ModemLine{port: port, signal: signal, invert: invert}
}

func (l *ModemLine) Set(on bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	level := on != l.invert

	var err error
	switch l.signal {
	case DTR:
		err = l.port.SetDTR(level)
	case RTS:
		err = l.port.SetRTS(level)
	default:
		err = fmt.Errorf("serialport: unknown signal %v", l.signal)
	}
	if err != nil {
		return fmt.Errorf("serialport: set %v: %w", l.signal, err)
	}

	l.on = on
	return nil
}

func (l *ModemLine) Get() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}
