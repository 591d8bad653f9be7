// internal/power/types.go
package power

import (
	"fmt"
	"sync"
)

// State is the track power state.
type State int

const (
	Off State = 0
	On  State = 1
)

func (s State) String() string {
	switch s {
	case Off:
		return "OFF"
	case On:
		return "ON"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// BoosterLine is the digital output enabling the track booster.
type BoosterLine interface {
	Set(on bool) error
	Get() bool
}

// Dispatcher is the periodic packet driver controlled by power transitions.
type Dispatcher interface {
	Reset()
	Start()
	Stop()
}

// MemoryLine is a BoosterLine with no hardware behind it.
type MemoryLine struct {
	mu sync.Mutex
	on bool
}

func (l *MemoryLine) Set(on bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = on
	return nil
}

func (l *MemoryLine) Get() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}
