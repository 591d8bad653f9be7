// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/dcc-station/internal/dcc"
	"github.com/tamzrod/dcc-station/internal/power"
)

// Holding register layout of one loco block, relative to its base register.
const (
	RegSpeed     = 0 // 0..127
	RegDirection = 1 // 0 = forward, non-zero = reverse
	RegFunctions = 2 // bit i = F(i), i in 0..4

	LocoRegisters = 3
)

// LocoBlock maps a decoder address to its register block on the panel.
type LocoBlock struct {
	Address  int
	Register uint16
}

// LocoState is one decoded loco block.
type LocoState struct {
	Address   int
	Speed     int
	Direction dcc.Direction
	Functions uint8 // F0..F4 in bits 0..4
}

// Function reports the state (0 or 1) of function index i.
func (l LocoState) Function(i int) int {
	return int(l.Functions>>uint(i)) & 1
}

// PollResult is a snapshot produced by one poll cycle.
type PollResult struct {
	PanelID string
	At      time.Time

	Power *power.State // nil when the panel has no power register
	Locos []LocoState

	Err error // non-nil means the poll cycle failed
}
