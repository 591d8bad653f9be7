// internal/scheduler/types.go
package scheduler

import (
	"errors"
	"time"

	"github.com/tamzrod/dcc-station/internal/registry"
)

// DefaultPeriod is the packet period. NMRA S-9.2 requires a decoder to see
// a packet at least every 30ms and 5ms between packets to the same decoder.
const DefaultPeriod = 15 * time.Millisecond

// MaxPeriod is the longest period that still satisfies the 30ms limit.
const MaxPeriod = 30 * time.Millisecond

// ErrPacketTooLong is a configuration error: a payload above 5 bytes can
// only come from a wiring or encoding defect.
var ErrPacketTooLong = errors.New("scheduler: packet exceeds 5 payload bytes")

// Source yields registry entries round-robin.
type Source interface {
	Next() (registry.Entry, bool)
	Reset()
}

// Config is the immutable scheduler configuration.
type Config struct {
	Period time.Duration

	// PadWords appends padding words (16 '0' bits each) after every packet.
	PadWords int
}

// Stats counts tick outcomes since construction.
type Stats struct {
	Sent    uint64 // registry packets enqueued
	Idle    uint64 // idle packets enqueued
	Dropped uint64 // packets dropped because the engine queue was full
}
