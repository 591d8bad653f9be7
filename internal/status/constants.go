// internal/status/constants.go
package status

// Station Status Block layout constants.
// These values define the protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerStation is the fixed number of holding registers per status block.
const SlotsPerStation = 20

// ---- SLOT INDICES ----

// SlotPower holds the booster line state (0 = off, 1 = on).
const SlotPower = 0

// SlotHealth holds the station health code.
const SlotHealth = 1

// SlotLastErrorCode holds the last throttle poll error code.
const SlotLastErrorCode = 2

// SlotEntries holds the number of pending registry commands.
const SlotEntries = 3

// Packet counters are 32-bit, high word first.
const (
	SlotSentHi    = 4
	SlotSentLo    = 5
	SlotIdleHi    = 6
	SlotIdleLo    = 7
	SlotDroppedHi = 8
	SlotDroppedLo = 9
)

// ---- RESERVED RANGE ----

const SlotReservedStart = 10
const SlotReservedEnd = 10

// ---- STATION NAME ----

// SlotNameStart is the first slot used for the station name.
const SlotNameStart = 11

// SlotNameSlots is the number of slots reserved for the station name.
const SlotNameSlots = 8

// SlotNameEnd is the last slot used for the station name (inclusive).
const SlotNameEnd = SlotNameStart + SlotNameSlots - 1

// SlotLive is the number of leading slots that change at runtime.
const SlotLive = SlotDroppedLo + 1

// ---- LIMITS ----

// NameMaxChars is the maximum number of ASCII characters stored for the name.
const NameMaxChars = 16

// ---- HEALTH CODES ----

// HealthUnknown means a throttle panel has not reported its first poll yet.
const HealthUnknown uint16 = 0

// HealthOK means every throttle panel answered its last poll.
const HealthOK uint16 = 1

// HealthError means at least one throttle panel failed its last poll.
const HealthError uint16 = 2

// HealthFault means the scheduler stopped on a configuration error.
const HealthFault uint16 = 3
