// internal/config/config.go
package config

import "github.com/tamzrod/dcc-station/internal/serialport"

type Config struct {
	Station   StationConfig    `yaml:"station"`
	Throttles []ThrottleConfig `yaml:"throttles"`
	Status    *StatusConfig    `yaml:"status"` // optional status memory
}

// ---- STATION ----

type StationConfig struct {
	PacketPeriodMs int           `yaml:"packet_period_ms"`
	PadWords       int           `yaml:"pad_words"`
	Engine         EngineConfig  `yaml:"engine"`
	Booster        BoosterConfig `yaml:"booster"`
}

const (
	EngineSim    = "sim"
	EngineSerial = "serial"
)

type EngineConfig struct {
	Kind       string                  `yaml:"kind"`
	QueueWords int                     `yaml:"queue_words"`
	Serial     *serialport.PortOptions `yaml:"serial"`
}

const (
	BoosterNone      = "none"
	BoosterSerialDTR = "serial_dtr"
	BoosterSerialRTS = "serial_rts"
)

// BoosterConfig selects the booster enable output. Serial kinds drive a
// modem control line of the engine serial port.
type BoosterConfig struct {
	Kind   string `yaml:"kind"`
	Invert bool   `yaml:"invert"`
}

// ---- THROTTLE PANELS ----

type ThrottleConfig struct {
	ID        string     `yaml:"id"`
	Endpoint  string     `yaml:"endpoint"`
	UnitID    uint8      `yaml:"unit_id"`
	TimeoutMs int        `yaml:"timeout_ms"`
	Poll      PollConfig `yaml:"poll"`

	// PowerRegister is an optional holding register: 0 = off, non-zero = on.
	PowerRegister *uint16 `yaml:"power_register"`

	Locos []LocoConfig `yaml:"locos"`
}

// LocoConfig maps one decoder address to LocoRegisters consecutive holding
// registers: speed, direction, function bits.
type LocoConfig struct {
	Address  int    `yaml:"address"`
	Register uint16 `yaml:"register"`
}

// LocoRegisters is the number of holding registers per loco block.
const LocoRegisters = 3

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ---- STATUS ----

type StatusConfig struct {
	Endpoint    string `yaml:"endpoint"`
	UnitID      uint8  `yaml:"unit_id"`
	BaseSlot    uint16 `yaml:"base_slot"`
	TimeoutMs   int    `yaml:"timeout_ms"`
	IntervalMs  int    `yaml:"interval_ms"`
	StationName string `yaml:"station_name"`
}
