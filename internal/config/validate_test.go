// internal/config/validate_test.go
package config

import (
	"testing"

	"github.com/tamzrod/dcc-station/internal/serialport"
)

// helper to build a throttle panel quickly
func panel(id, endpoint string, locos ...LocoConfig) ThrottleConfig {
	return ThrottleConfig{
		ID:       id,
		Endpoint: endpoint,
		UnitID:   1,
		Locos:    locos,
	}
}

func loco(addr int, reg uint16) LocoConfig {
	return LocoConfig{Address: addr, Register: reg}
}

func u16(v uint16) *uint16 { return &v }

func baseConfig() *Config {
	return &Config{
		Station: StationConfig{
			PacketPeriodMs: 15,
			Engine:         EngineConfig{Kind: EngineSim},
			Booster:        BoosterConfig{Kind: BoosterNone},
		},
	}
}

// ---- station ----

func TestValidate_MinimalConfig(t *testing.T) {
	if err := Validate(&Config{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_PeriodRange(t *testing.T) {
	for _, ms := range []int{-1, 31, 100} {
		cfg := baseConfig()
		cfg.Station.PacketPeriodMs = ms
		if err := Validate(cfg); err == nil {
			t.Fatalf("period %d: expected error, got nil", ms)
		}
	}

	cfg := baseConfig()
	cfg.Station.PacketPeriodMs = 30
	if err := Validate(cfg); err != nil {
		t.Fatalf("period 30: unexpected error: %v", err)
	}
}

func TestValidate_QueueWordsFixed(t *testing.T) {
	cfg := baseConfig()
	cfg.Station.Engine.QueueWords = 16
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected queue_words error, got nil")
	}
}

func TestValidate_UnknownKinds(t *testing.T) {
	cfg := baseConfig()
	cfg.Station.Engine.Kind = "pio"
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected engine kind error, got nil")
	}

	cfg = baseConfig()
	cfg.Station.Booster.Kind = "gpio"
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected booster kind error, got nil")
	}
}

func TestValidate_SerialEngineNeedsPort(t *testing.T) {
	cfg := baseConfig()
	cfg.Station.Engine.Kind = EngineSerial
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected missing serial section error, got nil")
	}

	cfg.Station.Engine.Serial = &serialport.PortOptions{}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected missing port error, got nil")
	}

	cfg.Station.Engine.Serial = &serialport.PortOptions{Port: "/dev/ttyACM0", Parity: "space"}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected parity error, got nil")
	}

	cfg.Station.Engine.Serial = &serialport.PortOptions{Port: "/dev/ttyACM0"}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ModemBoosterNeedsSerial(t *testing.T) {
	cfg := baseConfig()
	cfg.Station.Booster.Kind = BoosterSerialDTR
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error, got nil")
	}

	cfg.Station.Engine.Serial = &serialport.PortOptions{Port: "/dev/ttyUSB0"}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// ---- throttles ----

func TestValidate_ThrottleIDs(t *testing.T) {
	cfg := baseConfig()
	cfg.Throttles = []ThrottleConfig{panel("", "ep1", loco(3, 0))}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected empty id error, got nil")
	}

	cfg.Throttles = []ThrottleConfig{
		panel("p1", "ep1", loco(3, 0)),
		panel("p1", "ep2", loco(4, 0)),
	}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected duplicate id error, got nil")
	}
}

func TestValidate_ThrottleNeedsWork(t *testing.T) {
	cfg := baseConfig()
	cfg.Throttles = []ThrottleConfig{panel("p1", "ep1")}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected nothing-to-poll error, got nil")
	}

	cfg.Throttles[0].PowerRegister = u16(0)
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_LocoAddressRange(t *testing.T) {
	for _, addr := range []int{0, 0x2800} {
		cfg := baseConfig()
		cfg.Throttles = []ThrottleConfig{panel("p1", "ep1", loco(addr, 0))}
		if err := Validate(cfg); err == nil {
			t.Fatalf("address %d: expected error, got nil", addr)
		}
	}
}

func TestValidate_TouchingLocoBlocksAllowed(t *testing.T) {
	cfg := baseConfig()
	cfg.Throttles = []ThrottleConfig{
		panel("p1", "ep1", loco(3, 0), loco(4, 3)), // 0-2, 3-5
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_LocoOverlapDetected(t *testing.T) {
	cfg := baseConfig()
	cfg.Throttles = []ThrottleConfig{
		panel("p1", "ep1", loco(3, 0), loco(4, 2)), // 0-2, 2-4 -> overlap
	}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected overlap error, got nil")
	}
}

func TestValidate_PowerRegisterOverlapDetected(t *testing.T) {
	cfg := baseConfig()
	p := panel("p1", "ep1", loco(3, 10)) // 10-12
	p.PowerRegister = u16(11)
	cfg.Throttles = []ThrottleConfig{p}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected overlap error, got nil")
	}
}

func TestValidate_SameRegistersOnDifferentPanels(t *testing.T) {
	cfg := baseConfig()
	cfg.Throttles = []ThrottleConfig{
		panel("p1", "ep1", loco(3, 0)),
		panel("p2", "ep2", loco(4, 0)),
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_DuplicateLocoOnPanel(t *testing.T) {
	cfg := baseConfig()
	cfg.Throttles = []ThrottleConfig{
		panel("p1", "ep1", loco(3, 0), loco(3, 10)),
	}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected duplicate loco error, got nil")
	}
}

func TestValidate_LocoBlockPastEnd(t *testing.T) {
	cfg := baseConfig()
	cfg.Throttles = []ThrottleConfig{panel("p1", "ep1", loco(3, 0xFFFE))}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected range error, got nil")
	}
}

// ---- status ----

func TestValidate_StatusName(t *testing.T) {
	cfg := baseConfig()
	cfg.Status = &StatusConfig{Endpoint: "ep", StationName: "YARD-é"}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected ASCII error, got nil")
	}
}

func TestValidate_StatusEndpointAndSlot(t *testing.T) {
	cfg := baseConfig()
	cfg.Status = &StatusConfig{}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected endpoint error, got nil")
	}

	cfg.Status = &StatusConfig{Endpoint: "ep", BaseSlot: 65535}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected slot range error, got nil")
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	cfg := &Config{Status: &StatusConfig{Endpoint: "ep", StationName: "A-VERY-LONG-STATION-NAME"}}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Station.PacketPeriodMs != 0 || cfg.Status.StationName != "A-VERY-LONG-STATION-NAME" {
		t.Fatalf("Validate mutated config: %+v", cfg)
	}
}
