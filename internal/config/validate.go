// internal/config/validate.go
package config

import (
	"errors"
	"fmt"

	"github.com/tamzrod/dcc-station/internal/dcc"
	"github.com/tamzrod/dcc-station/internal/status"
)

// MaxPacketPeriodMs is the longest gap NMRA allows between packets.
const MaxPacketPeriodMs = 30

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil")
	}
	if err := validateStation(&cfg.Station); err != nil {
		return err
	}
	if err := validateThrottles(cfg.Throttles); err != nil {
		return err
	}
	if cfg.Status != nil {
		if err := validateStatus(cfg.Status); err != nil {
			return err
		}
	}
	return nil
}

// ------------------------------------------------------------
// STATION
// ------------------------------------------------------------

func validateStation(st *StationConfig) error {
	if st.PacketPeriodMs < 0 || st.PacketPeriodMs > MaxPacketPeriodMs {
		return fmt.Errorf("station: packet_period_ms %d out of range 1..%d", st.PacketPeriodMs, MaxPacketPeriodMs)
	}
	if st.PadWords < 0 || st.PadWords > 1 {
		return fmt.Errorf("station: pad_words %d out of range 0..1", st.PadWords)
	}

	switch st.Engine.Kind {
	case "", EngineSim:
	case EngineSerial:
		if st.Engine.Serial == nil {
			return errors.New("station: engine kind serial requires engine.serial")
		}
	default:
		return fmt.Errorf("station: unknown engine kind %q", st.Engine.Kind)
	}

	if st.Engine.QueueWords != 0 && st.Engine.QueueWords != DefaultQueueWords {
		return fmt.Errorf("station: queue_words must be %d", DefaultQueueWords)
	}

	if st.Engine.Serial != nil {
		if st.Engine.Serial.Port == "" {
			return errors.New("station: engine.serial.port required")
		}
		if _, err := st.Engine.Serial.Normalize(); err != nil {
			return fmt.Errorf("station: engine.serial: %w", err)
		}
	}

	switch st.Booster.Kind {
	case "", BoosterNone:
	case BoosterSerialDTR, BoosterSerialRTS:
		if st.Engine.Serial == nil {
			return fmt.Errorf("station: booster kind %s requires engine.serial", st.Booster.Kind)
		}
	default:
		return fmt.Errorf("station: unknown booster kind %q", st.Booster.Kind)
	}

	return nil
}

// ------------------------------------------------------------
// THROTTLE PANELS
// ------------------------------------------------------------

func validateThrottles(ts []ThrottleConfig) error {
	type span struct {
		start uint32
		end   uint32
		what  string
	}

	ids := make(map[string]struct{})

	for _, t := range ts {
		if t.ID == "" {
			return errors.New("throttle: id required")
		}
		if _, dup := ids[t.ID]; dup {
			return fmt.Errorf("throttle %q: duplicate id", t.ID)
		}
		ids[t.ID] = struct{}{}

		if t.Endpoint == "" {
			return fmt.Errorf("throttle %q: endpoint required", t.ID)
		}
		if t.TimeoutMs < 0 || t.Poll.IntervalMs < 0 {
			return fmt.Errorf("throttle %q: timeout_ms and poll.interval_ms must be >= 0", t.ID)
		}
		if len(t.Locos) == 0 && t.PowerRegister == nil {
			return fmt.Errorf("throttle %q: nothing to poll (no locos, no power_register)", t.ID)
		}

		// register overlap within one panel (inclusive)
		var spans []span
		claim := func(start uint32, qty uint32, what string) error {
			end := start + qty - 1
			if end > 0xFFFF {
				return fmt.Errorf("throttle %q: %s registers %d-%d exceed 65535", t.ID, what, start, end)
			}
			for _, s := range spans {
				if !(end < s.start || start > s.end) {
					return fmt.Errorf(
						"throttle %q: register overlap: %s range=%d-%d overlaps with %s range=%d-%d",
						t.ID, what, start, end, s.what, s.start, s.end,
					)
				}
			}
			spans = append(spans, span{start: start, end: end, what: what})
			return nil
		}

		if t.PowerRegister != nil {
			if err := claim(uint32(*t.PowerRegister), 1, "power"); err != nil {
				return err
			}
		}

		addrs := make(map[int]struct{})
		for _, l := range t.Locos {
			if err := dcc.ValidateAddress(l.Address); err != nil {
				return fmt.Errorf("throttle %q: loco %d: %w", t.ID, l.Address, err)
			}
			if _, dup := addrs[l.Address]; dup {
				return fmt.Errorf("throttle %q: loco %d listed twice", t.ID, l.Address)
			}
			addrs[l.Address] = struct{}{}

			what := fmt.Sprintf("loco %d", l.Address)
			if err := claim(uint32(l.Register), LocoRegisters, what); err != nil {
				return err
			}
		}
	}
	return nil
}

// ------------------------------------------------------------
// STATUS MEMORY
// ------------------------------------------------------------

func validateStatus(s *StatusConfig) error {
	if s.Endpoint == "" {
		return errors.New("status: endpoint required")
	}
	if s.TimeoutMs < 0 || s.IntervalMs < 0 {
		return errors.New("status: timeout_ms and interval_ms must be >= 0")
	}

	// station_name sanity (ASCII only)
	for i := 0; i < len(s.StationName); i++ {
		if s.StationName[i] > 0x7F {
			return errors.New("status: station_name must contain ASCII characters only")
		}
	}

	last := uint32(s.BaseSlot)*status.SlotsPerStation + status.SlotsPerStation - 1
	if last > 0xFFFF {
		return fmt.Errorf("status: base_slot %d places the block beyond register 65535", s.BaseSlot)
	}
	return nil
}
