// internal/config/normalize.go
package config

import "strings"

const (
	DefaultPacketPeriodMs = 15
	DefaultQueueWords     = 8
	DefaultTimeoutMs      = 1000
	DefaultPollMs         = 100
	DefaultStatusMs       = 1000

	StationNameMaxChars = 16
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	st := &cfg.Station
	if st.PacketPeriodMs == 0 {
		st.PacketPeriodMs = DefaultPacketPeriodMs
	}
	if st.Engine.Kind == "" {
		st.Engine.Kind = EngineSim
	}
	if st.Engine.QueueWords == 0 {
		st.Engine.QueueWords = DefaultQueueWords
	}
	if st.Booster.Kind == "" {
		st.Booster.Kind = BoosterNone
	}
	if st.Engine.Serial != nil {
		// options were validated; the error is impossible here
		if opts, err := st.Engine.Serial.Normalize(); err == nil {
			*st.Engine.Serial = opts
		}
	}

	for i := range cfg.Throttles {
		t := &cfg.Throttles[i]
		if t.TimeoutMs == 0 {
			t.TimeoutMs = DefaultTimeoutMs
		}
		if t.Poll.IntervalMs == 0 {
			t.Poll.IntervalMs = DefaultPollMs
		}
	}

	if s := cfg.Status; s != nil {
		if s.TimeoutMs == 0 {
			s.TimeoutMs = DefaultTimeoutMs
		}
		if s.IntervalMs == 0 {
			s.IntervalMs = DefaultStatusMs
		}
		// ASCII already validated
		s.StationName = strings.TrimSpace(s.StationName)
		if len(s.StationName) > StationNameMaxChars {
			s.StationName = s.StationName[:StationNameMaxChars]
		}
	}
}
