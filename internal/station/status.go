// internal/station/status.go
package station

import (
	"github.com/tamzrod/dcc-station/internal/power"
	"github.com/tamzrod/dcc-station/internal/status"
)

// Snapshot reports the station part of the status block. Health is
// HealthFault once the scheduler has stopped on a configuration error and
// HealthOK otherwise.
func (s *Station) Snapshot() status.Snapshot {
	st := s.Stats()
	snap := status.Snapshot{
		Power:   s.power.State() == power.On,
		Health:  status.HealthOK,
		Entries: s.reg.Len(),
		Sent:    st.Sent,
		Idle:    st.Idle,
		Dropped: st.Dropped,
	}
	if s.Err() != nil {
		snap.Health = status.HealthFault
	}
	return snap
}
