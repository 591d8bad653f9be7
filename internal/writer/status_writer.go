// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/dcc-station/internal/status"
)

// StatusWriter is the delivery-only contract for station status.
// It receives a snapshot and writes it verbatim.
// No logic, no interpretation.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// endpointClient is the exact contract the status writer uses.
type endpointClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}

// StatusPlan locates the status block in status memory.
type StatusPlan struct {
	Endpoint    string
	UnitID      uint8
	BaseSlot    uint16
	StationName string
}

// stationStatusWriter writes the full block on first use and after any
// failure, and only the changed live slots otherwise.
type stationStatusWriter struct {
	plan StatusPlan
	cli  endpointClient

	needFull bool
	last     []uint16 // live slots as last written
	nameRegs []uint16
}

// NewStatusWriter builds a status writer for plan.
func NewStatusWriter(plan StatusPlan, cli endpointClient) (*stationStatusWriter, error) {
	if cli == nil {
		return nil, fmt.Errorf("status writer: missing client for endpoint %s", plan.Endpoint)
	}
	return &stationStatusWriter{
		plan:     plan,
		cli:      cli,
		needFull: true, // full re-assert on first successful write
		nameRegs: status.EncodeName(plan.StationName),
	}, nil
}

// WriteStatus delivers a snapshot into status memory.
// On any write failure, the next call re-asserts the full block.
func (sw *stationStatusWriter) WriteStatus(s status.Snapshot) error {
	if sw == nil {
		return errors.New("status writer: disabled")
	}

	baseAddr := sw.baseAddr()

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		regs := status.Block(s, sw.nameRegs)

		if err := sw.cli.WriteRegisters(sw.plan.UnitID, baseAddr, regs); err != nil {
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}

		sw.needFull = false
		sw.last = regs[:status.SlotLive]
		return nil
	}

	// ------------------------------------------------------------
	// Incremental: one write per run of changed slots
	// ------------------------------------------------------------
	live := status.Encode(s)

	var errs []string
	for start := 0; start < len(live); {
		if live[start] == sw.last[start] {
			start++
			continue
		}
		end := start
		for end+1 < len(live) && live[end+1] != sw.last[end+1] {
			end++
		}

		run := live[start : end+1]
		if err := sw.cli.WriteRegisters(sw.plan.UnitID, baseAddr+uint16(start), run); err != nil {
			errs = append(errs, fmt.Sprintf("slots %d-%d write failed: %v", start, end, err))
		} else {
			copy(sw.last[start:], run)
		}
		start = end + 1
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt; re-assert on next call.
		sw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	return nil
}

func (sw *stationStatusWriter) baseAddr() uint16 {
	// Each status block owns SlotsPerStation registers.
	return sw.plan.BaseSlot * status.SlotsPerStation
}
