// cmd/dccstation/hardware.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/tamzrod/dcc-station/internal/clock"
	"github.com/tamzrod/dcc-station/internal/config"
	"github.com/tamzrod/dcc-station/internal/engine"
	"github.com/tamzrod/dcc-station/internal/power"
	"github.com/tamzrod/dcc-station/internal/serialport"
	"github.com/tamzrod/dcc-station/internal/wire"
)

type hardware struct {
	Engine  engine.Engine
	Booster power.BoosterLine
	port    serialport.Port
}

func (h *hardware) Close() {
	if h.port != nil {
		if err := h.port.Close(); err != nil {
			log.Printf("serial close failed: %v", err)
		}
	}
}

// buildHardware opens the serial link when the engine or the booster line
// needs it, and builds both.
func buildHardware(ctx context.Context, sc config.StationConfig) (*hardware, error) {
	hw := &hardware{}

	needPort := sc.Engine.Kind == config.EngineSerial ||
		sc.Booster.Kind == config.BoosterSerialDTR ||
		sc.Booster.Kind == config.BoosterSerialRTS

	if needPort {
		port, err := serialport.Open(*sc.Engine.Serial, nil)
		if err != nil {
			return nil, fmt.Errorf("serial open %s: %w", sc.Engine.Serial.Port, err)
		}
		hw.port = port
	}

	switch sc.Engine.Kind {
	case config.EngineSerial:
		eng := engine.NewSerial(hw.port)
		go func() {
			if err := eng.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("serial engine stopped: %v", err)
			}
		}()
		hw.Engine = eng

	default:
		line := engine.Decoding(engine.Discard, func(p wire.Packet) {
			if !p.ChecksumOK() {
				log.Printf("sim engine: bad checksum on line: % x", p.Bytes)
			}
		})
		hw.Engine = engine.NewSim(engine.Paced(line, clock.Real{}))
	}

	switch sc.Booster.Kind {
	case config.BoosterSerialDTR:
		hw.Booster = serialport.NewModemLine(hw.port, serialport.DTR, sc.Booster.Invert)
	case config.BoosterSerialRTS:
		hw.Booster = serialport.NewModemLine(hw.port, serialport.RTS, sc.Booster.Invert)
	default:
		hw.Booster = &power.MemoryLine{}
	}

	return hw, nil
}
