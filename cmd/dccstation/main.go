// cmd/dccstation/main.go
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tamzrod/dcc-station/internal/clock"
	"github.com/tamzrod/dcc-station/internal/config"
	"github.com/tamzrod/dcc-station/internal/power"
	"github.com/tamzrod/dcc-station/internal/scheduler"
	"github.com/tamzrod/dcc-station/internal/station"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: dccstation <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	config.Normalize(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Engine + booster line
	// --------------------

	hw, err := buildHardware(ctx, cfg.Station)
	if err != nil {
		log.Fatalf("hardware setup failed: %v", err)
	}
	defer hw.Close()

	// --------------------
	// Station (once per process)
	// --------------------

	st, err := station.Open(station.Deps{
		Engine:  hw.Engine,
		Booster: hw.Booster,
		Clock:   clock.Real{},
		Scheduler: scheduler.Config{
			Period:   time.Duration(cfg.Station.PacketPeriodMs) * time.Millisecond,
			PadWords: cfg.Station.PadWords,
		},
	})
	if err != nil {
		log.Fatalf("station open failed: %v", err)
	}

	on := power.On
	if got := st.Power(&on); got != power.On {
		log.Fatalf("power on failed: booster line reads %v", got)
	}

	// --------------------
	// Throttle panels + status memory
	// --------------------

	panelIDs := make([]string, 0, len(cfg.Throttles))
	for _, t := range cfg.Throttles {
		panelIDs = append(panelIDs, t.ID)
	}
	health := newPanelHealth(panelIDs...)

	for _, t := range cfg.Throttles {
		if err := startThrottle(ctx, t, st, health); err != nil {
			log.Fatalf("throttle build failed (panel=%s): %v", t.ID, err)
		}
	}

	if cfg.Status != nil {
		closeStatus, err := startStatus(ctx, *cfg.Status, st, health)
		if err != nil {
			log.Printf("status memory disabled: %v", err)
		} else {
			defer closeStatus()
		}
	}

	log.Printf("dccstation running (period=%dms engine=%s booster=%s throttles=%d)",
		cfg.Station.PacketPeriodMs, cfg.Station.Engine.Kind, cfg.Station.Booster.Kind, len(cfg.Throttles))

	// --------------------
	// Block until signal or fatal scheduler error
	// --------------------

	watch := time.NewTicker(time.Second)
	defer watch.Stop()

	for {
		select {
		case <-ctx.Done():
			off := power.Off
			st.Power(&off)
			log.Printf("dccstation stopped")
			return

		case <-watch.C:
			if err := st.Err(); err != nil {
				off := power.Off
				st.Power(&off)
				if errors.Is(err, scheduler.ErrPacketTooLong) {
					log.Fatalf("scheduler stopped on configuration error: %v", err)
				}
				log.Fatalf("scheduler stopped: %v", err)
			}
		}
	}
}
