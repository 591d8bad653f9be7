// cmd/dccstation/status.go
package main

import (
	"context"
	"time"

	"github.com/tamzrod/dcc-station/internal/clock"
	"github.com/tamzrod/dcc-station/internal/config"
	"github.com/tamzrod/dcc-station/internal/station"
	"github.com/tamzrod/dcc-station/internal/status"
	"github.com/tamzrod/dcc-station/internal/writer"
)

// startStatus publishes the station status block until ctx is done.
func startStatus(ctx context.Context, sc config.StatusConfig, st *station.Station, health *panelHealth) (func() error, error) {
	sw, closeWriter, err := writer.BuildStatusWriter(sc)
	if err != nil {
		return nil, err
	}

	pub, err := writer.NewPublisher(
		sw,
		func() status.Snapshot { return health.overlay(st.Snapshot()) },
		time.Duration(sc.IntervalMs)*time.Millisecond,
		clock.Real{},
	)
	if err != nil {
		_ = closeWriter()
		return nil, err
	}

	go pub.Run(ctx)
	return closeWriter, nil
}
