// internal/writer/publisher.go
package writer

import (
	"context"
	"errors"
	"time"

	"github.com/tamzrod/dcc-station/internal/clock"
	"github.com/tamzrod/dcc-station/internal/monitoring"
	"github.com/tamzrod/dcc-station/internal/status"
)

// SnapshotFunc produces the current station status.
type SnapshotFunc func() status.Snapshot

// Publisher writes a snapshot on start and on every interval.
// Write failures are logged; the writer re-asserts the full block later.
type Publisher struct {
	w        StatusWriter
	src      SnapshotFunc
	interval time.Duration
	clk      clock.Clock
}

func NewPublisher(w StatusWriter, src SnapshotFunc, interval time.Duration, clk clock.Clock) (*Publisher, error) {
	if w == nil || src == nil {
		return nil, errors.New("publisher: writer and snapshot source required")
	}
	if interval <= 0 {
		return nil, errors.New("publisher: interval must be > 0")
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &Publisher{w: w, src: src, interval: interval, clk: clk}, nil
}

// PublishOnce writes one snapshot.
func (p *Publisher) PublishOnce() error {
	return p.w.WriteStatus(p.src())
}

// Run publishes until ctx is done.
func (p *Publisher) Run(ctx context.Context) {
	if err := p.PublishOnce(); err != nil {
		monitoring.Logf("status write failed on start: %v", err)
	}

	ticker := p.clk.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			if err := p.PublishOnce(); err != nil {
				monitoring.Logf("status write failed: %v", err)
			}
		}
	}
}
