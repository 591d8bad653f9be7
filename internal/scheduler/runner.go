// internal/scheduler/runner.go
package scheduler

import (
	"github.com/tamzrod/dcc-station/internal/monitoring"
)

// Start begins the periodic tick. It returns immediately; calling Start
// on a running scheduler does nothing.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		return
	}
	s.err = nil
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(s.stop, s.done)
}

// Stop ends the periodic tick. A tick already in progress completes.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Running reports whether the tick loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}

// run is the tick loop. One goroutine per Start. No overlap. No retries.
func (s *Scheduler) run(stop, done chan struct{}) {
	defer close(done)

	ticker := s.clk.NewTicker(s.cfg.Period)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			if err := s.Tick(); err != nil {
				monitoring.Logf("scheduler: fatal: %v; tick loop aborted", err)
				s.mu.Lock()
				s.err = err
				if s.stop == stop {
					s.stop, s.done = nil, nil
				}
				s.mu.Unlock()
				return
			}
		}
	}
}
