// internal/engine/serial.go
package engine

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/tamzrod/dcc-station/internal/monitoring"
	"github.com/tamzrod/dcc-station/internal/wire"
)

// Serial forwards control words to an external real-time co-processor
// that owns the waveform timing.
//
// Link protocol (host -> co-processor):
//
//	'G'              start generation
//	'H'              halt after the co-processor FIFO drains
//	'W' b3 b2 b1 b0  one control word, big-endian
//
// The link carries no flow control back to the host. Free and Enqueue see
// only the host-side queue, which Run drains onto the link as fast as the
// port accepts writes. Queue pressure is therefore enforced on the far side
// of the link by the co-processor FIFO, and the scheduler's drop accounting
// only covers words that never left the host.
type Serial struct {
	port  io.Writer
	words chan wire.Word

	mu sync.Mutex // serializes port writes
}

const (
	opStart byte = 'G'
	opHalt  byte = 'H'
	opWord  byte = 'W'
)

// NewSerial returns an engine writing to port. Run must be started to
// move queued words onto the link.
func NewSerial(port io.Writer) *Serial {
	return &Serial{
		port:  port,
		words: make(chan wire.Word, QueueCapacity),
	}
}

func (s *Serial) Enqueue(words []wire.Word) int {
	n := 0
	for _, w := range words {
		select {
		case s.words <- w:
			n++
		default:
			return n
		}
	}
	return n
}

func (s *Serial) Start() {
	if err := s.write([]byte{opStart}); err != nil {
		monitoring.Logf("engine serial: start failed: %v", err)
	}
}

func (s *Serial) Stop() {
	if err := s.write([]byte{opHalt}); err != nil {
		monitoring.Logf("engine serial: halt failed: %v", err)
	}
}

// Run copies queued words to the link until ctx is done or a write fails.
func (s *Serial) Run(ctx context.Context) error {
	var frame [5]byte
	frame[0] = opWord
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case w := <-s.words:
			binary.BigEndian.PutUint32(frame[1:], uint32(w))
			if err := s.write(frame[:]); err != nil {
				return fmt.Errorf("engine serial: word write: %w", err)
			}
		}
	}
}

func (s *Serial) write(b []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(b) > 0 {
		n, err := s.port.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// Free reports the remaining host-side queue capacity. It says nothing
// about the co-processor FIFO.
func (s *Serial) Free() int {
	return cap(s.words) - len(s.words)
}
