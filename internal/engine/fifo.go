// internal/engine/fifo.go
package engine

import (
	"sync"

	"github.com/tamzrod/dcc-station/internal/wire"
)

// fifo is a fixed-capacity word queue safe for one producer and one consumer.
type fifo struct {
	mu    sync.Mutex
	data  [QueueCapacity]wire.Word
	head  int // next pop
	count int
}

// push appends up to the free capacity and returns how many words fit.
func (q *fifo) push(words []wire.Word) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := 0
	for _, w := range words {
		if q.count == QueueCapacity {
			break
		}
		q.data[(q.head+q.count)%QueueCapacity] = w
		q.count++
		n++
	}
	return n
}

func (q *fifo) pop() (wire.Word, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == 0 {
		return 0, false
	}
	w := q.data[q.head]
	q.head = (q.head + 1) % QueueCapacity
	q.count--
	return w, true
}

func (q *fifo) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}
