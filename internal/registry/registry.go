// internal/registry/registry.go

// Package registry holds the latest pending packet per (command class,
// address). The application context mutates it; the scheduler context
// walks it round-robin. All access goes through one mutex.
package registry

import (
	"fmt"
	"sync"

	"github.com/tamzrod/dcc-station/internal/dcc"
)

// Entry is a copy of one registry slot.
type Entry struct {
	Key     dcc.Key
	Payload []byte // address + instruction bytes, no checksum
}

// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	entries map[dcc.Key][]byte
	order   []dcc.Key // insertion order; keys are never removed
	cursor  int       // index into order of the next key to visit
}

func New() *Registry {
	return &Registry{entries: make(map[dcc.Key][]byte)}
}

// SetSpeed records a 128-step speed command. An existing entry for the
// address only has its trailing instruction byte replaced.
// On error nothing is changed.
func (r *Registry) SetSpeed(addr int, dir dcc.Direction, speed int) error {
	if err := dcc.ValidateAddress(addr); err != nil {
		return err
	}
	inst, err := dcc.SpeedInstruction(dir, speed)
	if err != nil {
		return err
	}

	key := dcc.Key{Class: dcc.ClassSpeed, Address: addr}

	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.entries[key]; ok {
		p[len(p)-1] = inst
		return nil
	}

	pkt, err := dcc.SpeedDirection{Address: addr, Direction: dir, Speed: speed}.Packet()
	if err != nil {
		return err
	}
	r.insert(key, pkt)
	return nil
}

// SetFunctionGroup1 sets or clears one of F0-F4. An existing entry keeps
// the other functions' bits.
// On error nothing is changed.
func (r *Registry) SetFunctionGroup1(addr, index, state int) error {
	if err := dcc.ValidateAddress(addr); err != nil {
		return err
	}
	// validates index and state before any mutation
	fresh, err := dcc.EncodeFunctionGroup1(index, state)
	if err != nil {
		return err
	}

	key := dcc.Key{Class: dcc.ClassFunctionGroup1, Address: addr}

	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.entries[key]; ok {
		inst, err := dcc.ApplyFunction(p[len(p)-1], index, state)
		if err != nil {
			return err
		}
		p[len(p)-1] = inst
		return nil
	}

	addrBytes, err := dcc.EncodeAddress(addr)
	if err != nil {
		return err
	}
	r.insert(key, append(addrBytes, fresh))
	return nil
}

func (r *Registry) insert(key dcc.Key, payload []byte) {
	if len(payload) > dcc.MaxPayload {
		panic(fmt.Sprintf("registry: payload for %s exceeds %d bytes", key, dcc.MaxPayload))
	}
	r.entries[key] = payload
	r.order = append(r.order, key)
}

// Next returns the next entry round-robin, wrapping to the first key when
// the pass is exhausted. ok is false when the registry is empty.
func (r *Registry) Next() (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.order) == 0 {
		return Entry{}, false
	}
	if r.cursor >= len(r.order) {
		r.cursor = 0
	}
	key := r.order[r.cursor]
	r.cursor++
	return Entry{Key: key, Payload: clone(r.entries[key])}, true
}

// Reset moves the cursor back to the first key.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cursor = 0
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// Get returns a copy of the payload stored for key.
func (r *Registry) Get(key dcc.Key) ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.entries[key]
	if !ok {
		return nil, false
	}
	return clone(p), true
}

// Entries returns a copy of every entry in visiting order.
func (r *Registry) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, Entry{Key: k, Payload: clone(r.entries[k])})
	}
	return out
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
