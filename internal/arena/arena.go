// Package arena is the demo allocator the CLI harness executes frames
// against. It hands out integer-addressed backing slots for transient
// resources and pools released slots for reuse, keyed by descriptor, which
// is the classic frame-graph trick of aliasing transients that never
// overlap in time.
package arena

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Arena allocates backing slots and recycles released ones. The pool is an
// LRU over descriptor keys, so descriptors that stop appearing eventually
// drop their cached slots. Not safe for concurrent use; the frame graph is
// single-threaded by contract.
type Arena struct {
	serial    uint32
	allocated int
	reused    int
	pool      *lru.Cache[string, []uint32]
}

// New creates an arena whose pool retains slots for at most size distinct
// descriptor keys.
func New(size int) (*Arena, error) {
	pool, err := lru.New[string, []uint32](size)
	if err != nil {
		return nil, fmt.Errorf("creating arena pool: %w", err)
	}
	return &Arena{pool: pool}, nil
}

// Acquire returns a backing slot for the given descriptor key, reusing a
// pooled slot when one is available.
func (a *Arena) Acquire(key string) uint32 {
	if slots, ok := a.pool.Get(key); ok && len(slots) > 0 {
		slot := slots[len(slots)-1]
		a.pool.Add(key, slots[:len(slots)-1])
		a.reused++
		return slot
	}
	a.serial++
	a.allocated++
	return a.serial
}

// Release returns a slot to the pool under its descriptor key.
func (a *Arena) Release(key string, slot uint32) {
	slots, _ := a.pool.Get(key)
	a.pool.Add(key, append(slots, slot))
}

// Allocated reports how many fresh slots were handed out.
func (a *Arena) Allocated() int { return a.allocated }

// Reused reports how many acquisitions were served from the pool.
func (a *Arena) Reused() int { return a.reused }
