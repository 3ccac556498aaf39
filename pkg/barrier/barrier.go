// Package barrier provides a reusable rendezvous point for a fixed number of
// goroutines.
//
// A Barrier releases its waiters only when all parties have called Wait, then
// resets itself for the next round. Everything a party wrote before calling
// Wait is visible to every party after its Wait returns, so a barrier can be
// used to hand off data between phases without further locking.
package barrier

import (
	"errors"
	"fmt"
	"sync"
)

// ErrBroken is returned by Wait once Break has been called.
var ErrBroken = errors.New("barrier: broken")

type Barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	parties    int
	waiting    int
	generation uint64
	broken     bool
}

// New returns a barrier for the given number of parties. It panics if
// parties < 1.
func New(parties int) *Barrier {
	if parties < 1 {
		panic(fmt.Sprintf("barrier: invalid party count %d", parties))
	}
	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

func (b *Barrier) Parties() int {
	return b.parties
}

// Wait blocks until all parties of the current generation have arrived. It
// returns ErrBroken if the barrier is broken before or while waiting.
func (b *Barrier) Wait() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.broken {
		return ErrBroken
	}

	gen := b.generation
	b.waiting++
	if b.waiting == b.parties {
		// Last arrival opens the next generation.
		b.waiting = 0
		b.generation++
		b.cond.Broadcast()
		return nil
	}

	for gen == b.generation && !b.broken {
		b.cond.Wait()
	}
	if gen == b.generation {
		return ErrBroken
	}
	return nil
}

// Break wakes every waiter with ErrBroken and makes all later Waits fail.
func (b *Barrier) Break() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.broken = true
	b.cond.Broadcast()
}
