// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shot

import (
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// cell is the shared representation of a one-shot channel: a single
// mutex-guarded slot plus a condition variable to park the receiver
// while the slot is empty. The slot holds at most one value and the
// value is taken out exactly once.
type cell[T any] struct {
	mu    sync.Mutex
	ready sync.Cond
	val   T
	full  bool
}

// Sender is the producer capability of a one-shot channel.
// It is single-use: Send consumes it, a second Send panics.
type Sender[T any] struct {
	cell   *cell[T]
	spent  atomix.Uint32
	serial Serial
}

// Receiver is the consumer capability of a one-shot channel.
// It is single-use: Recv (or a successful TryRecv) consumes it.
type Receiver[T any] struct {
	cell   *cell[T]
	spent  atomix.Uint32
	serial Serial
}

// chanPair holds the cell and both capabilities in a single allocation.
type chanPair[T any] struct {
	s Sender[T]
	r Receiver[T]
	c cell[T]
}

// New creates a one-shot channel and returns its capability pair.
// The Sender and Receiver are always issued together and share the
// same cell and serial. The cell starts empty; exactly one value may
// ever pass through it.
func New[T any]() (*Sender[T], *Receiver[T]) {
	p := &chanPair[T]{}
	p.c.ready.L = &p.c.mu
	serial := nextSerial()
	p.s = Sender[T]{cell: &p.c, serial: serial}
	p.r = Receiver[T]{cell: &p.c, serial: serial}
	return &p.s, &p.r
}

// Serial returns the serial number assigned to this channel.
func (s *Sender[T]) Serial() Serial {
	return s.serial
}

// Serial returns the serial number assigned to this channel.
func (r *Receiver[T]) Serial() Serial {
	return r.serial
}

// Send deposits v into the cell and wakes the waiting receiver, if any.
// Send consumes the capability and never blocks: the single-use
// discipline guarantees the slot is empty. A Send on a spent Sender,
// or a second Send reaching the same cell through a duplicated
// capability, is a contract violation and panics.
func (s *Sender[T]) Send(v T) {
	if s.spent.Add(1) != 1 {
		panic("shot: send on spent Sender")
	}
	c := s.cell
	c.mu.Lock()
	if c.full {
		c.mu.Unlock()
		panic("shot: double send on one-shot cell")
	}
	c.val = v
	c.full = true
	c.mu.Unlock()
	c.ready.Signal()
}

// Recv takes the value out of the cell, waiting on the condition
// variable while the slot is empty. The wait releases the mutex and
// suspends atomically, so a Send between the emptiness check and the
// suspension cannot be missed; the slot is re-checked after every
// wakeup to tolerate spurious wakeups. Recv consumes the capability.
//
// Recv blocks unboundedly if no Send ever arrives. There is no timeout
// in the core contract; callers needing liveness use the multi-shot
// close signal or the non-blocking TryRecv.
func (r *Receiver[T]) Recv() T {
	if r.spent.Add(1) != 1 {
		panic("shot: recv on spent Receiver")
	}
	c := r.cell
	c.mu.Lock()
	for !c.full {
		c.ready.Wait()
	}
	v := c.val
	var zero T
	c.val = zero
	c.full = false
	c.mu.Unlock()
	return v
}

// TryRecv is the non-blocking variant of Recv. If the slot is empty it
// returns iox.ErrWouldBlock and the capability stays live for a later
// retry; on success the value is taken and the capability is consumed,
// exactly as with Recv.
func (r *Receiver[T]) TryRecv() (T, error) {
	c := r.cell
	c.mu.Lock()
	if !c.full {
		c.mu.Unlock()
		var zero T
		return zero, iox.ErrWouldBlock
	}
	if r.spent.Add(1) != 1 {
		c.mu.Unlock()
		panic("shot: recv on spent Receiver")
	}
	v := c.val
	var zero T
	c.val = zero
	c.full = false
	c.mu.Unlock()
	return v, nil
}
