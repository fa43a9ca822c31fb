package console

import "sync/atomic"

const ringSize = 16 // power of two, indices wrap by masking

// eventRing carries fired pin numbers from interrupt context to the console
// loop. Single producer (the event handler), single consumer (the loop);
// push never blocks and drops when full, since a lost notification beats
// a wedged interrupt handler.
type eventRing struct {
	buf  [ringSize]uint8
	head atomic.Uint32 // next write
	tail atomic.Uint32 // next read
}

func (r *eventRing) push(pin uint8) bool {
	head := r.head.Load()
	if head-r.tail.Load() >= ringSize {
		return false
	}
	r.buf[head%ringSize] = pin
	r.head.Store(head + 1)
	return true
}

func (r *eventRing) pop() (uint8, bool) {
	tail := r.tail.Load()
	if tail == r.head.Load() {
		return 0, false
	}
	pin := r.buf[tail%ringSize]
	r.tail.Store(tail + 1)
	return pin, true
}
