// Exclusive access to the GPIO peripheral state
package core

import "sync/atomic"

// spinLock is a cross-core mutual exclusion primitive. It busy-waits on a
// compare-and-swap with local interrupts disabled while held, so it is safe
// between cores without an operating-system scheduler. There is no wait
// bound; starvation under contention is an accepted limitation.
type spinLock struct {
	held uint32
}

func (l *spinLock) lock() irqState {
	is := disableInterrupts()
	for !atomic.CompareAndSwapUint32(&l.held, 0, 1) {
	}
	return is
}

func (l *spinLock) unlock(is irqState) {
	atomic.StoreUint32(&l.held, 0)
	restoreInterrupts(is)
}

// The one peripheral state instance and the lock serializing all access to
// it. External code never sees the state outside a With call.
var (
	gpioState Gpio
	gpioLock  spinLock
)

// With runs action with exclusive access to the GPIO peripheral state and
// returns its result. The cross-core lock is held for the duration of the
// action and released on every exit path.
//
// Calling With again from within an action, or from an event handler running
// in interrupt context, is forbidden: the lock is not reentrant and the
// calling core would spin on itself forever.
func With[T any](action func(g *Gpio) T) T {
	is := gpioLock.lock()
	defer gpioLock.unlock(is)
	return action(&gpioState)
}
