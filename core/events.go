// Event detection and the interrupt-context dispatch table
package core

import "sync/atomic"

// Events is a bitmask of hardware-detectable pin event kinds. Multiple kinds
// may be armed on the same pin at once; the async edge kinds sample the pin
// outside the GPIO clock domain and catch shorter pulses.
type Events uint8

const (
	RisingEdge Events = 1 << iota
	FallingEdge
	HighLevel
	LowLevel
	AsyncRisingEdge
	AsyncFallingEdge
)

const allEvents = RisingEdge | FallingEdge | HighLevel | LowLevel | AsyncRisingEdge | AsyncFallingEdge

// Bank identifies one of the two GPIO interrupt banks (GPIO0..31 and
// GPIO32..53), each with its own interrupt line and status register.
type Bank uint8

const (
	Bank0 Bank = iota
	Bank1
)

// eventSlot is one dispatch table entry. At most one handler is registered
// per pin; it fields every armed kind. The one-shot handler is dropped after
// its first invocation, the recurring one stays.
type eventSlot struct {
	armed     Events
	recurring func()
	oneshot   func()
}

// eventTable maps pin numbers to registered handlers. Entries are written
// only while the exclusive-access lock is held and persist independently of
// the pin handle that created them, so a handler stays reachable from
// interrupt context after its handle has gone out of scope.
var eventTable [NumPins]eventSlot

// bankAccess gates table access between registration and the interrupt
// handler. A mutex cannot be used here: the interrupt handler must never
// block. Registration spins (it runs with local interrupts off, briefly);
// the interrupt side skips a contended slot instead of waiting.
var bankAccess [numBanks]atomic.Bool

func lockBank(b int) {
	for !bankAccess[b].CompareAndSwap(false, true) {
	}
}

func unlockBank(b int) {
	bankAccess[b].Store(false)
}

// enableRegs returns the detect-enable register pair for a single event kind.
func enableRegs(kind Events) *[2]reg32 {
	switch kind {
	case RisingEdge:
		return &regs.RisingEnable
	case FallingEdge:
		return &regs.FallingEnable
	case HighLevel:
		return &regs.HighEnable
	case LowLevel:
		return &regs.LowEnable
	case AsyncRisingEdge:
		return &regs.AsyncRisingEnable
	case AsyncFallingEdge:
		return &regs.AsyncFallingEnable
	}
	return nil
}

func setHandler(num uint8, handler func(), once bool) {
	b := bankIndex(num)
	lockBank(b)
	if once {
		eventTable[num].oneshot = handler
		eventTable[num].recurring = nil
	} else {
		eventTable[num].recurring = handler
		eventTable[num].oneshot = nil
	}
	unlockBank(b)
}

func armEvents(num uint8, ev Events) {
	b := bankIndex(num)
	mask := slotMask(num)
	for kind := RisingEdge; kind <= AsyncFallingEdge; kind <<= 1 {
		if ev&kind != 0 {
			enableRegs(kind)[b].SetBits(mask)
		}
	}
	lockBank(b)
	eventTable[num].armed |= ev & allEvents
	unlockBank(b)
}

func disarmEvents(num uint8, ev Events) {
	b := bankIndex(num)
	mask := slotMask(num)
	for kind := RisingEdge; kind <= AsyncFallingEdge; kind <<= 1 {
		if ev&kind != 0 {
			enableRegs(kind)[b].ClearBits(mask)
		}
	}
	lockBank(b)
	eventTable[num].armed &^= ev
	if eventTable[num].armed == 0 {
		eventTable[num].recurring = nil
		eventTable[num].oneshot = nil
	}
	unlockBank(b)
}

// Armed returns the event kinds currently armed on a pin, so a handler that
// fields several kinds can discriminate. The read is advisory and unlocked.
func Armed(num uint8) Events {
	if num >= NumPins {
		return 0
	}
	return eventTable[num].armed
}

// HandleInterrupt services all pending GPIO events of one bank. It is the
// entry point the external interrupt controller invokes when the bank's
// interrupt line fires; it never installs the vector itself.
//
// Pending pins are serviced in ascending pin order. For each one the
// registered handler is invoked (one-shot first, consuming it), then the
// pin's event-status bit is cleared unconditionally, handler or not. A
// status bit left set re-fires immediately, so an unhandled event is
// acknowledged and dropped rather than wedging the line.
func HandleInterrupt(bank Bank) {
	b := int(bank)
	if b >= numBanks {
		return
	}
	pending := regs.EventStatus[b].Get()
	for slot := uint8(0); pending != 0; slot++ {
		if pending&1 != 0 {
			invoke(uint8(b*32) + slot)
			regs.EventStatus[b].Set(1 << slot)
		}
		pending >>= 1
	}
}

// invoke calls the handler registered for pin, if any. The bank gate is held
// only while the slot is read and released before the handler runs; if
// registration holds the gate on another core the event is dropped, the
// status bit still gets cleared by the caller.
func invoke(pin uint8) {
	b := bankIndex(pin)
	if !bankAccess[b].CompareAndSwap(false, true) {
		return
	}
	once := eventTable[pin].oneshot
	eventTable[pin].oneshot = nil
	recurring := eventTable[pin].recurring
	bankAccess[b].Store(false)
	if once != nil {
		once()
	}
	if recurring != nil {
		recurring()
	}
}
