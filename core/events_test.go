package core

import (
	"testing"

	"github.com/go-test/deep"
)

func resetEvents() {
	eventTable = [NumPins]eventSlot{}
}

func TestEventDispatchInvokesHandlerOnce(t *testing.T) {
	resetRegisters()
	resetEvents()
	g := &Gpio{}

	p, _ := g.Pin(12)
	in := p.IntoInput()

	count := 0
	in.OnEvent(RisingEdge, func() { count++ })

	if got := regs.RisingEnable[0].Get(); got != 1<<12 {
		t.Fatalf("rising enable = %08X, want bit 12", got)
	}

	raiseEvent(12)
	HandleInterrupt(Bank0)
	if count != 1 {
		t.Errorf("handler ran %d times, want 1", count)
	}
	if got := regs.EventStatus[0].Get(); got != 0 {
		t.Errorf("event status not acknowledged: %08X", got)
	}

	// No pending events: dispatch is a no-op.
	HandleInterrupt(Bank0)
	if count != 1 {
		t.Errorf("handler ran %d times after idle dispatch, want 1", count)
	}

	// Recurring handlers fire again on the next event.
	raiseEvent(12)
	HandleInterrupt(Bank0)
	if count != 2 {
		t.Errorf("handler ran %d times after second event, want 2", count)
	}
}

func TestUnhandledEventStillAcknowledged(t *testing.T) {
	resetRegisters()
	resetEvents()

	raiseEvent(3)
	HandleInterrupt(Bank0)
	if got := regs.EventStatus[0].Get(); got != 0 {
		t.Errorf("status bit left pending with no handler: %08X", got)
	}
}

func TestOneShotHandlerFiresAtMostOnce(t *testing.T) {
	resetRegisters()
	resetEvents()
	g := &Gpio{}

	p, _ := g.Pin(20)
	in := p.IntoInput()

	count := 0
	in.OnEventOnce(FallingEdge, func() { count++ })

	raiseEvent(20)
	HandleInterrupt(Bank0)
	raiseEvent(20)
	HandleInterrupt(Bank0)
	if count != 1 {
		t.Errorf("one-shot handler ran %d times, want 1", count)
	}
	if got := regs.EventStatus[0].Get(); got != 0 {
		t.Errorf("event status not acknowledged: %08X", got)
	}
}

func TestRegistrationReplacesPreviousHandler(t *testing.T) {
	resetRegisters()
	resetEvents()
	g := &Gpio{}

	p, _ := g.Pin(6)
	in := p.IntoInput()

	var calls []string
	in.OnEventOnce(RisingEdge, func() { calls = append(calls, "once") })
	in.OnEvent(RisingEdge, func() { calls = append(calls, "recurring") })

	raiseEvent(6)
	HandleInterrupt(Bank0)
	if diff := deep.Equal(calls, []string{"recurring"}); diff != nil {
		t.Errorf("recurring registration did not replace one-shot: %v", diff)
	}

	// And the other way around.
	calls = nil
	in.OnEventOnce(RisingEdge, func() { calls = append(calls, "once") })
	raiseEvent(6)
	HandleInterrupt(Bank0)
	if diff := deep.Equal(calls, []string{"once"}); diff != nil {
		t.Errorf("one-shot registration did not replace recurring: %v", diff)
	}
}

func TestDispatchOrderIsAscending(t *testing.T) {
	resetRegisters()
	resetEvents()
	g := &Gpio{}

	var order []uint8
	for _, num := range []uint8{9, 2, 25} {
		p, _ := g.Pin(num)
		pin := num
		p.IntoInput().OnEvent(RisingEdge, func() { order = append(order, pin) })
	}

	raiseEvent(25)
	raiseEvent(2)
	raiseEvent(9)
	HandleInterrupt(Bank0)
	if diff := deep.Equal(order, []uint8{2, 9, 25}); diff != nil {
		t.Errorf("dispatch order: %v", diff)
	}
}

func TestArmedMaskAndClearEvents(t *testing.T) {
	resetRegisters()
	resetEvents()
	g := &Gpio{}

	p, _ := g.Pin(18)
	in := p.IntoInput()

	count := 0
	in.OnEvent(RisingEdge|FallingEdge, func() { count++ })
	if got := Armed(18); got != RisingEdge|FallingEdge {
		t.Fatalf("Armed = %06b, want rising|falling", got)
	}
	if regs.FallingEnable[0].Get() != 1<<18 || regs.RisingEnable[0].Get() != 1<<18 {
		t.Fatal("enable bits not armed")
	}

	in.ClearEvents(RisingEdge)
	if got := Armed(18); got != FallingEdge {
		t.Errorf("Armed after partial clear = %06b, want falling", got)
	}
	if regs.RisingEnable[0].Get() != 0 {
		t.Error("rising enable bit still set after clear")
	}

	// Handler survives while any kind remains armed.
	raiseEvent(18)
	HandleInterrupt(Bank0)
	if count != 1 {
		t.Errorf("handler ran %d times, want 1", count)
	}

	// Clearing the last kind drops the registration entirely.
	in.ClearEvents(FallingEdge)
	if got := Armed(18); got != 0 {
		t.Errorf("Armed after full clear = %06b, want 0", got)
	}
	raiseEvent(18)
	HandleInterrupt(Bank0)
	if count != 1 {
		t.Errorf("handler ran %d times after full clear, want 1", count)
	}
}

func TestHandlerOutlivesPinHandle(t *testing.T) {
	resetRegisters()
	resetEvents()
	g := &Gpio{}

	count := 0
	p, _ := g.Pin(11)
	p.IntoInput().OnEvent(HighLevel, func() { count++ })

	// Releasing the pin does not clear the dispatch table entry; the
	// handler must stay reachable from interrupt context.
	g.Release(11)
	raiseEvent(11)
	HandleInterrupt(Bank0)
	if count != 1 {
		t.Errorf("handler ran %d times after release, want 1", count)
	}
	if got := Armed(11); got != HighLevel {
		t.Errorf("Armed after release = %06b, want high", got)
	}
}

func TestUpperBankDispatch(t *testing.T) {
	resetRegisters()
	resetEvents()
	g := &Gpio{}

	p, _ := g.Pin(45)
	in := p.IntoInput()

	count := 0
	in.OnEvent(AsyncFallingEdge, func() { count++ })
	if got := regs.AsyncFallingEnable[1].Get(); got != 1<<13 {
		t.Fatalf("async falling enable bank 1 = %08X, want bit 13", got)
	}

	raiseEvent(45)
	HandleInterrupt(Bank1)
	if count != 1 {
		t.Errorf("handler ran %d times, want 1", count)
	}
	if got := regs.EventStatus[1].Get(); got != 0 {
		t.Errorf("bank 1 status not acknowledged: %08X", got)
	}

	// Bank 0 dispatch must not touch bank 1 events.
	raiseEvent(45)
	HandleInterrupt(Bank0)
	if count != 1 {
		t.Errorf("bank 0 dispatch serviced a bank 1 event")
	}
}
