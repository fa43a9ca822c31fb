// Pin handles and the per-pin configuration state machine
package core

// Func is a pin function select value, encoded exactly as the hardware
// stores it in the 3-bit GPFSEL field.
type Func uint8

const (
	FuncInput  Func = 0b000
	FuncOutput Func = 0b001
	FuncAlt0   Func = 0b100
	FuncAlt1   Func = 0b101
	FuncAlt2   Func = 0b110
	FuncAlt3   Func = 0b111
	FuncAlt4   Func = 0b011
	FuncAlt5   Func = 0b010
)

func (f Func) String() string {
	switch f {
	case FuncInput:
		return "in"
	case FuncOutput:
		return "out"
	case FuncAlt0:
		return "alt0"
	case FuncAlt1:
		return "alt1"
	case FuncAlt2:
		return "alt2"
	case FuncAlt3:
		return "alt3"
	case FuncAlt4:
		return "alt4"
	case FuncAlt5:
		return "alt5"
	}
	return "unknown"
}

// altFuncs maps the alternate function index (0..5) to its register encoding.
var altFuncs = [6]Func{FuncAlt0, FuncAlt1, FuncAlt2, FuncAlt3, FuncAlt4, FuncAlt5}

// Pull is a pull-up/down selector, encoded as the hardware GPPUD value.
type Pull uint8

const (
	PullNone Pull = 0b00
	PullDown Pull = 0b01
	PullUp   Pull = 0b10
)

func (p Pull) String() string {
	switch p {
	case PullNone:
		return "none"
	case PullDown:
		return "down"
	case PullUp:
		return "up"
	}
	return "unknown"
}

// pinBase carries the state shared by every handle type: the pin number and
// the operations valid in any configuration.
type pinBase struct {
	num uint8
}

// Num returns the pin number this handle controls.
func (p pinBase) Num() uint8 { return p.num }

// SetPull configures the pull-up/down resistor of the pin. The hardware
// requires an update cycle rather than a plain register write: select the
// pull value, latch it into the pin with the clock register after a settle
// wait, then run the clock step again with the selector cleared. The
// sequence below preserves that cycle exactly.
func (p pinBase) SetPull(pull Pull) {
	regs.PullControl.ReplaceBits(uint32(pull), 0x3, 0)
	busyWait(150)
	regs.PullClock[bankIndex(p.num)].Set(slotMask(p.num))
	busyWait(150)
	regs.PullControl.Set(0)
	regs.PullClock[bankIndex(p.num)].Set(slotMask(p.num))
}

// Pin is a handle to an acquired pin whose function has not been chosen yet.
// Transitioning it consumes the handle: exactly one handle per pin exists in
// exactly one configuration at any time.
type Pin struct {
	pinBase
	fn    Func
	moved bool
}

func newPin(num uint8) *Pin {
	return &Pin{pinBase: pinBase{num: num}, fn: readFunc(num)}
}

// CurrentFunc returns the function select the hardware held when the pin was
// acquired.
func (p *Pin) CurrentFunc() Func { return p.fn }

// consume marks the handle as spent. Using a handle after transitioning it
// is a programming error, caught here rather than silently corrupting the
// configuration.
func (p *Pin) consume() {
	if p.moved {
		panic("gpio: pin handle already consumed")
	}
	p.moved = true
}

// IntoInput switches the pin to the input function and returns the input
// handle, consuming this one.
func (p *Pin) IntoInput() *InputPin {
	p.consume()
	writeFunc(p.num, FuncInput)
	return &InputPin{pinBase{num: p.num}}
}

// IntoOutput switches the pin to the output function and returns the output
// handle, consuming this one.
func (p *Pin) IntoOutput() *OutputPin {
	p.consume()
	writeFunc(p.num, FuncOutput)
	return &OutputPin{pinBase{num: p.num}}
}

// IntoAltFunc selects alternate function n (0..5) and returns the alternate
// function handle, consuming this one. n out of range is a programming
// error.
func (p *Pin) IntoAltFunc(n uint8) *AltPin {
	if n >= uint8(len(altFuncs)) {
		panic("gpio: no such alternate function")
	}
	p.consume()
	fn := altFuncs[n]
	writeFunc(p.num, fn)
	return &AltPin{pinBase: pinBase{num: p.num}, fn: fn}
}

// InputPin is a handle to a pin configured as an input.
type InputPin struct {
	pinBase
}

// Get reads the current level of the pin.
func (p *InputPin) Get() bool {
	return regs.Level[bankIndex(p.num)].Get()&slotMask(p.num) != 0
}

// OnEvent arms the given event kinds on this pin and registers handler for
// them, replacing any handler previously registered for the pin. One handler
// fields every armed kind of its pin and stays registered until explicitly
// cleared, surviving this handle; use Armed to see which kinds are live.
//
// The handler runs in interrupt context: it must not block and must not call
// With.
func (p *InputPin) OnEvent(ev Events, handler func()) {
	setHandler(p.num, handler, false)
	armEvents(p.num, ev)
}

// OnEventOnce is OnEvent for a handler that fires at most once; the first
// event on the pin invokes it and drops it. Registering it replaces any
// recurring handler and vice versa.
func (p *InputPin) OnEventOnce(ev Events, handler func()) {
	setHandler(p.num, handler, true)
	armEvents(p.num, ev)
}

// ClearEvents disarms the given event kinds on this pin. When no kinds
// remain armed the pin's handler registration is dropped.
func (p *InputPin) ClearEvents(ev Events) {
	disarmEvents(p.num, ev)
}

// OutputPin is a handle to a pin configured as an output.
type OutputPin struct {
	pinBase
}

// High drives the pin high. A single write to the dedicated set register;
// no read-modify-write hazard, idempotent.
func (p *OutputPin) High() {
	regs.OutputSet[bankIndex(p.num)].Set(slotMask(p.num))
}

// Low drives the pin low via the dedicated clear register.
func (p *OutputPin) Low() {
	regs.OutputClear[bankIndex(p.num)].Set(slotMask(p.num))
}

// Toggle inverts the pin: reads the current level and drives the opposite.
func (p *OutputPin) Toggle() {
	if regs.Level[bankIndex(p.num)].Get()&slotMask(p.num) == 0 {
		p.High()
	} else {
		p.Low()
	}
}

// AltPin is a handle to a pin switched to one of its alternate functions.
// The owning peripheral drives it from here on; only the pull configuration
// remains adjustable.
type AltPin struct {
	pinBase
	fn Func
}

// Func returns the selected alternate function.
func (p *AltPin) Func() Func { return p.fn }

func writeFunc(num uint8, fn Func) {
	regs.FuncSelect[fselIndex(num)].ReplaceBits(uint32(fn), 0x7, fselShift(num))
}

func readFunc(num uint8) Func {
	return Func(regs.FuncSelect[fselIndex(num)].Get() >> fselShift(num) & 0x7)
}
