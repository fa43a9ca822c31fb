//go:build !tinygo

package core

// Host build: the register block is backed by plain memory with just enough
// behavioral simulation for the hardware laws to hold in tests. Writes to
// the set/clear registers feed the level register, the event-status register
// is write-1-to-clear, and write-only registers read back as zero.

// reg32 is the host stand-in for runtime/volatile.Register32. It implements
// the subset of the volatile API the core uses.
type reg32 struct {
	v uint32
}

func (r *reg32) Get() uint32 {
	return r.v
}

func (r *reg32) Set(value uint32) {
	simWrite(r, value)
}

func (r *reg32) SetBits(mask uint32) {
	r.Set(r.v | mask)
}

func (r *reg32) ClearBits(mask uint32) {
	r.Set(r.v &^ mask)
}

func (r *reg32) HasBits(mask uint32) bool {
	return r.v&mask != 0
}

func (r *reg32) ReplaceBits(value uint32, mask uint32, pos uint8) {
	r.Set(r.v&^(mask<<pos) | value<<pos)
}

var simRegs gpioRegisters

var regs = &simRegs

// pullWrite records one write of the pull-up/down update cycle so tests can
// assert the exact hardware sequence.
type pullWrite struct {
	reg   string
	value uint32
}

var pullLog []pullWrite

// simWrite applies a register write with the block's documented side effects.
func simWrite(r *reg32, value uint32) {
	switch r {
	case &regs.OutputSet[0]:
		regs.Level[0].v |= value
	case &regs.OutputSet[1]:
		regs.Level[1].v |= value
	case &regs.OutputClear[0]:
		regs.Level[0].v &^= value
	case &regs.OutputClear[1]:
		regs.Level[1].v &^= value
	case &regs.EventStatus[0]:
		regs.EventStatus[0].v &^= value
	case &regs.EventStatus[1]:
		regs.EventStatus[1].v &^= value
	case &regs.PullControl:
		pullLog = append(pullLog, pullWrite{"pud", value})
		r.v = value
	case &regs.PullClock[0]:
		pullLog = append(pullLog, pullWrite{"pudclk0", value})
		r.v = value
	case &regs.PullClock[1]:
		pullLog = append(pullLog, pullWrite{"pudclk1", value})
		r.v = value
	default:
		r.v = value
	}
}

// resetRegisters restores the simulated block to its power-on state.
func resetRegisters() {
	simRegs = gpioRegisters{}
	pullLog = nil
}

// raiseEvent latches a pending event-status bit for pin, as the detection
// hardware would.
func raiseEvent(pin uint8) {
	regs.EventStatus[bankIndex(pin)].v |= slotMask(pin)
}

// driveLevel forces the sampled level of pin, standing in for an external
// signal on an input.
func driveLevel(pin uint8, high bool) {
	if high {
		regs.Level[bankIndex(pin)].v |= slotMask(pin)
	} else {
		regs.Level[bankIndex(pin)].v &^= slotMask(pin)
	}
}

// busyWait is a no-op on the host; the settle waits of the pull update cycle
// only matter on real silicon.
func busyWait(cycles int) {
}
