//go:build tinygo

package core

import (
	"device/arm"
	"runtime/volatile"
	"unsafe"
)

// reg32 is a memory-mapped 32-bit register with volatile access semantics.
type reg32 = volatile.Register32

// peripheralBase is the ARM physical address of the peripheral window on the
// BCM2837 (Raspberry Pi 3). Selecting the wrong base for the board is silent
// corruption, not a detectable error; it must be fixed at build time.
const peripheralBase uintptr = 0x3F00_0000

const gpioBase = peripheralBase + 0x0020_0000

var regs = (*gpioRegisters)(unsafe.Pointer(gpioBase))

// busyWait burns roughly the given number of CPU cycles. The pull-up/down
// update cycle requires two 150-cycle settle waits.
func busyWait(cycles int) {
	for i := 0; i < cycles; i++ {
		arm.Asm("nop")
	}
}
