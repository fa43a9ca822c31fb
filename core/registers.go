// BCM2837 GPIO register block layout and address arithmetic
package core

// NumPins is the number of GPIO lines the BCM2837 exposes (GPIO0..GPIO53).
const NumPins = 54

// numBanks is the number of 32-bit register banks covering all pins for the
// 1-bit-per-pin registers (set/clear/level/event).
const numBanks = 2

// gpioRegisters mirrors the GPIO register block of the BCM2837, starting at
// peripheral base + 0x20_0000. Field order and the reserved gaps define the
// exact register offsets; do not reorder.
type gpioRegisters struct {
	FuncSelect         [6]reg32 // 0x00..0x14 GPFSEL0..5, 3 bits per pin, 10 pins per register
	_                  reg32    // 0x18
	OutputSet          [2]reg32 // 0x1C GPSET0, 0x20 GPSET1, write-only
	_                  reg32    // 0x24
	OutputClear        [2]reg32 // 0x28 GPCLR0, 0x2C GPCLR1, write-only
	_                  reg32    // 0x30
	Level              [2]reg32 // 0x34 GPLEV0, 0x38 GPLEV1, read-only
	_                  reg32    // 0x3C
	EventStatus        [2]reg32 // 0x40 GPEDS0, 0x44 GPEDS1, write 1 to clear
	_                  reg32    // 0x48
	RisingEnable       [2]reg32 // 0x4C GPREN0, 0x50 GPREN1
	_                  reg32    // 0x54
	FallingEnable      [2]reg32 // 0x58 GPFEN0, 0x5C GPFEN1
	_                  reg32    // 0x60
	HighEnable         [2]reg32 // 0x64 GPHEN0, 0x68 GPHEN1
	_                  reg32    // 0x6C
	LowEnable          [2]reg32 // 0x70 GPLEN0, 0x74 GPLEN1
	_                  reg32    // 0x78
	AsyncRisingEnable  [2]reg32 // 0x7C GPAREN0, 0x80 GPAREN1
	_                  reg32    // 0x84
	AsyncFallingEnable [2]reg32 // 0x88 GPAFEN0, 0x8C GPAFEN1
	_                  reg32    // 0x90
	PullControl        reg32    // 0x94 GPPUD, 2-bit pull selector
	PullClock          [2]reg32 // 0x98 GPPUDCLK0, 0x9C GPPUDCLK1
}

// fselIndex returns which GPFSEL register holds the 3-bit function-select
// field for pin. Each register packs ten pins.
func fselIndex(pin uint8) int {
	return int(pin) / 10
}

// fselShift returns the bit offset of pin's function-select field within its
// GPFSEL register.
func fselShift(pin uint8) uint8 {
	return (pin % 10) * 3
}

// bankIndex returns which of the two banks a pin's 1-bit-per-pin registers
// live in (GPIO0..31 = bank 0, GPIO32..53 = bank 1).
func bankIndex(pin uint8) int {
	return int(pin) / 32
}

// slotMask returns the single-bit mask for pin within its bank register.
func slotMask(pin uint8) uint32 {
	return 1 << (pin % 32)
}
