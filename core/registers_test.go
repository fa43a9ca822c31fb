package core

import (
	"testing"
	"unsafe"
)

// Register offsets per the BCM2837 peripheral documentation. The struct
// layout is the single source of truth for addresses, so pin it down.
func TestRegisterOffsets(t *testing.T) {
	tests := []struct {
		name   string
		offset uintptr
		want   uintptr
	}{
		{"GPFSEL0", unsafe.Offsetof(regs.FuncSelect), 0x00},
		{"GPSET0", unsafe.Offsetof(regs.OutputSet), 0x1C},
		{"GPCLR0", unsafe.Offsetof(regs.OutputClear), 0x28},
		{"GPLEV0", unsafe.Offsetof(regs.Level), 0x34},
		{"GPEDS0", unsafe.Offsetof(regs.EventStatus), 0x40},
		{"GPREN0", unsafe.Offsetof(regs.RisingEnable), 0x4C},
		{"GPFEN0", unsafe.Offsetof(regs.FallingEnable), 0x58},
		{"GPHEN0", unsafe.Offsetof(regs.HighEnable), 0x64},
		{"GPLEN0", unsafe.Offsetof(regs.LowEnable), 0x70},
		{"GPAREN0", unsafe.Offsetof(regs.AsyncRisingEnable), 0x7C},
		{"GPAFEN0", unsafe.Offsetof(regs.AsyncFallingEnable), 0x88},
		{"GPPUD", unsafe.Offsetof(regs.PullControl), 0x94},
		{"GPPUDCLK0", unsafe.Offsetof(regs.PullClock), 0x98},
	}
	for _, test := range tests {
		if test.offset != test.want {
			t.Errorf("%s: offset 0x%02X, want 0x%02X", test.name, test.offset, test.want)
		}
	}
}

func TestFuncSelectArithmetic(t *testing.T) {
	tests := []struct {
		pin   uint8
		index int
		shift uint8
	}{
		{0, 0, 0},
		{9, 0, 27},
		{10, 1, 0},
		{17, 1, 21},
		{29, 2, 27},
		{53, 5, 9},
	}
	for _, test := range tests {
		if got := fselIndex(test.pin); got != test.index {
			t.Errorf("fselIndex(%d) = %d, want %d", test.pin, got, test.index)
		}
		if got := fselShift(test.pin); got != test.shift {
			t.Errorf("fselShift(%d) = %d, want %d", test.pin, got, test.shift)
		}
	}
}

func TestBankArithmetic(t *testing.T) {
	tests := []struct {
		pin  uint8
		bank int
		mask uint32
	}{
		{0, 0, 1 << 0},
		{17, 0, 1 << 17},
		{31, 0, 1 << 31},
		{32, 1, 1 << 0},
		{53, 1, 1 << 21},
	}
	for _, test := range tests {
		if got := bankIndex(test.pin); got != test.bank {
			t.Errorf("bankIndex(%d) = %d, want %d", test.pin, got, test.bank)
		}
		if got := slotMask(test.pin); got != test.mask {
			t.Errorf("slotMask(%d) = %08X, want %08X", test.pin, got, test.mask)
		}
	}
}

func TestFuncReadbackRoundTrip(t *testing.T) {
	resetRegisters()
	fns := []Func{FuncInput, FuncOutput, FuncAlt0, FuncAlt1, FuncAlt2, FuncAlt3, FuncAlt4, FuncAlt5}
	for i, fn := range fns {
		pin := uint8(i * 7 % NumPins)
		writeFunc(pin, fn)
		if got := readFunc(pin); got != fn {
			t.Errorf("pin %d: readFunc = %v, want %v", pin, got, fn)
		}
	}
}
