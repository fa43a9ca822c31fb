//go:build tinygo

package main

import (
	"runtime/volatile"
	"unsafe"

	"rpgpio/core"
)

// Mini UART register block at AUX base. Offsets per the BCM2837 peripheral
// manual; the mini UART shares the AUX block with SPI1/SPI2.
type auxRegisters struct {
	InterruptStatus volatile.Register32 // 0x00
	Enables         volatile.Register32 // 0x04
	_               [14]uint32
	MuData          volatile.Register32 // 0x40, low 8 bits
	MuIntEnable     volatile.Register32 // 0x44
	MuIntIdentify   volatile.Register32 // 0x48
	MuLineControl   volatile.Register32 // 0x4C
	MuModemControl  volatile.Register32 // 0x50
	MuLineStatus    volatile.Register32 // 0x54, readonly
	MuModemStatus   volatile.Register32 // 0x58, readonly
	MuScratch       volatile.Register32 // 0x5C
	MuExtraControl  volatile.Register32 // 0x60
	MuExtraStatus   volatile.Register32 // 0x64
	MuBaud          volatile.Register32 // 0x68
}

const auxBase uintptr = 0x3F21_5000

const (
	enableMiniUART = 1 << 0

	dataLength8Bits = 3 << 0

	receiveEnable  = 1 << 0
	transmitEnable = 1 << 1

	clearReceiveFIFO  = 1 << 1
	clearTransmitFIFO = 1 << 2

	receivedDataAvailable      = 1 << 0
	transmitFIFOSpaceAvailable = 1 << 5

	// 250 MHz core clock / (8 * 115200) - 1
	baud115200 = 270
)

var aux = (*auxRegisters)(unsafe.Pointer(auxBase))

// initUART claims GPIO 14/15 for the mini UART (TXD1/RXD1 are Alt5) and
// brings the peripheral up at 115200 8N1.
func initUART() error {
	err := core.With(func(g *core.Gpio) error {
		for _, num := range []uint8{14, 15} {
			pin, err := g.Pin(num)
			if err != nil {
				return err
			}
			pin.SetPull(core.PullNone)
			pin.IntoAltFunc(5)
		}
		return nil
	})
	if err != nil {
		return err
	}

	aux.Enables.SetBits(enableMiniUART)
	aux.MuExtraControl.Set(0)
	aux.MuIntEnable.Set(0)
	aux.MuLineControl.Set(dataLength8Bits)
	aux.MuModemControl.Set(0)
	aux.MuBaud.Set(baud115200)
	aux.MuIntIdentify.Set(clearReceiveFIFO | clearTransmitFIFO)
	aux.MuExtraControl.Set(receiveEnable | transmitEnable)

	return nil
}

func uartWriteByte(b byte) {
	for !aux.MuLineStatus.HasBits(transmitFIFOSpaceAvailable) {
	}
	aux.MuData.Set(uint32(b))
}

func uartWriteString(s string) {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			uartWriteByte('\r')
		}
		uartWriteByte(s[i])
	}
}

// uartReadByte returns the next received byte, or false when the receive
// FIFO is empty. It never blocks.
func uartReadByte() (byte, bool) {
	if !aux.MuLineStatus.HasBits(receivedDataAvailable) {
		return 0, false
	}
	return byte(aux.MuData.Get() & 0xFF), true
}
