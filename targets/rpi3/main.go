//go:build tinygo

package main

import (
	"device/arm"

	"rpgpio/console"
	"rpgpio/core"
	"rpgpio/protocol"
)

const maxLine = 128

// blinkPin pulses on boot so a probed header pin shows the firmware came up.
const blinkPin = 26

func main() {
	if err := initUART(); err != nil {
		// UART pins unavailable, nothing left to talk over. Signal on
		// the activity LED and park.
		core.LitDebugLED(29)
		for {
		}
	}

	bootBlink()
	uartWriteString("rpgpio console v" + protocol.Version + "\n")

	cons := console.New()
	line := make([]byte, 0, maxLine)

	for {
		// Service pin events first so notifications stay close to the
		// edges that caused them.
		core.HandleInterrupt(core.Bank0)
		core.HandleInterrupt(core.Bank1)

		for _, n := range cons.Notifications() {
			uartWriteString(n.String())
			uartWriteByte('\n')
		}

		b, ok := uartReadByte()
		if !ok {
			continue
		}

		switch b {
		case '\r', '\n':
			if len(line) == 0 {
				continue
			}
			reply := cons.HandleLine(string(line))
			uartWriteString(reply)
			uartWriteByte('\n')
			line = line[:0]
		case 0x7F, 0x08: // backspace
			if len(line) > 0 {
				line = line[:len(line)-1]
			}
		default:
			if len(line) < maxLine {
				line = append(line, b)
			}
		}
	}
}

func bootBlink() {
	core.With(func(g *core.Gpio) struct{} {
		p, err := g.Pin(blinkPin)
		if err != nil {
			return struct{}{}
		}
		out := p.IntoOutput()
		for i := 0; i < 6; i++ {
			out.Toggle()
			delay()
		}
		out.Low()
		g.Release(blinkPin)
		return struct{}{}
	})
}

func delay() {
	for i := 0; i < 500000; i++ {
		arm.Asm("nop")
	}
}
