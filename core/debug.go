// Raw GPIO pokes for board bring-up
package core

// LitDebugLED drives a pin high with direct register writes, bypassing
// acquisition, configuration state and the exclusive-access lock. During
// early bring-up, before the MMU and atomics are usable, lighting an LED is
// sometimes the only sign of life available; this trades every safety
// guarantee of the package for that. Not for use in normal operation.
func LitDebugLED(num uint8) {
	if num >= NumPins {
		return
	}
	writeFunc(num, FuncOutput)
	regs.OutputSet[bankIndex(num)].Set(slotMask(num))
}
