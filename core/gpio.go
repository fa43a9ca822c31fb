// GPIO peripheral state: pin ownership tracking and acquisition
package core

// Gpio is the peripheral state: the single owner of the in-use set and the
// only component driving register writes during configuration changes. It is
// reachable exclusively through With, which serializes access across cores.
type Gpio struct {
	// usedPins has bit n set iff exactly one outstanding handle for pin n
	// exists.
	usedPins uint64
}

// Pin acquires the given pin and returns a handle in undetermined
// configuration. The handle's function field reflects what the hardware
// currently holds; it is read back, never assumed.
//
// Fails with ErrInvalidPin for numbers outside [0, NumPins) and with
// ErrPinInUse when a handle for the pin is already outstanding.
func (g *Gpio) Pin(num uint8) (*Pin, error) {
	if num >= NumPins {
		return nil, ErrInvalidPin
	}
	bit := uint64(1) << num
	if g.usedPins&bit != 0 {
		return nil, ErrPinInUse
	}
	g.usedPins |= bit
	return newPin(num), nil
}

// Release returns a pin to the pool so it can be acquired again, possibly
// with a different configuration. Hardware configuration and any registered
// event handler are left untouched; numbers outside the pin range are
// ignored.
func (g *Gpio) Release(num uint8) {
	if num >= NumPins {
		return
	}
	g.usedPins &^= uint64(1) << num
}

// InUse reports whether a handle for the pin is currently outstanding.
func (g *Gpio) InUse(num uint8) bool {
	return num < NumPins && g.usedPins&(uint64(1)<<num) != 0
}

// Func reads back the hardware function select of a pin.
func (g *Gpio) Func(num uint8) (Func, error) {
	if num >= NumPins {
		return FuncInput, ErrInvalidPin
	}
	return readFunc(num), nil
}
