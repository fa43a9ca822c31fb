//go:build !tinygo

package core

// Simulation hooks for hosted builds. Tests and demos drive them in place
// of the detection hardware and external signals.

// SimRaiseEvent latches a pending event-status bit for pin, as the
// detection hardware would on a matching edge or level.
func SimRaiseEvent(pin uint8) {
	if pin < NumPins {
		raiseEvent(pin)
	}
}

// SimDriveLevel forces the sampled level of pin, standing in for an
// external signal driving the line.
func SimDriveLevel(pin uint8, high bool) {
	if pin < NumPins {
		driveLevel(pin, high)
	}
}
