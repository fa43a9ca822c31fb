package core

// Code is a stable error identifier. It is a string newtype, comparable,
// allocation-free, and implements error, so callers can branch with
// errors.Is and the console can put it on the wire unchanged.
type Code string

func (c Code) Error() string { return string(c) }

const (
	// ErrInvalidPin reports a pin number outside [0, NumPins).
	ErrInvalidPin Code = "invalid_pin"
	// ErrPinInUse reports an acquisition attempt on a pin that already has
	// an outstanding handle.
	ErrPinInUse Code = "pin_in_use"
)
