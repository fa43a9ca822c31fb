// Package protocol implements the line-oriented console protocol spoken
// between a board running the sample firmware and the host tool. Requests
// and responses are single lines of space-separated ASCII fields, cheap
// enough to produce on the device side without allocation pressure.
package protocol

import "errors"

// Version identifies the protocol revision, announced in the firmware's
// startup banner.
const Version = "1"

// Op is a request operation.
type Op string

const (
	OpGet     Op = "get"     // read an input's level
	OpSet     Op = "set"     // drive an output high or low
	OpToggle  Op = "toggle"  // invert an output
	OpMode    Op = "mode"    // configure pin function
	OpPull    Op = "pull"    // configure pull-up/down
	OpWatch   Op = "watch"   // arm event kinds and report them
	OpUnwatch Op = "unwatch" // disarm event kinds
	OpInfo    Op = "info"    // report pin state
	OpRelease Op = "release" // return the pin to the pool
)

var (
	ErrEmpty     = errors.New("empty line")
	ErrUnknownOp = errors.New("unknown operation")
	ErrBadPin    = errors.New("malformed pin number")
	ErrBadArg    = errors.New("malformed argument")
	ErrTruncated = errors.New("missing argument")
	ErrBadReply  = errors.New("malformed response")
)

// Modes a pin can be switched to.
var Modes = []string{"in", "out", "alt0", "alt1", "alt2", "alt3", "alt4", "alt5"}

// Pulls a pin can be configured with.
var Pulls = []string{"none", "up", "down"}

// EventNames lists the watchable event kinds in wire order.
var EventNames = []string{"rising", "falling", "high", "low", "async-rising", "async-falling"}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
