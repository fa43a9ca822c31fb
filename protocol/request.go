package protocol

import (
	"strconv"
	"strings"
)

// Request is one console command addressed at a single pin.
type Request struct {
	Op  Op
	Pin uint8

	Level  bool     // OpSet
	Mode   string   // OpMode, one of Modes
	Pull   string   // OpPull, one of Pulls
	Events []string // OpWatch/OpUnwatch, subset of EventNames
}

// ParseRequest parses one request line and returns a typed Request. The
// line must be a known operation, a pin number and the operation's
// arguments; anything else is rejected with a typed error, never a panic.
func ParseRequest(line string) (Request, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Request{}, ErrEmpty
	}

	req := Request{Op: Op(fields[0])}
	switch req.Op {
	case OpGet, OpSet, OpToggle, OpMode, OpPull, OpWatch, OpUnwatch, OpInfo, OpRelease:
	default:
		return Request{}, ErrUnknownOp
	}

	if len(fields) < 2 {
		return Request{}, ErrTruncated
	}
	pin, err := strconv.ParseUint(fields[1], 10, 8)
	if err != nil {
		return Request{}, ErrBadPin
	}
	req.Pin = uint8(pin)

	switch req.Op {
	case OpGet, OpToggle, OpInfo, OpRelease:
		if len(fields) != 2 {
			return Request{}, ErrBadArg
		}
	case OpSet:
		if len(fields) != 3 {
			return Request{}, ErrTruncated
		}
		switch fields[2] {
		case "0":
			req.Level = false
		case "1":
			req.Level = true
		default:
			return Request{}, ErrBadArg
		}
	case OpMode:
		if len(fields) != 3 {
			return Request{}, ErrTruncated
		}
		if !contains(Modes, fields[2]) {
			return Request{}, ErrBadArg
		}
		req.Mode = fields[2]
	case OpPull:
		if len(fields) != 3 {
			return Request{}, ErrTruncated
		}
		if !contains(Pulls, fields[2]) {
			return Request{}, ErrBadArg
		}
		req.Pull = fields[2]
	case OpWatch, OpUnwatch:
		if len(fields) != 3 {
			return Request{}, ErrTruncated
		}
		events, err := ParseEvents(fields[2])
		if err != nil {
			return Request{}, err
		}
		req.Events = events
	}
	return req, nil
}

// String renders the request in canonical wire form.
func (r Request) String() string {
	s := string(r.Op) + " " + strconv.Itoa(int(r.Pin))
	switch r.Op {
	case OpSet:
		if r.Level {
			s += " 1"
		} else {
			s += " 0"
		}
	case OpMode:
		s += " " + r.Mode
	case OpPull:
		s += " " + r.Pull
	case OpWatch, OpUnwatch:
		s += " " + strings.Join(r.Events, ",")
	}
	return s
}

// ParseEvents parses a comma-separated event kind list. Order is normalized
// to wire order and duplicates collapse.
func ParseEvents(arg string) ([]string, error) {
	seen := make(map[string]bool)
	for _, name := range strings.Split(arg, ",") {
		if !contains(EventNames, name) {
			return nil, ErrBadArg
		}
		seen[name] = true
	}
	var events []string
	for _, name := range EventNames {
		if seen[name] {
			events = append(events, name)
		}
	}
	return events, nil
}
