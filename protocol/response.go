package protocol

import (
	"strconv"
	"strings"
)

// Kind discriminates the three response shapes.
type Kind uint8

const (
	KindOK    Kind = iota // "ok [detail]"
	KindError             // "error <code>"
	KindEvent             // "event <pin> <kinds>", asynchronous notification
)

// Response is one line from the device: a reply to a request, or an
// unsolicited event notification emitted when an armed pin event fired.
type Response struct {
	Kind   Kind
	Detail string   // KindOK, optional
	Code   string   // KindError
	Pin    uint8    // KindEvent
	Events []string // KindEvent, the kinds armed on the pin when it fired
}

// OK builds a success response.
func OK(detail string) Response {
	return Response{Kind: KindOK, Detail: detail}
}

// Fail builds an error response carrying a stable code.
func Fail(code string) Response {
	return Response{Kind: KindError, Code: code}
}

// Event builds an event notification.
func Event(pin uint8, events []string) Response {
	return Response{Kind: KindEvent, Pin: pin, Events: events}
}

// String renders the response in wire form.
func (r Response) String() string {
	switch r.Kind {
	case KindOK:
		if r.Detail == "" {
			return "ok"
		}
		return "ok " + r.Detail
	case KindError:
		return "error " + r.Code
	case KindEvent:
		return "event " + strconv.Itoa(int(r.Pin)) + " " + strings.Join(r.Events, ",")
	}
	return "error internal"
}

// ParseResponse parses one response line from the device.
func ParseResponse(line string) (Response, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Response{}, ErrEmpty
	}
	switch fields[0] {
	case "ok":
		return OK(strings.Join(fields[1:], " ")), nil
	case "error":
		if len(fields) != 2 {
			return Response{}, ErrBadReply
		}
		return Fail(fields[1]), nil
	case "event":
		if len(fields) != 3 {
			return Response{}, ErrBadReply
		}
		pin, err := strconv.ParseUint(fields[1], 10, 8)
		if err != nil {
			return Response{}, ErrBadReply
		}
		events, err := ParseEvents(fields[2])
		if err != nil {
			return Response{}, ErrBadReply
		}
		return Event(uint8(pin), events), nil
	}
	return Response{}, ErrBadReply
}
