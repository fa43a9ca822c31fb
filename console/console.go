// Package console executes protocol requests against the GPIO peripheral.
// It backs the serial console of the sample firmware and owns the pin
// handles a remote session has configured, so the host can drive pins with
// plain text commands. All peripheral access goes through the exclusive
// entry point; the console never holds the lock between requests.
package console

import (
	"strconv"
	"strings"

	"rpgpio/core"
	"rpgpio/protocol"
)

// Error codes returned on the wire beyond the core's own.
const (
	codeNotInput  = "not_input"
	codeNotOutput = "not_output"
)

// Console is one command session. It tracks which handle currently exists
// for each pin the session touched; configuration transitions consume
// handles, so reconfiguring a pin releases and reacquires it.
type Console struct {
	raw     map[uint8]*core.Pin
	inputs  map[uint8]*core.InputPin
	outputs map[uint8]*core.OutputPin
	alts    map[uint8]*core.AltPin

	events eventRing
}

func New() *Console {
	return &Console{
		raw:     make(map[uint8]*core.Pin),
		inputs:  make(map[uint8]*core.InputPin),
		outputs: make(map[uint8]*core.OutputPin),
		alts:    make(map[uint8]*core.AltPin),
	}
}

// HandleLine parses and executes one request line and returns the response
// line. Malformed input produces an error response, never a panic.
func (c *Console) HandleLine(line string) string {
	req, err := protocol.ParseRequest(line)
	if err != nil {
		return protocol.Fail(parseCode(err)).String()
	}
	return c.Execute(req).String()
}

// Execute runs one request against the peripheral.
func (c *Console) Execute(req protocol.Request) protocol.Response {
	switch req.Op {
	case protocol.OpMode:
		return c.execMode(req)
	case protocol.OpGet:
		in, ok := c.inputs[req.Pin]
		if !ok {
			return protocol.Fail(codeNotInput)
		}
		level := core.With(func(g *core.Gpio) bool { return in.Get() })
		if level {
			return protocol.OK("1")
		}
		return protocol.OK("0")
	case protocol.OpSet:
		out, ok := c.outputs[req.Pin]
		if !ok {
			return protocol.Fail(codeNotOutput)
		}
		core.With(func(g *core.Gpio) struct{} {
			if req.Level {
				out.High()
			} else {
				out.Low()
			}
			return struct{}{}
		})
		return protocol.OK("")
	case protocol.OpToggle:
		out, ok := c.outputs[req.Pin]
		if !ok {
			return protocol.Fail(codeNotOutput)
		}
		core.With(func(g *core.Gpio) struct{} {
			out.Toggle()
			return struct{}{}
		})
		return protocol.OK("")
	case protocol.OpPull:
		return c.execPull(req)
	case protocol.OpWatch:
		in, ok := c.inputs[req.Pin]
		if !ok {
			return protocol.Fail(codeNotInput)
		}
		pin := req.Pin
		mask := eventsMask(req.Events)
		core.With(func(g *core.Gpio) struct{} {
			in.OnEvent(mask, func() { c.events.push(pin) })
			return struct{}{}
		})
		return protocol.OK("")
	case protocol.OpUnwatch:
		in, ok := c.inputs[req.Pin]
		if !ok {
			return protocol.Fail(codeNotInput)
		}
		core.With(func(g *core.Gpio) struct{} {
			in.ClearEvents(eventsMask(req.Events))
			return struct{}{}
		})
		return protocol.OK("")
	case protocol.OpInfo:
		return c.execInfo(req)
	case protocol.OpRelease:
		c.dropHandle(req.Pin)
		return protocol.OK("")
	}
	return protocol.Fail("unknown_op")
}

func (c *Console) execMode(req protocol.Request) protocol.Response {
	// Transitions consume handles one way, so reconfiguration means a
	// fresh acquisition.
	c.dropHandle(req.Pin)
	var resp protocol.Response
	core.With(func(g *core.Gpio) struct{} {
		p, err := g.Pin(req.Pin)
		if err != nil {
			resp = protocol.Fail(err.Error())
			return struct{}{}
		}
		switch req.Mode {
		case "in":
			c.inputs[req.Pin] = p.IntoInput()
		case "out":
			c.outputs[req.Pin] = p.IntoOutput()
		default: // alt0..alt5, validated by the parser
			n, _ := strconv.Atoi(strings.TrimPrefix(req.Mode, "alt"))
			c.alts[req.Pin] = p.IntoAltFunc(uint8(n))
		}
		resp = protocol.OK("")
		return struct{}{}
	})
	return resp
}

func (c *Console) execPull(req protocol.Request) protocol.Response {
	var pull core.Pull
	switch req.Pull {
	case "up":
		pull = core.PullUp
	case "down":
		pull = core.PullDown
	default:
		pull = core.PullNone
	}

	num := req.Pin
	code := core.With(func(g *core.Gpio) string {
		switch {
		case c.raw[num] != nil:
			c.raw[num].SetPull(pull)
		case c.inputs[num] != nil:
			c.inputs[num].SetPull(pull)
		case c.outputs[num] != nil:
			c.outputs[num].SetPull(pull)
		case c.alts[num] != nil:
			c.alts[num].SetPull(pull)
		default:
			// Pull is valid in any configuration, including before one
			// is chosen; acquire the pin undetermined and keep it.
			p, err := g.Pin(num)
			if err != nil {
				return err.Error()
			}
			p.SetPull(pull)
			c.raw[num] = p
		}
		return ""
	})
	if code != "" {
		return protocol.Fail(code)
	}
	return protocol.OK("")
}

func (c *Console) execInfo(req protocol.Request) protocol.Response {
	var resp protocol.Response
	core.With(func(g *core.Gpio) struct{} {
		fn, err := g.Func(req.Pin)
		if err != nil {
			resp = protocol.Fail(err.Error())
			return struct{}{}
		}
		detail := fn.String()
		if g.InUse(req.Pin) {
			detail += " used"
		}
		if armed := core.Armed(req.Pin); armed != 0 {
			detail += " " + strings.Join(eventNames(armed), ",")
		}
		resp = protocol.OK(detail)
		return struct{}{}
	})
	return resp
}

// dropHandle releases the pin and forgets whatever handle the session held
// for it. Event registrations survive on purpose.
func (c *Console) dropHandle(num uint8) {
	held := c.raw[num] != nil || c.inputs[num] != nil ||
		c.outputs[num] != nil || c.alts[num] != nil
	if !held {
		return
	}
	delete(c.raw, num)
	delete(c.inputs, num)
	delete(c.outputs, num)
	delete(c.alts, num)
	core.With(func(g *core.Gpio) struct{} {
		g.Release(num)
		return struct{}{}
	})
}

// Notifications drains the pending event queue into notification responses.
// Called from the console loop, outside interrupt context.
func (c *Console) Notifications() []protocol.Response {
	var out []protocol.Response
	for {
		pin, ok := c.events.pop()
		if !ok {
			return out
		}
		out = append(out, protocol.Event(pin, eventNames(core.Armed(pin))))
	}
}

// eventBits maps wire names to event kinds, in wire order.
var eventBits = []struct {
	name string
	bit  core.Events
}{
	{"rising", core.RisingEdge},
	{"falling", core.FallingEdge},
	{"high", core.HighLevel},
	{"low", core.LowLevel},
	{"async-rising", core.AsyncRisingEdge},
	{"async-falling", core.AsyncFallingEdge},
}

func eventsMask(names []string) core.Events {
	var mask core.Events
	for _, name := range names {
		for _, e := range eventBits {
			if e.name == name {
				mask |= e.bit
			}
		}
	}
	return mask
}

func eventNames(mask core.Events) []string {
	var names []string
	for _, e := range eventBits {
		if mask&e.bit != 0 {
			names = append(names, e.name)
		}
	}
	return names
}

func parseCode(err error) string {
	switch err {
	case protocol.ErrUnknownOp:
		return "unknown_op"
	case protocol.ErrBadPin:
		return "bad_pin"
	case protocol.ErrBadArg:
		return "bad_argument"
	case protocol.ErrTruncated:
		return "missing_argument"
	}
	return "bad_request"
}
