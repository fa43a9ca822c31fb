// Package board maintains a host-side connection to a running firmware
// console over a serial port. Requests are sent as single lines and the
// matching reply is read back; unsolicited event lines that arrive in
// between are queued and can be drained with Events.
package board

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"rpgpio/host/serial"
	"rpgpio/protocol"
)

// Board represents a connection to a board running the firmware console
type Board struct {
	port   serial.Port
	reader *bufio.Reader

	// Event lines received while waiting for a command reply
	pending []protocol.Response

	connected bool
}

// New creates a new Board instance (not yet connected)
func New() *Board {
	return &Board{}
}

// SerialConfig builds a serial configuration with an explicit baud rate
func SerialConfig(device string, baud int) *serial.Config {
	cfg := serial.DefaultConfig(device)
	cfg.Baud = baud
	return cfg
}

// UsePort attaches an already-open port, bypassing serial device setup.
// Useful with a mock port in tests.
func (b *Board) UsePort(p serial.Port) {
	b.port = p
	b.reader = bufio.NewReader(p)
	b.connected = true
}

// Connect connects to a board via serial port
func (b *Board) Connect(device string) error {
	return b.ConnectWithConfig(serial.DefaultConfig(device))
}

// ConnectWithConfig connects to a board with a custom serial config
func (b *Board) ConnectWithConfig(cfg *serial.Config) error {
	port, err := serial.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open serial port: %w", err)
	}

	b.port = port
	b.reader = bufio.NewReader(port)
	b.connected = true

	// Give the firmware time to settle if it just reset
	time.Sleep(100 * time.Millisecond)

	return nil
}

// Close closes the connection to the board
func (b *Board) Close() error {
	if b.port != nil {
		if err := b.port.Close(); err != nil {
			return err
		}
	}
	b.connected = false
	return nil
}

// IsConnected returns whether the board is connected
func (b *Board) IsConnected() bool {
	return b.connected
}

// Do sends a request line and waits for the matching reply. Event lines
// received before the reply are queued for Events.
func (b *Board) Do(req *protocol.Request) (*protocol.Response, error) {
	if !b.connected {
		return nil, fmt.Errorf("not connected")
	}

	line := req.String() + "\n"
	if _, err := b.port.Write([]byte(line)); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	if err := b.port.Flush(); err != nil {
		return nil, err
	}

	for {
		resp, err := b.readResponse()
		if err != nil {
			return nil, err
		}
		if resp.Kind == protocol.KindEvent {
			b.pending = append(b.pending, *resp)
			continue
		}
		return resp, nil
	}
}

// DoLine parses a raw command line and sends it
func (b *Board) DoLine(line string) (*protocol.Response, error) {
	req, err := protocol.ParseRequest(line)
	if err != nil {
		return nil, err
	}
	return b.Do(&req)
}

// Events returns queued event notifications and clears the queue.
// It also drains any event lines already buffered on the port.
func (b *Board) Events() []protocol.Response {
	for b.reader != nil && b.reader.Buffered() > 0 {
		resp, err := b.readResponse()
		if err != nil {
			break
		}
		if resp.Kind == protocol.KindEvent {
			b.pending = append(b.pending, *resp)
		}
	}
	out := b.pending
	b.pending = nil
	return out
}

func (b *Board) readResponse() (*protocol.Response, error) {
	line, err := b.reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read reply: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return b.readResponse()
	}
	resp, err := protocol.ParseResponse(line)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
