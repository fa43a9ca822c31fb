package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/shlex"

	"rpgpio/host/board"
	"rpgpio/protocol"
)

var (
	device  = flag.String("device", "/dev/ttyUSB0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate")
	verbose = flag.Bool("verbose", false, "Dump parsed requests and replies")
)

func main() {
	flag.Parse()

	conn := board.New()

	fmt.Printf("Connecting to %s at %d baud...\n", *device, *baud)
	cfg := board.SerialConfig(*device, *baud)
	if err := conn.ConnectWithConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	fmt.Println("Connected. Type 'help' for commands, 'quit' to exit.")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		words, err := shlex.Split(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if len(words) == 0 {
			continue
		}

		switch words[0] {
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return

		case "help", "?":
			printHelp()

		case "events":
			for _, ev := range conn.Events() {
				fmt.Println(ev.String())
			}

		default:
			runCommand(conn, strings.Join(words, " "))
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(conn *board.Board, line string) {
	req, err := protocol.ParseRequest(line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	if *verbose {
		fmt.Print(spew.Sdump(req))
	}

	resp, err := conn.Do(&req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	if *verbose {
		fmt.Print(spew.Sdump(resp))
	}
	fmt.Println(resp.String())

	// Print any events that arrived while waiting
	for _, ev := range conn.Events() {
		fmt.Println(ev.String())
	}
}

func printHelp() {
	fmt.Println("\nBoard commands:")
	fmt.Println("  get <pin>                    - Read pin level")
	fmt.Println("  set <pin> <0|1>              - Drive pin output")
	fmt.Println("  toggle <pin>                 - Flip pin output")
	fmt.Println("  mode <pin> <in|out|alt0..5>  - Configure pin function")
	fmt.Println("  pull <pin> <none|up|down>    - Configure pull resistor")
	fmt.Println("  watch <pin> <event>...       - Arm edge/level detection")
	fmt.Println("  unwatch <pin> <event>...     - Disarm detection")
	fmt.Println("  info <pin>                   - Report pin state")
	fmt.Println("  release <pin>                - Release a held pin")
	fmt.Println("\nLocal commands:")
	fmt.Println("  events                       - Print queued event notifications")
	fmt.Println("  help/?                       - Show this help message")
	fmt.Println("  quit/exit/q                  - Exit the program")
	fmt.Println()
}
