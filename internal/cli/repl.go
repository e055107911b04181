package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	Save() error
	Receive() error
}

// runREPL reads commands from reader and dispatches to a until EOF or
// an exit command. Errors returned by command handlers are ignored here;
// handlers print their own errors. This keeps the loop focused on I/O.
func runREPL(a execIface, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprint(w, "Enter command (save, receive, quit): ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			continue

		case "help":
			fmt.Fprintln(w, "Available commands: save, receive, quit")

		case "save":
			_ = a.Save()

		case "receive":
			_ = a.Receive()

		case "exit", "quit":
			return

		default:
			fmt.Fprintln(w, "Unknown command. Use: save, receive, quit")
		}
	}
}
