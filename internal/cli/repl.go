package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// command is a single REPL verb.
type command struct {
	name  string
	usage string
	// auth marks commands that need a logged-in user.
	auth  bool
	run   func(ctx context.Context, args []string) error
}

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	commands() []command
}

// runREPL starts a read-eval-print loop over reader.
//
// The first token of every line selects the command, the rest are its
// arguments. Prompts issued by commands read from the same reader, so
// scripted input works line by line. Command errors are printed and the loop
// continues. The loop exits on EOF or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	byName := make(map[string]command)
	for _, c := range a.commands() {
		byName[c.name] = c
	}

	for {
		printlnFn(fmt.Sprintf("portalroom %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			printlnFn(helpText(a))
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		c, ok := byName[name]
		if !ok {
			printlnFn("Unknown command:", name)
			continue
		}
		if c.auth && !a.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}
		if err := c.run(ctx, args); err != nil {
			printlnFn("error:", err.Error())
		}
	}
}

// helpText lists the commands available in the current login state.
func helpText(a execIface) string {
	loggedIn := a.isLoggedIn()
	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, c := range a.commands() {
		if c.auth && !loggedIn {
			continue
		}
		fmt.Fprintf(&b, "  %s\n", strings.TrimSpace(c.name+" "+c.usage))
	}
	b.WriteString("  help\n  exit | quit")
	return b.String()
}
