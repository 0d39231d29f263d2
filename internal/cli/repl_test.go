package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) commands() []command {
	record := func(name string) func(context.Context, []string) error {
		return func(_ context.Context, args []string) error {
			f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
			return nil
		}
	}
	return []command{
		{name: "login", run: func(ctx context.Context, args []string) error {
			f.loggedIn = true
			return record("login")(ctx, args)
		}},
		{name: "submit", usage: "[url]", auth: true, run: record("submit")},
		{name: "vote", usage: "<link> up|down", auth: true, run: record("vote")},
		{name: "trending", usage: "[n]", run: record("trending")},
		{name: "boom", run: func(context.Context, []string) error { return errors.New("kaput") }},
	}
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprint(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_DispatchesWithArgs(t *testing.T) {
	out := captureOutput(t)

	input := strings.Join([]string{
		"submit https://example.com",
		"",
		"trending 3",
		"login",
		"submit https://example.com",
		"vote abc up",
		"foobar",
		"boom",
		"exit",
		"trending",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{"trending 3", "login", "submit https://example.com", "vote abc up"}, exec.calls)
	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "Please login first")
	assert.Contains(t, joined, "Unknown command:foobar")
	assert.Contains(t, joined, "error:kaput")
	assert.Contains(t, joined, "Bye!")
	assert.Contains(t, joined, "portalroom status> ")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("vote x down")))

	require.Equal(t, []string{"vote x down"}, exec.calls)
}

func TestHelpText(t *testing.T) {
	exec := &fakeExec{}
	anon := helpText(exec)
	assert.Contains(t, anon, "trending [n]")
	assert.NotContains(t, anon, "submit")
	assert.Contains(t, anon, "exit | quit")

	exec.loggedIn = true
	assert.Contains(t, helpText(exec), "vote <link> up|down")
}
