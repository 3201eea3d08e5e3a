package game

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	promptColor  = color.New(color.FgCyan, color.Bold)
	replyColor   = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	outcomeColor = color.New(color.FgMagenta, color.Bold)
)

// Console is the line-oriented terminal the game talks through. Input lines are
// read on a helper goroutine so that a pending read can be abandoned when the
// context is cancelled.
type Console struct {
	out   io.Writer
	lines chan string
}

// NewConsole starts reading lines from in. Every prompt and message goes to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	c := &Console{out: out, lines: make(chan string)}
	go func() {
		defer close(c.lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			c.lines <- scanner.Text()
		}
	}()
	return c
}

// Out returns the console's output writer.
func (c *Console) Out() io.Writer { return c.out }

// Ask prints prompt and waits for one line. It returns io.EOF once input is
// exhausted and ctx.Err() when ctx is cancelled first.
func (c *Console) Ask(ctx context.Context, prompt string) (string, error) {
	promptColor.Fprint(c.out, prompt)
	select {
	case line, ok := <-c.lines:
		if !ok {
			fmt.Fprintln(c.out)
			return "", io.EOF
		}
		return line, nil
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", ctx.Err()
	}
}

// Warn prints a highlighted warning line.
func (c *Console) Warn(format string, args ...any) {
	warnColor.Fprintf(c.out, format+"\n", args...)
}
