// Package console reads user lines and prints assistant messages
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	AssistantLabel = "Assistant:"
	UserPrompt     = "User: "
)

// Console uses an interactive terminal when stdin is a TTY and a plain
// line reader otherwise.
type Console struct {
	out   io.Writer
	lines *bufio.Reader
	fd    int
	term  *term.Terminal
}

func New(in io.Reader, out io.Writer) *Console {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		rw := struct {
			io.Reader
			io.Writer
		}{f, out}
		return &Console{out: out, fd: int(f.Fd()), term: term.NewTerminal(rw, UserPrompt)}
	}
	return &Console{out: out, lines: bufio.NewReader(in)}
}

func (c *Console) Show(text string) error {
	var w io.Writer = c.out
	if c.term != nil {
		w = c.term
	}
	_, err := fmt.Fprintln(w, AssistantLabel, text)
	return err
}

// ReadLine returns io.EOF once input is exhausted.
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.term != nil {
		return c.readTerminal()
	}

	if _, err := fmt.Fprint(c.out, UserPrompt); err != nil {
		return "", err
	}
	line, err := c.lines.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) readTerminal() (string, error) {
	oldState, err := term.MakeRaw(c.fd)
	if err != nil {
		return "", fmt.Errorf("make raw: %w", err)
	}

	width, height, err := term.GetSize(c.fd)
	if err != nil {
		term.Restore(c.fd, oldState)
		return "", fmt.Errorf("get size: %w", err)
	}
	c.term.SetSize(width, height)

	line, err := c.term.ReadLine()
	restoreErr := term.Restore(c.fd, oldState)

	if err != nil {
		return "", err
	}
	if restoreErr != nil {
		return "", fmt.Errorf("restore terminal: %w", restoreErr)
	}
	return line, nil
}
