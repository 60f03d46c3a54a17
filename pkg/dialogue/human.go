package dialogue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

var ExitKeywords = []string{"q", "quit", "exit", "goodbye"}

// Console is the channel to the person on the other side.
type Console interface {
	Show(text string) error
	ReadLine(ctx context.Context) (string, error)
}

type Human struct {
	Console Console
}

func IsExit(input string) bool {
	return slices.Contains(ExitKeywords, strings.ToLower(strings.TrimSpace(input)))
}

// Prompt shows the latest assistant message and blocks for one line of input.
// The line is always recorded, even when it ends the conversation. End of
// input ends the conversation without recording anything.
func (h *Human) Prompt(ctx context.Context, s State) (Update, error) {
	if m, ok := s.LastAssistant(); ok {
		if err := h.Console.Show(m.Content); err != nil {
			return Update{}, fmt.Errorf("show message: %w", err)
		}
	}

	line, err := h.Console.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		return Update{Finished: true}, nil
	}
	if err != nil {
		return Update{}, fmt.Errorf("read input: %w", err)
	}

	return Update{
		Messages: []Message{UserMessage{Content: line}},
		Finished: IsExit(line),
	}, nil
}
