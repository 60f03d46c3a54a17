package dialogue

import (
	"context"
	"fmt"
	"io"
)

// scriptedModel replays replies in order and records what it was sent.
type scriptedModel struct {
	replies []AssistantMessage
	calls   [][]Message
	err     error
}

func (m *scriptedModel) Complete(ctx context.Context, messages []Message, tools []ToolSpec) (AssistantMessage, error) {
	m.calls = append(m.calls, messages)
	if m.err != nil {
		return AssistantMessage{}, m.err
	}
	if len(m.calls) > len(m.replies) {
		return AssistantMessage{}, fmt.Errorf("unexpected model call %d", len(m.calls))
	}
	return m.replies[len(m.calls)-1], nil
}

// loopingModel always asks for another tool call.
type loopingModel struct {
	calls int
}

func (m *loopingModel) Complete(ctx context.Context, messages []Message, tools []ToolSpec) (AssistantMessage, error) {
	m.calls++
	return AssistantMessage{ToolCalls: []ToolCall{{
		ID:        fmt.Sprintf("call_%d", m.calls),
		Name:      "ask_students_db",
		Arguments: `{"query":"SELECT 1"}`,
	}}}, nil
}

type echoExecutor struct {
	calls []ToolCall
}

func (e *echoExecutor) Call(ctx context.Context, call ToolCall) ToolResultMessage {
	e.calls = append(e.calls, call)
	return ToolResultMessage{Content: "result for " + call.Arguments}
}

type fakeConsole struct {
	inputs []string
	shown  []string
	reads  int
}

func (c *fakeConsole) Show(text string) error {
	c.shown = append(c.shown, text)
	return nil
}

func (c *fakeConsole) ReadLine(ctx context.Context) (string, error) {
	if c.reads >= len(c.inputs) {
		return "", io.EOF
	}
	line := c.inputs[c.reads]
	c.reads++
	return line, nil
}
