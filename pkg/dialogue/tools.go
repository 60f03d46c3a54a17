package dialogue

import (
	"context"
	"log/slog"
)

// ToolExecutor runs one tool call. Failures are reported in the result text.
type ToolExecutor interface {
	Call(ctx context.Context, call ToolCall) ToolResultMessage
}

type ToolStep struct {
	Executor ToolExecutor
	Logger   *slog.Logger
}

// Invoke answers every tool call of the latest message, in call order.
func (t *ToolStep) Invoke(ctx context.Context, s State) (Update, error) {
	last, ok := s.Last()
	if !ok {
		return Update{}, ErrEmptyConversation
	}
	m, ok := last.(AssistantMessage)
	if !ok {
		return Update{}, nil
	}

	results := make([]Message, 0, len(m.ToolCalls))
	for _, call := range m.ToolCalls {
		if t.Logger != nil {
			t.Logger.Info("tool call", "name", call.Name, "id", call.ID, "arguments", call.Arguments)
		}
		result := t.Executor.Call(ctx, call)
		result.ToolCallID = call.ID
		if result.Name == "" {
			result.Name = call.Name
		}
		if t.Logger != nil {
			t.Logger.Debug("tool result", "id", call.ID, "content", result.Content)
		}
		results = append(results, result)
	}
	return Update{Messages: results}, nil
}
