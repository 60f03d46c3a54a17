package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	WelcomeMessage = "Hello! I can answer questions about the students database. What would you like to know?"

	SystemPrompt = "You are a helpful assistant that answers questions about a database of university students. " +
		"The students table has the columns id, first_name, last_name, age, major, gpa, marital_status and education_status. " +
		"Whenever a question needs data, you must call the ask_students_db tool with a SQLite query instead of guessing. " +
		"Explain the results to the user in plain language and say so when a query returns nothing."
)

// Model is the language model backend.
type Model interface {
	Complete(ctx context.Context, messages []Message, tools []ToolSpec) (AssistantMessage, error)
}

// Generator produces the assistant turn. Timeout bounds a single model call;
// zero means no timeout.
type Generator struct {
	Model        Model
	Tools        []ToolSpec
	SystemPrompt string
	Welcome      string
	Timeout      time.Duration
	Logger       *slog.Logger
}

// Generate greets an empty conversation. Otherwise it sends the system prompt
// followed by the whole log to the model and appends its reply.
func (g *Generator) Generate(ctx context.Context, s State) (Update, error) {
	if len(s.Messages) == 0 {
		welcome := g.Welcome
		if welcome == "" {
			welcome = WelcomeMessage
		}
		return Update{Messages: []Message{AssistantMessage{Content: welcome}}}, nil
	}

	prompt := g.SystemPrompt
	if prompt == "" {
		prompt = SystemPrompt
	}
	messages := make([]Message, 0, len(s.Messages)+1)
	messages = append(messages, SystemMessage{Content: prompt})
	messages = append(messages, s.Messages...)

	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	reply, err := g.Model.Complete(ctx, messages, g.Tools)
	if err != nil {
		return Update{}, fmt.Errorf("generate: %w", err)
	}

	if g.Logger != nil {
		g.Logger.Debug("model replied", "content_len", len(reply.Content), "tool_calls", len(reply.ToolCalls))
	}
	return Update{Messages: []Message{reply}}, nil
}
