package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/sealor/students-chat/pkg/dialogue"
)

const DefaultAnthropicMaxTokens = 1024

// Anthropic calls the Messages API.
type Anthropic struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
	log       *slog.Logger
}

func NewAnthropic(client anthropic.Client, model string, maxTokens int64, log *slog.Logger) *Anthropic {
	if maxTokens <= 0 {
		maxTokens = DefaultAnthropicMaxTokens
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Anthropic{client: client, model: anthropic.Model(model), maxTokens: maxTokens, log: log}
}

func (a *Anthropic) Complete(ctx context.Context, messages []dialogue.Message, tools []dialogue.ToolSpec) (dialogue.AssistantMessage, error) {
	system, params := ToAnthropicMessages(messages)

	req := anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages:  params,
		Tools:     ToAnthropicTools(tools),
	}
	if system != "" {
		req.System = []anthropic.TextBlockParam{{Text: system}}
	}

	resp, err := a.client.Messages.New(ctx, req)
	if err != nil {
		return dialogue.AssistantMessage{}, fmt.Errorf("anthropic: %w", err)
	}
	a.log.Debug("anthropic response", "stop_reason", resp.StopReason, "blocks", len(resp.Content))

	return FromAnthropicMessage(resp), nil
}

// ToAnthropicMessages splits the system prompt from the conversation. Tool
// results that follow one another are sent as a single user turn, and
// assistant turns before the first user turn are dropped since the API
// requires the conversation to open with the user.
func ToAnthropicMessages(messages []dialogue.Message) (string, []anthropic.MessageParam) {
	var system []string
	var params []anthropic.MessageParam
	var results []anthropic.ContentBlockParamUnion

	flush := func() {
		if len(results) > 0 {
			params = append(params, anthropic.NewUserMessage(results...))
			results = nil
		}
	}

	for _, message := range messages {
		switch m := message.(type) {
		case dialogue.SystemMessage:
			system = append(system, m.Content)
		case dialogue.UserMessage:
			flush()
			params = append(params, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case dialogue.ToolResultMessage:
			results = append(results, anthropic.NewToolResultBlock(m.ToolCallID, m.Content, false))
		case dialogue.AssistantMessage:
			flush()
			if len(params) == 0 {
				continue
			}
			var blocks []anthropic.ContentBlockParamUnion
			if m.Content != "" {
				blocks = append(blocks, anthropic.NewTextBlock(m.Content))
			}
			for _, call := range m.ToolCalls {
				args := call.Arguments
				if strings.TrimSpace(args) == "" {
					args = "{}"
				}
				blocks = append(blocks, anthropic.ContentBlockParamUnion{
					OfToolUse: &anthropic.ToolUseBlockParam{
						ID:    call.ID,
						Name:  call.Name,
						Input: json.RawMessage(args),
					},
				})
			}
			if len(blocks) == 0 {
				continue
			}
			params = append(params, anthropic.NewAssistantMessage(blocks...))
		}
	}
	flush()

	return strings.Join(system, "\n\n"), params
}

func ToAnthropicTools(tools []dialogue.ToolSpec) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, t := range tools {
		props, _ := t.Parameters["properties"].(map[string]any)
		toolParam := anthropic.ToolParam{
			Name:        t.Name,
			Description: anthropic.Opt(t.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: props,
				Required:   requiredFields(t.Parameters["required"]),
			},
		}
		out = append(out, anthropic.ToolUnionParam{OfTool: &toolParam})
	}
	return out
}

// requiredFields accepts both []string and the []any produced by decoding JSON.
func requiredFields(v any) []string {
	switch r := v.(type) {
	case []string:
		return r
	case []any:
		fields := make([]string, 0, len(r))
		for _, f := range r {
			if s, ok := f.(string); ok {
				fields = append(fields, s)
			}
		}
		return fields
	}
	return nil
}

func FromAnthropicMessage(resp *anthropic.Message) dialogue.AssistantMessage {
	var reply dialogue.AssistantMessage
	var text strings.Builder
	for _, blk := range resp.Content {
		switch blk.Type {
		case "text":
			text.WriteString(blk.AsText().Text)
		case "tool_use":
			tu := blk.AsToolUse()
			reply.ToolCalls = append(reply.ToolCalls, dialogue.ToolCall{
				ID:        tu.ID,
				Name:      tu.Name,
				Arguments: string(tu.Input),
			})
		}
	}
	reply.Content = text.String()
	return reply
}
