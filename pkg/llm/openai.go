// Package llm adapts hosted model APIs to dialogue.Model
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/packages/ssestream"
	"github.com/openai/openai-go/v3/shared"
	"github.com/sealor/students-chat/pkg/dialogue"
)

// OpenAI talks to any OpenAI compatible chat completions endpoint.
type OpenAI struct {
	client    openai.Client
	model     string
	reasoning string
	log       *slog.Logger
}

func NewOpenAI(client openai.Client, model, reasoning string, log *slog.Logger) *OpenAI {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &OpenAI{client: client, model: model, reasoning: reasoning, log: log}
}

func (o *OpenAI) Complete(ctx context.Context, messages []dialogue.Message, tools []dialogue.ToolSpec) (dialogue.AssistantMessage, error) {
	param := openai.ChatCompletionNewParams{
		Model:    o.model,
		Messages: ToOpenAIMessages(messages),
		Tools:    ToOpenAITools(tools),
	}
	if o.reasoning != "" {
		param.ReasoningEffort = shared.ReasoningEffort(o.reasoning)
	}

	stream := o.client.Chat.Completions.NewStreaming(ctx, param)
	acc, err := o.accumulate(ctx, stream)
	if closeErr := stream.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return dialogue.AssistantMessage{}, fmt.Errorf("openai: %w", err)
	}
	if len(acc.Choices) == 0 {
		return dialogue.AssistantMessage{}, errors.New("openai: completion without choices")
	}

	return FromOpenAIMessage(acc.Choices[0].Message), nil
}

func (o *OpenAI) accumulate(ctx context.Context, stream *ssestream.Stream[openai.ChatCompletionChunk]) (openai.ChatCompletionAccumulator, error) {
	acc := openai.ChatCompletionAccumulator{}

	for stream.Next() {
		select {
		case <-ctx.Done():
			return acc, ctx.Err()
		default:
		}

		chunk := stream.Current()
		acc.AddChunk(chunk)

		if content, ok := acc.JustFinishedContent(); ok {
			o.log.Debug("content stream finished", "content", content)
		}

		if tool, ok := acc.JustFinishedToolCall(); ok {
			o.log.Debug("tool call stream finished", "index", tool.Index, "name", tool.Name, "arguments", tool.Arguments)
		}

		if refusal, ok := acc.JustFinishedRefusal(); ok {
			o.log.Warn("model refused", "refusal", refusal)
		}

		if len(chunk.Choices) > 0 {
			reasoningJSON, ok := chunk.Choices[0].Delta.JSON.ExtraFields["reasoning"]
			var reasoning string
			if ok {
				json.Unmarshal([]byte(reasoningJSON.Raw()), &reasoning)
			}
			if len(reasoning) > 0 {
				o.log.Debug("reasoning", "text", reasoning)
			}
		}
	}

	return acc, stream.Err()
}

func ToOpenAIMessages(messages []dialogue.Message) []openai.ChatCompletionMessageParamUnion {
	var params []openai.ChatCompletionMessageParamUnion
	for _, message := range messages {
		var param openai.ChatCompletionMessageParamUnion

		switch m := message.(type) {
		case dialogue.SystemMessage:
			param = openai.SystemMessage(m.Content)
		case dialogue.UserMessage:
			param = openai.UserMessage(m.Content)
		case dialogue.ToolResultMessage:
			param = openai.ToolMessage(m.Content, m.ToolCallID)
		case dialogue.AssistantMessage:
			param = openai.AssistantMessage(m.Content)
			param.OfAssistant.ToolCalls = toOpenAIToolCalls(m.ToolCalls)
		default:
			continue
		}

		params = append(params, param)
	}
	return params
}

func toOpenAIToolCalls(calls []dialogue.ToolCall) []openai.ChatCompletionMessageToolCallUnionParam {
	var toolCalls []openai.ChatCompletionMessageToolCallUnionParam
	for _, call := range calls {
		toolCalls = append(toolCalls, openai.ChatCompletionMessageToolCallUnionParam{
			OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
				ID:       call.ID,
				Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{Name: call.Name, Arguments: call.Arguments},
			},
		})
	}
	return toolCalls
}

func ToOpenAITools(tools []dialogue.ToolSpec) []openai.ChatCompletionToolUnionParam {
	var params []openai.ChatCompletionToolUnionParam
	for _, tool := range tools {
		params = append(params, openai.ChatCompletionToolUnionParam{
			OfFunction: &openai.ChatCompletionFunctionToolParam{
				Function: openai.FunctionDefinitionParam{
					Name:        tool.Name,
					Description: openai.String(tool.Description),
					Parameters:  openai.FunctionParameters(tool.Parameters),
				},
			},
		})
	}
	return params
}

func FromOpenAIMessage(message openai.ChatCompletionMessage) dialogue.AssistantMessage {
	reply := dialogue.AssistantMessage{Content: message.Content}
	for _, call := range message.ToolCalls {
		reply.ToolCalls = append(reply.ToolCalls, dialogue.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}
	return reply
}
