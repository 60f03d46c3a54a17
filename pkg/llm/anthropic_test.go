package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sealor/students-chat/pkg/dialogue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropicComplete(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &body))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": [
				{"type": "text", "text": "Let me check."},
				{"type": "tool_use", "id": "toolu_1", "name": "ask_students_db", "input": {"query": "SELECT COUNT(*) FROM students"}}
			],
			"stop_reason": "tool_use",
			"stop_sequence": null,
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`)
	}))
	defer srv.Close()

	client := anthropic.NewClient(
		option.WithBaseURL(srv.URL),
		option.WithAPIKey("test"),
		option.WithMaxRetries(0),
	)
	model := NewAnthropic(client, "claude-test", 0, nil)

	reply, err := model.Complete(context.Background(), []dialogue.Message{
		dialogue.SystemMessage{Content: "be helpful"},
		dialogue.AssistantMessage{Content: "welcome"},
		dialogue.UserMessage{Content: "how many?"},
	}, []dialogue.ToolSpec{askTool})
	require.NoError(t, err)

	assert.Equal(t, "Let me check.", reply.Content)
	require.Len(t, reply.ToolCalls, 1)
	assert.Equal(t, "toolu_1", reply.ToolCalls[0].ID)
	assert.Equal(t, "ask_students_db", reply.ToolCalls[0].Name)
	assert.JSONEq(t, `{"query": "SELECT COUNT(*) FROM students"}`, reply.ToolCalls[0].Arguments)

	assert.Equal(t, "claude-test", body["model"])
	assert.EqualValues(t, DefaultAnthropicMaxTokens, body["max_tokens"])
	system := body["system"].([]any)
	assert.Equal(t, "be helpful", system[0].(map[string]any)["text"])
	messages := body["messages"].([]any)
	require.Len(t, messages, 1)
	assert.Equal(t, "user", messages[0].(map[string]any)["role"])
	tools := body["tools"].([]any)
	require.Len(t, tools, 1)
	assert.Equal(t, "ask_students_db", tools[0].(map[string]any)["name"])
}

func TestToAnthropicMessagesFoldsToolResults(t *testing.T) {
	system, params := ToAnthropicMessages([]dialogue.Message{
		dialogue.SystemMessage{Content: "sys"},
		dialogue.AssistantMessage{Content: "welcome"},
		dialogue.UserMessage{Content: "two queries"},
		dialogue.AssistantMessage{ToolCalls: []dialogue.ToolCall{
			{ID: "a", Name: "ask_students_db", Arguments: `{"query":"SELECT 1"}`},
			{ID: "b", Name: "ask_students_db", Arguments: `{"query":"SELECT 2"}`},
		}},
		dialogue.ToolResultMessage{ToolCallID: "a", Content: "(1,)"},
		dialogue.ToolResultMessage{ToolCallID: "b", Content: "(2,)"},
		dialogue.AssistantMessage{Content: "1 and 2"},
	})

	assert.Equal(t, "sys", system)
	require.Len(t, params, 4)
	assert.Equal(t, anthropic.MessageParamRoleUser, params[0].Role)
	assert.Equal(t, anthropic.MessageParamRoleAssistant, params[1].Role)
	assert.Len(t, params[1].Content, 2)
	assert.Equal(t, anthropic.MessageParamRoleUser, params[2].Role)
	assert.Len(t, params[2].Content, 2)
	assert.Equal(t, anthropic.MessageParamRoleAssistant, params[3].Role)
}

func TestToAnthropicTools(t *testing.T) {
	tools := ToAnthropicTools([]dialogue.ToolSpec{askTool})
	require.Len(t, tools, 1)
	require.NotNil(t, tools[0].OfTool)
	assert.Equal(t, "ask_students_db", tools[0].OfTool.Name)
	assert.Equal(t, []string{"query"}, tools[0].OfTool.InputSchema.Required)
}
