package persistence

import (
	"fmt"

	"github.com/sealor/students-chat/pkg/dialogue"
)

func NewSessionFromState(model string, state dialogue.State) *Session {
	session := Session{Model: model, Finished: state.Finished}

	for _, stateMessage := range state.Messages {
		var sessionMessage Message

		switch m := stateMessage.(type) {
		case dialogue.AssistantMessage:
			sessionMessage = Message{Role: string(dialogue.RoleAssistant), Content: m.Content, ToolCalls: NewToolCallsFromState(m.ToolCalls)}
		case dialogue.SystemMessage:
			sessionMessage = Message{Role: string(dialogue.RoleSystem), Content: m.Content}
		case dialogue.ToolResultMessage:
			sessionMessage = Message{Role: string(dialogue.RoleToolResult), Content: m.Content, Name: m.Name, ToolCallID: m.ToolCallID}
		case dialogue.UserMessage:
			sessionMessage = Message{Role: string(dialogue.RoleUser), Content: m.Content}
		}

		session.Messages = append(session.Messages, sessionMessage)
	}

	return &session
}

func NewToolCallsFromState(calls []dialogue.ToolCall) []ToolCall {
	var toolCalls []ToolCall
	for _, call := range calls {
		toolCalls = append(toolCalls, ToolCall{call.ID, call.Name, call.Arguments})
	}
	return toolCalls
}

func NewStateFromSession(session *Session) (dialogue.State, error) {
	state := dialogue.State{Finished: session.Finished}

	for i, sessionMessage := range session.Messages {
		var stateMessage dialogue.Message

		switch dialogue.Role(sessionMessage.Role) {
		case dialogue.RoleAssistant:
			stateMessage = dialogue.AssistantMessage{Content: sessionMessage.Content, ToolCalls: NewToolCallsFromSession(sessionMessage.ToolCalls)}
		case dialogue.RoleSystem:
			stateMessage = dialogue.SystemMessage{Content: sessionMessage.Content}
		case dialogue.RoleToolResult:
			stateMessage = dialogue.ToolResultMessage{ToolCallID: sessionMessage.ToolCallID, Name: sessionMessage.Name, Content: sessionMessage.Content}
		case dialogue.RoleUser:
			stateMessage = dialogue.UserMessage{Content: sessionMessage.Content}
		default:
			return dialogue.State{}, fmt.Errorf("message %d: unknown role %q", i+1, sessionMessage.Role)
		}

		state.Messages = append(state.Messages, stateMessage)
	}

	return state, nil
}

func NewToolCallsFromSession(calls []ToolCall) []dialogue.ToolCall {
	var toolCalls []dialogue.ToolCall
	for _, call := range calls {
		toolCalls = append(toolCalls, dialogue.ToolCall{ID: call.ID, Name: call.Name, Arguments: call.Arguments})
	}
	return toolCalls
}
