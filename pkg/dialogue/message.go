// Package dialogue implements the generate, tool and human steps of a
// conversation and the loop that drives them.
package dialogue

type Role string

const (
	RoleSystem     Role = "system"
	RoleAssistant  Role = "assistant"
	RoleUser       Role = "user"
	RoleToolResult Role = "tool"
)

// Message is one of SystemMessage, AssistantMessage, UserMessage or
// ToolResultMessage.
type Message interface {
	Role() Role
	Text() string
	isMessage()
}

type SystemMessage struct {
	Content string
}

type AssistantMessage struct {
	Content   string
	ToolCalls []ToolCall
}

type UserMessage struct {
	Content string
}

// ToolResultMessage answers the tool call with the same ID.
type ToolResultMessage struct {
	ToolCallID string
	Name       string
	Content    string
}

// ToolCall is a request from the model to run a named tool. Arguments holds
// the raw JSON object sent by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

func (SystemMessage) Role() Role     { return RoleSystem }
func (AssistantMessage) Role() Role  { return RoleAssistant }
func (UserMessage) Role() Role       { return RoleUser }
func (ToolResultMessage) Role() Role { return RoleToolResult }

func (m SystemMessage) Text() string     { return m.Content }
func (m AssistantMessage) Text() string  { return m.Content }
func (m UserMessage) Text() string       { return m.Content }
func (m ToolResultMessage) Text() string { return m.Content }

func (SystemMessage) isMessage()     {}
func (AssistantMessage) isMessage()  {}
func (UserMessage) isMessage()       {}
func (ToolResultMessage) isMessage() {}

// ToolSpec declares a tool to the model. Parameters is a JSON schema object.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]any
}
