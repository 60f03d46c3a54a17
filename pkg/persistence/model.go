// Package persistence handles mapping and YAML serialization of conversations
package persistence

type Session struct {
	Model    string `yaml:"model,omitempty"`
	Finished bool   `yaml:"finished,omitempty"`

	Messages []Message `yaml:"messages"`
}

type Message struct {
	Role       string     `yaml:"role"`
	Content    string     `yaml:"content,omitempty"`
	Name       string     `yaml:"name,omitempty"`
	ToolCallID string     `yaml:"tool_call_id,omitempty"`
	ToolCalls  []ToolCall `yaml:"tool_calls,omitempty"`
}

type ToolCall struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Arguments string `yaml:"arguments"`
}
