package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sealor/students-chat/pkg/dialogue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeMissingFile(t *testing.T) {
	state, err := TryToResumeSession(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Empty(t, state.Messages)
	assert.False(t, state.Finished)
}

func TestSaveAndResume(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	state := dialogue.State{
		Messages: []dialogue.Message{
			dialogue.AssistantMessage{Content: dialogue.WelcomeMessage},
			dialogue.UserMessage{Content: "how many students?"},
			dialogue.AssistantMessage{ToolCalls: []dialogue.ToolCall{{ID: "c1", Name: "ask_students_db", Arguments: `{"query":"SELECT COUNT(*) FROM students"}`}}},
			dialogue.ToolResultMessage{ToolCallID: "c1", Name: "ask_students_db", Content: "(20,)"},
			dialogue.AssistantMessage{Content: "There are 20 students."},
			dialogue.UserMessage{Content: "quit"},
		},
		Finished: true,
	}

	require.NoError(t, SaveSession(path, "qwen3:1.7b", state))

	resumed, err := TryToResumeSession(path)
	require.NoError(t, err)
	assert.Equal(t, state, resumed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "model: qwen3:1.7b")
	assert.Contains(t, string(data), "tool_call_id: c1")
}

func TestResumeRejectsUnknownRole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("messages:\n  - role: developer\n    content: hi\n"), 0640))

	_, err := TryToResumeSession(path)
	assert.ErrorContains(t, err, `unknown role "developer"`)
}

func TestCheckpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	save := Checkpoint(path, "m")

	require.NoError(t, save(dialogue.State{Messages: []dialogue.Message{dialogue.UserMessage{Content: "hi"}}}))

	resumed, err := TryToResumeSession(path)
	require.NoError(t, err)
	assert.Equal(t, []dialogue.Message{dialogue.UserMessage{Content: "hi"}}, resumed.Messages)
}
