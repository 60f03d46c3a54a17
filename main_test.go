package main

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/sealor/students-chat/pkg/config"
	"github.com/sealor/students-chat/pkg/dialogue"
	"github.com/sealor/students-chat/pkg/persistence"
	"github.com/sealor/students-chat/pkg/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStoreSeedsOnce(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "students.db")
	log := slog.New(slog.DiscardHandler)

	store, err := openStore(ctx, path, log)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = openStore(ctx, path, log)
	require.NoError(t, err)
	defer store.Close()

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, n)
}

func TestPrintStudents(t *testing.T) {
	ctx := context.Background()
	store, err := openStore(ctx, records.MemoryPath, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	defer store.Close()

	var out bytes.Buffer
	require.NoError(t, printStudents(ctx, &out, store))

	assert.Contains(t, out.String(), "education_status")
	assert.Contains(t, out.String(), "Rodriguez")
}

func TestInitialStateResumesSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	saved := dialogue.State{
		Messages: []dialogue.Message{
			dialogue.AssistantMessage{Content: dialogue.WelcomeMessage},
			dialogue.UserMessage{Content: "quit"},
		},
		Finished: true,
	}
	require.NoError(t, persistence.SaveSession(path, "m", saved))

	state, err := initialState(&config.Config{SessionFile: path, Message: "how many majors are there?"})
	require.NoError(t, err)

	assert.False(t, state.Finished)
	require.Len(t, state.Messages, 3)
	assert.Equal(t, dialogue.UserMessage{Content: "how many majors are there?"}, state.Messages[2])
}

func TestInitialStateWithoutSession(t *testing.T) {
	state, err := initialState(&config.Config{})
	require.NoError(t, err)
	assert.Empty(t, state.Messages)

	state, err = initialState(&config.Config{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, []dialogue.Message{dialogue.UserMessage{Content: "hi"}}, state.Messages)
}
