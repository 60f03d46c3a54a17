package persistence

import (
	"fmt"
	"os"

	"github.com/sealor/students-chat/pkg/dialogue"
	"gopkg.in/yaml.v3"
)

func SaveSession(sessionFile, model string, state dialogue.State) error {
	session := NewSessionFromState(model, state)
	data, err := yaml.Marshal(session)
	if err != nil {
		return err
	}
	if err = os.WriteFile(sessionFile, data, 0640); err != nil {
		return err
	}
	return nil
}

// TryToResumeSession returns an empty state when sessionFile does not exist yet.
func TryToResumeSession(sessionFile string) (dialogue.State, error) {
	_, err := os.Stat(sessionFile)
	if os.IsNotExist(err) {
		return dialogue.State{}, nil
	}
	if err != nil {
		return dialogue.State{}, err
	}

	data, err := os.ReadFile(sessionFile)
	if err != nil {
		return dialogue.State{}, err
	}

	var session Session
	if err = yaml.Unmarshal(data, &session); err != nil {
		return dialogue.State{}, fmt.Errorf("parse %s: %w", sessionFile, err)
	}

	return NewStateFromSession(&session)
}

// Checkpoint saves the conversation to sessionFile after every step.
func Checkpoint(sessionFile, model string) func(dialogue.State) error {
	return func(state dialogue.State) error {
		return SaveSession(sessionFile, model, state)
	}
}
