package dialogue

import "slices"

// State is the conversation owned by one Session.
type State struct {
	Messages []Message
	Finished bool
}

// Update is the output of a single step.
type Update struct {
	Messages []Message
	Finished bool
}

// Reduce applies u to s. Messages are appended in order without touching the
// backing array of s. Finished only ever moves from false to true.
func Reduce(s State, u Update) State {
	return State{
		Messages: append(slices.Clip(s.Messages), u.Messages...),
		Finished: s.Finished || u.Finished,
	}
}

// InitialState starts a conversation, optionally with the user's first question.
func InitialState(question string) State {
	if question == "" {
		return State{}
	}
	return State{Messages: []Message{UserMessage{Content: question}}}
}

func (s State) Last() (Message, bool) {
	if len(s.Messages) == 0 {
		return nil, false
	}
	return s.Messages[len(s.Messages)-1], true
}

// LastAssistant returns the most recent assistant message.
func (s State) LastAssistant() (AssistantMessage, bool) {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if m, ok := s.Messages[i].(AssistantMessage); ok {
			return m, true
		}
	}
	return AssistantMessage{}, false
}
