package dialogue

type Edge string

const (
	EdgeInvokeTool Edge = "invoke-tool"
	EdgeAwaitHuman Edge = "await-human"
	EdgeContinue   Edge = "continue"
	EdgeTerminate  Edge = "terminate"
)

// Route sends a message carrying tool calls to the tool step and anything
// else to the human.
func Route(s State) (Edge, error) {
	last, ok := s.Last()
	if !ok {
		return "", ErrEmptyConversation
	}
	if m, ok := last.(AssistantMessage); ok && len(m.ToolCalls) > 0 {
		return EdgeInvokeTool, nil
	}
	return EdgeAwaitHuman, nil
}

func MaybeExit(s State) Edge {
	if s.Finished {
		return EdgeTerminate
	}
	return EdgeContinue
}
