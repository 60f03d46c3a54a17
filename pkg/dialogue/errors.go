package dialogue

import (
	"errors"
	"fmt"
)

// ErrEmptyConversation is returned when routing is asked to inspect an empty log.
var ErrEmptyConversation = errors.New("dialogue: no messages to route")

// RecursionLimitError aborts a session that did not terminate within Limit steps.
type RecursionLimitError struct {
	Limit int
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("dialogue: recursion limit of %d steps reached without terminating", e.Limit)
}
