package dialogue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

const DefaultMaxSteps = 50

type node string

const (
	nodeGenerate  node = "generate"
	nodeTools     node = "tools"
	nodeHuman     node = "human"
	nodeTerminate node = "terminate"
)

// SessionConfig wires the steps of a Session. MaxSteps bounds the number of
// executed steps and defaults to DefaultMaxSteps. Checkpoint, when set,
// receives the state after every step.
type SessionConfig struct {
	Generator  *Generator
	Tools      *ToolStep
	Human      *Human
	MaxSteps   int
	Checkpoint func(State) error
	Logger     *slog.Logger
}

func (cfg *SessionConfig) Validate() error {
	if cfg.Generator == nil || cfg.Generator.Model == nil {
		return errors.New("generator with a model is required")
	}
	if cfg.Tools == nil || cfg.Tools.Executor == nil {
		return errors.New("tool step with an executor is required")
	}
	if cfg.Human == nil || cfg.Human.Console == nil {
		return errors.New("human step with a console is required")
	}
	if cfg.MaxSteps == 0 {
		cfg.MaxSteps = DefaultMaxSteps
	}
	if cfg.MaxSteps < 0 {
		return errors.New("max steps must be greater than 0")
	}
	return nil
}

// Session drives one conversation: generate, then either run tools and
// generate again, or ask the human and either generate again or stop.
type Session struct {
	cfg SessionConfig
	log *slog.Logger
}

func NewSession(cfg SessionConfig) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Session{cfg: cfg, log: log}, nil
}

// Run executes steps until the conversation terminates. The state reached so
// far is returned alongside any error.
func (s *Session) Run(ctx context.Context, state State) (State, error) {
	current := entry(state)

	for steps := 0; ; steps++ {
		if current == nodeTerminate {
			s.log.Info("session finished", "steps", steps, "messages", len(state.Messages))
			return state, nil
		}
		if steps >= s.cfg.MaxSteps {
			return state, &RecursionLimitError{Limit: s.cfg.MaxSteps}
		}
		if err := ctx.Err(); err != nil {
			return state, err
		}

		s.log.Debug("session step", "step", steps+1, "node", current)

		next, update, err := s.step(ctx, current, state)
		if err != nil {
			return state, err
		}
		state = Reduce(state, update)

		if s.cfg.Checkpoint != nil {
			if err := s.cfg.Checkpoint(state); err != nil {
				return state, fmt.Errorf("checkpoint: %w", err)
			}
		}

		if next, err = s.after(next, state); err != nil {
			return state, err
		}
		current = next
	}
}

// entry resumes a log where it left off. Empty logs and logs ending in a user
// or tool message start with generation.
func entry(state State) node {
	if state.Finished {
		return nodeTerminate
	}
	if last, ok := state.Last(); ok {
		if m, ok := last.(AssistantMessage); ok {
			if len(m.ToolCalls) > 0 {
				return nodeTools
			}
			return nodeHuman
		}
	}
	return nodeGenerate
}

func (s *Session) step(ctx context.Context, n node, state State) (node, Update, error) {
	switch n {
	case nodeGenerate:
		u, err := s.cfg.Generator.Generate(ctx, state)
		return nodeGenerate, u, err
	case nodeTools:
		u, err := s.cfg.Tools.Invoke(ctx, state)
		return nodeTools, u, err
	case nodeHuman:
		u, err := s.cfg.Human.Prompt(ctx, state)
		return nodeHuman, u, err
	}
	return "", Update{}, fmt.Errorf("dialogue: unknown node %q", n)
}

// after picks the node that follows the one that just ran.
func (s *Session) after(ran node, state State) (node, error) {
	switch ran {
	case nodeGenerate:
		edge, err := Route(state)
		if err != nil {
			return "", err
		}
		if edge == EdgeInvokeTool {
			return nodeTools, nil
		}
		return nodeHuman, nil
	case nodeTools:
		return nodeGenerate, nil
	case nodeHuman:
		if MaybeExit(state) == EdgeTerminate {
			return nodeTerminate, nil
		}
		return nodeGenerate, nil
	}
	return "", fmt.Errorf("dialogue: unknown node %q", ran)
}
