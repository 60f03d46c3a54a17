package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/olekukonko/tablewriter"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/sealor/students-chat/pkg/config"
	"github.com/sealor/students-chat/pkg/console"
	"github.com/sealor/students-chat/pkg/dialogue"
	"github.com/sealor/students-chat/pkg/llm"
	"github.com/sealor/students-chat/pkg/persistence"
	"github.com/sealor/students-chat/pkg/records"
	"github.com/sealor/students-chat/pkg/tooling"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(2)
	}

	log := newLogger(cfg.Log)
	if envErr != nil {
		log.Debug("no .env file loaded", "error", envErr)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, log)
	cancel()

	if err != nil {
		var limitErr *dialogue.RecursionLimitError
		var storageErr *records.StorageError
		switch {
		case errors.As(err, &limitErr):
			log.Error("conversation aborted", "limit", limitErr.Limit, "error", err)
		case errors.As(err, &storageErr):
			log.Error("database unavailable", "op", storageErr.Op, "error", err)
		case errors.Is(err, context.Canceled):
			log.Info("interrupted")
		default:
			log.Error("session failed", "error", err)
		}
		os.Exit(1)
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	store, err := openStore(ctx, cfg.DBPath, log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Error("failed to close database", "error", closeErr)
		}
	}()

	if cfg.ShowStudents {
		return printStudents(ctx, os.Stdout, store)
	}

	state, err := initialState(cfg)
	if err != nil {
		return err
	}

	sessionConfig := dialogue.SessionConfig{
		Generator: &dialogue.Generator{
			Model:   newModel(cfg, log),
			Tools:   []dialogue.ToolSpec{tooling.Definition()},
			Timeout: cfg.LLMTimeout,
			Logger:  log,
		},
		Tools:    &dialogue.ToolStep{Executor: tooling.NewStudentsDB(store, log), Logger: log},
		Human:    &dialogue.Human{Console: console.New(os.Stdin, os.Stdout)},
		MaxSteps: cfg.MaxSteps,
		Logger:   log,
	}
	if cfg.SessionFile != "" {
		sessionConfig.Checkpoint = persistence.Checkpoint(cfg.SessionFile, cfg.Model)
	}

	session, err := dialogue.NewSession(sessionConfig)
	if err != nil {
		return err
	}

	log.Info("starting conversation", "provider", cfg.Provider, "model", cfg.Model, "max_steps", cfg.MaxSteps, "resumed_messages", len(state.Messages))
	_, err = session.Run(ctx, state)
	return err
}

// openStore creates the students table and seeds it when it is empty.
func openStore(ctx context.Context, path string, log *slog.Logger) (*records.Store, error) {
	store, err := records.Open(ctx, path, log)
	if err != nil {
		return nil, err
	}
	if err := store.CreateSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}

	n, err := store.Count(ctx)
	if err != nil {
		store.Close()
		return nil, &records.StorageError{Op: "count students", Err: err}
	}
	if n == 0 {
		seeded, err := store.Seed(ctx, records.ReferenceStudents())
		if err != nil {
			store.Close()
			return nil, err
		}
		log.Info("database seeded", "path", path, "students", len(seeded))
	}
	return store, nil
}

func initialState(cfg *config.Config) (dialogue.State, error) {
	if cfg.SessionFile == "" {
		return dialogue.InitialState(cfg.Message), nil
	}

	state, err := persistence.TryToResumeSession(cfg.SessionFile)
	if err != nil {
		return dialogue.State{}, fmt.Errorf("resume session: %w", err)
	}
	// a finished transcript is continued as a new conversation
	state.Finished = false
	if cfg.Message != "" {
		state = dialogue.Reduce(state, dialogue.Update{Messages: []dialogue.Message{dialogue.UserMessage{Content: cfg.Message}}})
	}
	return state, nil
}

func newModel(cfg *config.Config, log *slog.Logger) dialogue.Model {
	if cfg.Provider == config.ProviderAnthropic {
		client := anthropic.NewClient(anthropicoption.WithAPIKey(cfg.APIKey))
		return llm.NewAnthropic(client, cfg.Model, cfg.MaxTokens, log)
	}

	options := []option.RequestOption{
		option.WithBaseURL(cfg.APIURL),
	}
	if cfg.APIKey != "" {
		options = append(options, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.Log {
		options = append(options, option.WithDebugLog(nil))
	}
	client := openai.NewClient(options...)
	return llm.NewOpenAI(client, cfg.Model, cfg.Reasoning, log)
}

func printStudents(ctx context.Context, w io.Writer, store *records.Store) error {
	students, err := store.All(ctx)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(true)
	table.SetHeader([]string{"id", "first_name", "last_name", "age", "major", "gpa", "marital_status", "education_status"})

	for _, s := range students {
		table.Append([]string{
			strconv.FormatInt(s.ID, 10),
			s.FirstName,
			s.LastName,
			strconv.Itoa(s.Age),
			s.Major,
			fmt.Sprintf("%.2f", s.GPA),
			s.MaritalStatus,
			s.EducationStatus,
		})
	}
	table.Render()
	return nil
}
