// Package config provides command line and environment configuration.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sealor/students-chat/pkg/dialogue"
	"github.com/sealor/students-chat/pkg/records"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	DefaultOpenAIURL      = "http://127.0.0.1:11434/v1"
	DefaultOpenAIModel    = "qwen3:1.7b"
	DefaultAnthropicModel = "claude-3-5-haiku-latest"
)

type Config struct {
	Provider     string
	APIURL       string
	APIKey       string
	Model        string
	Reasoning    string
	MaxTokens    int64
	Message      string
	MaxSteps     int
	DBPath       string
	SessionFile  string
	ShowStudents bool
	Log          bool
	LLMTimeout   time.Duration
}

// Load parses args with defaults taken from the environment.
func Load(args []string, output io.Writer) (*Config, error) {
	fs := flag.NewFlagSet("students-chat", flag.ContinueOnError)
	fs.SetOutput(output)

	cfg := &Config{}
	fs.StringVar(&cfg.Provider, "provider", GetEnv("STUDENTS_PROVIDER", ProviderOpenAI), "Model provider (openai or anthropic)")
	fs.StringVar(&cfg.APIURL, "api", GetEnv("OPENAI_URL", DefaultOpenAIURL), "URL for the OpenAI API endpoint")
	fs.StringVar(&cfg.Model, "model", GetEnv("STUDENTS_MODEL", ""), "Technical name of the LLM")
	fs.StringVar(&cfg.Reasoning, "reasoning", "", "Level of reasoning (e.g. none, low, medium, high)")
	fs.Int64Var(&cfg.MaxTokens, "max-tokens", 1024, "Maximum output tokens per reply (anthropic)")
	fs.StringVar(&cfg.Message, "message", "", "Initial user question")
	fs.IntVar(&cfg.MaxSteps, "max-steps", GetEnvInt("STUDENTS_MAX_STEPS", dialogue.DefaultMaxSteps), "Maximum number of conversation steps")
	fs.StringVar(&cfg.DBPath, "db", GetEnv("STUDENTS_DB", records.MemoryPath), "SQLite database path")
	fs.StringVar(&cfg.SessionFile, "session-file", "", "Use this file to save and resume chat sessions")
	fs.BoolVar(&cfg.ShowStudents, "show-students", false, "Print the students table and exit")
	fs.BoolVar(&cfg.Log, "log", false, "Activate debug logging")
	fs.DurationVar(&cfg.LLMTimeout, "llm-timeout", 0, "Timeout for a single model call (0 disables)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	switch cfg.Provider {
	case ProviderOpenAI:
		cfg.APIKey = GetEnv("OPENAI_API_KEY", "")
		if cfg.Model == "" {
			cfg.Model = DefaultOpenAIModel
		}
	case ProviderAnthropic:
		cfg.APIKey = GetEnv("ANTHROPIC_API_KEY", "")
		if cfg.Model == "" {
			cfg.Model = DefaultAnthropicModel
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.APIURL == "" {
			return errors.New("api URL cannot be empty")
		}
	case ProviderAnthropic:
		if c.APIKey == "" && !c.ShowStudents {
			return errors.New("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.MaxSteps <= 0 {
		return errors.New("max steps must be greater than 0")
	}
	if c.MaxTokens <= 0 {
		return errors.New("max tokens must be greater than 0")
	}
	if c.LLMTimeout < 0 {
		return errors.New("llm timeout cannot be negative")
	}
	return nil
}

func GetEnv(name, fallback string) string {
	value, ok := os.LookupEnv(name)
	if ok {
		return value
	} else {
		return fallback
	}
}

func GetEnvInt(name string, fallback int) int {
	value, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
