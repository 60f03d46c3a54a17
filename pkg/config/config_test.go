package config

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STUDENTS_PROVIDER", "")
	t.Setenv("STUDENTS_MAX_STEPS", "")
	t.Setenv("STUDENTS_DB", ":memory:")
	t.Setenv("STUDENTS_MODEL", "")
	t.Setenv("OPENAI_URL", DefaultOpenAIURL)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load([]string{"-provider", "openai"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, DefaultOpenAIURL, cfg.APIURL)
	assert.Equal(t, DefaultOpenAIModel, cfg.Model)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, 50, cfg.MaxSteps)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Zero(t, cfg.LLMTimeout)
}

func TestLoadEnvironmentMaxSteps(t *testing.T) {
	t.Setenv("STUDENTS_MAX_STEPS", "12")

	cfg, err := Load([]string{"-provider", "openai"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.MaxSteps)

	cfg, err = Load([]string{"-provider", "openai", "-max-steps", "3"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxSteps)
}

func TestLoadFlags(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "ak-test")

	cfg, err := Load([]string{
		"-provider", "Anthropic",
		"-message", "How many students are married?",
		"-session-file", "chat.yaml",
		"-llm-timeout", "30s",
	}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, DefaultAnthropicModel, cfg.Model)
	assert.Equal(t, "ak-test", cfg.APIKey)
	assert.Equal(t, "How many students are married?", cfg.Message)
	assert.Equal(t, "chat.yaml", cfg.SessionFile)
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	tests := map[string][]string{
		"unknown provider": {"-provider", "bard"},
		"zero steps":       {"-provider", "openai", "-max-steps", "0"},
		"missing key":      {"-provider", "anthropic"},
		"negative timeout": {"-provider", "openai", "-llm-timeout", "-1s"},
		"unknown flag":     {"-provider", "openai", "-verbose"},
		"empty api":        {"-provider", "openai", "-api", ""},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(args, io.Discard)
			assert.Error(t, err)
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("SOME_INT", " 7 ")
	assert.Equal(t, 7, GetEnvInt("SOME_INT", 1))

	t.Setenv("SOME_INT", "seven")
	assert.Equal(t, 1, GetEnvInt("SOME_INT", 1))
}
