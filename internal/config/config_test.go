package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ababa/internal/quiz"
	"github.com/abhisek/ababa/internal/store"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"DATABASE_URL", "ABABA_ENV", "ABABA_LLM_PROVIDER", "ABABA_LLM_MODEL",
		"ABABA_QUIZ_ANSWER_POLICY", "ABABA_USER_LOCALE", "ABABA_DB", "ABABA_LOG_LEVEL",
		"ABABA_DATABASE_DSN", "ABABA_LLM_GEMINI_API_KEY", "ABABA_LLM_ANTHROPIC_API_KEY",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_DATA_HOME", t.TempDir())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "ababa.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, store.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Database.MaxConnLifetime)
	assert.Equal(t, 30*time.Second, cfg.LLMSettings.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)

	qc, err := cfg.QuizConfig()
	require.NoError(t, err)
	assert.Equal(t, quiz.AllowOverwrite, qc.AnswerPolicy)

	opts, err := cfg.StoreOptions()
	require.NoError(t, err)
	assert.Equal(t, "ababa.db", filepath.Base(opts.DSN))
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
env: development
database:
  driver: postgres
  dsn: postgres://localhost/ababa
  max_connections: 4
llm:
  provider: anthropic
  model: claude-sonnet
  timeout: 10s
user:
  name: Abebe
  locale: am-ET
quiz:
  answer_policy: reject
`)
	t.Setenv("ABABA_LLM_ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("ABABA_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "debug", cfg.Log.Level)

	opts, err := cfg.StoreOptions()
	require.NoError(t, err)
	assert.Equal(t, store.DriverPostgres, opts.Driver)
	assert.Equal(t, int32(4), opts.MaxConns)

	lc := cfg.LLM()
	assert.Equal(t, "anthropic", lc.Provider)
	assert.Equal(t, "sk-test", lc.Anthropic.APIKey)
	assert.Equal(t, "claude-sonnet", lc.Anthropic.Model)
	assert.Equal(t, 10*time.Second, lc.Timeout)
	assert.NoError(t, lc.Validate())

	assert.Equal(t, 10*time.Second, cfg.Tutor().Timeout)

	qc, err := cfg.QuizConfig()
	require.NoError(t, err)
	assert.Equal(t, quiz.RejectResubmission, qc.AnswerPolicy)

	u := cfg.Identity().Current()
	assert.Equal(t, "Abebe", u.DisplayName)
	assert.Equal(t, "am-ET", u.Locale)
}

func TestConventionalKeysPickProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("DATABASE_URL", "postgres://db/ababa")

	cfg, err := Load("")
	require.NoError(t, err)

	lc := cfg.LLM()
	assert.Equal(t, "openai", lc.Provider)
	assert.Equal(t, "sk-openai", lc.OpenAI.APIKey)
	assert.Equal(t, "postgres://db/ababa", cfg.Database.DSN)
}

func TestNoKeysFailsValidation(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	err = cfg.LLM().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestInvalidValues(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit path must exist")

	t.Setenv("ABABA_QUIZ_ANSWER_POLICY", "sometimes")
	cfg, err := Load("")
	require.NoError(t, err)
	_, err = cfg.QuizConfig()
	assert.Error(t, err)

	cfg.Database.Driver = store.DriverPostgres
	cfg.Database.DSN = ""
	_, err = cfg.StoreOptions()
	assert.Error(t, err)
}

func TestLogPath(t *testing.T) {
	clearEnv(t)
	cfg := &Config{}
	p, err := cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "ababa.log", filepath.Base(p))

	cfg.Log.Path = "-"
	p, err = cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "-", p)
}
