// Package config loads application settings from an optional YAML file,
// a .env file and ABABA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/ababa/internal/identity"
	"github.com/abhisek/ababa/internal/llm"
	"github.com/abhisek/ababa/internal/quiz"
	"github.com/abhisek/ababa/internal/store"
	"github.com/abhisek/ababa/internal/tutor"
)

// EnvProduction selects the production logger.
const EnvProduction = "production"

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env         string   `mapstructure:"env"`      // production or development
	Database    Database `mapstructure:"database"` // database configuration section
	LLMSettings LLM      `mapstructure:"llm"`
	User        User     `mapstructure:"user"`
	Log         Log      `mapstructure:"log"`
	Quiz        Quiz     `mapstructure:"quiz"`
}

// Database contains database-related configuration parameters.
type Database struct {
	Driver          string        `mapstructure:"driver"`            // sqlite or postgres
	DSN             string        `mapstructure:"dsn"`               // file path for sqlite, URL for postgres
	MaxConnections  int32         `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// LLM selects the provider and tunes explanation requests.
type LLM struct {
	Provider    string        `mapstructure:"provider"` // empty picks the first provider with a key
	Model       string        `mapstructure:"model"`    // overrides the selected provider's model
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`

	Anthropic  ProviderKeys `mapstructure:"anthropic"`
	OpenAI     ProviderKeys `mapstructure:"openai"`
	Gemini     ProviderKeys `mapstructure:"gemini"`
	OpenRouter ProviderKeys `mapstructure:"openrouter"`
}

// ProviderKeys holds credentials and overrides for one provider.
type ProviderKeys struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// User describes the learner.
type User struct {
	Name   string `mapstructure:"name"`
	Locale string `mapstructure:"locale"`
}

// Log configures the zap logger.
type Log struct {
	Path  string `mapstructure:"path"` // "-" writes to stderr
	Level string `mapstructure:"level"`
}

// Quiz holds quiz controller settings.
type Quiz struct {
	AnswerPolicy string `mapstructure:"answer_policy"` // overwrite or reject
}

// Load reads .env, the optional config file and the environment. An empty
// path searches for ababa.yaml in the working directory and in
// $XDG_CONFIG_HOME/ababa.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("ababa")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "ababa"))
		}
	}

	setDefaults(v)

	v.SetEnvPrefix("ABABA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional variable names work alongside the ABABA_* ones.
	_ = v.BindEnv("llm.gemini.api_key", "ABABA_LLM_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("llm.openai.api_key", "ABABA_LLM_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("llm.anthropic.api_key", "ABABA_LLM_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("llm.openrouter.api_key", "ABABA_LLM_OPENROUTER_API_KEY", "OPENROUTER_API_KEY")
	_ = v.BindEnv("database.dsn", "ABABA_DATABASE_DSN", "DATABASE_URL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	tc := tutor.DefaultConfig()

	v.SetDefault("env", EnvProduction)

	v.SetDefault("database.driver", store.DriverSQLite)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30m")

	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.timeout", tc.Timeout)
	v.SetDefault("llm.max_tokens", tc.MaxTokens)
	v.SetDefault("llm.temperature", tc.Temperature)
	for _, p := range []string{"anthropic", "openai", "gemini", "openrouter"} {
		v.SetDefault("llm."+p+".api_key", "")
		v.SetDefault("llm."+p+".model", "")
		v.SetDefault("llm."+p+".base_url", "")
	}

	v.SetDefault("user.name", "")
	v.SetDefault("user.locale", "")

	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")

	v.SetDefault("quiz.answer_policy", "overwrite")
}

// LLM converts the llm section into a provider config. With no provider
// set, the first provider holding a key wins; failing that the
// conventional environment variables are probed.
func (c *Config) LLM() llm.Config {
	s := c.LLMSettings
	cfg := llm.DefaultConfig()

	apply := func(model, baseURL *string, keys ProviderKeys) {
		if keys.Model != "" {
			*model = keys.Model
		}
		if baseURL != nil && keys.BaseURL != "" {
			*baseURL = keys.BaseURL
		}
	}
	cfg.Anthropic.APIKey = s.Anthropic.APIKey
	apply(&cfg.Anthropic.Model, &cfg.Anthropic.BaseURL, s.Anthropic)
	cfg.OpenAI.APIKey = s.OpenAI.APIKey
	apply(&cfg.OpenAI.Model, &cfg.OpenAI.BaseURL, s.OpenAI)
	cfg.Gemini.APIKey = s.Gemini.APIKey
	apply(&cfg.Gemini.Model, &cfg.Gemini.BaseURL, s.Gemini)
	cfg.OpenRouter.APIKey = s.OpenRouter.APIKey
	apply(&cfg.OpenRouter.Model, &cfg.OpenRouter.BaseURL, s.OpenRouter)

	cfg.Provider = s.Provider
	if cfg.Provider == "" {
		switch {
		case s.Gemini.APIKey != "":
			cfg.Provider = "gemini"
		case s.OpenAI.APIKey != "":
			cfg.Provider = "openai"
		case s.Anthropic.APIKey != "":
			cfg.Provider = "anthropic"
		case s.OpenRouter.APIKey != "":
			cfg.Provider = "openrouter"
		default:
			if discovered, ok := llm.DiscoverConfig(); ok {
				cfg = discovered
			} else {
				cfg.Provider = llm.DefaultConfig().Provider
			}
		}
	}

	if s.Model != "" {
		switch cfg.Provider {
		case "anthropic":
			cfg.Anthropic.Model = s.Model
		case "openai":
			cfg.OpenAI.Model = s.Model
		case "gemini":
			cfg.Gemini.Model = s.Model
		case "openrouter":
			cfg.OpenRouter.Model = s.Model
		}
	}
	if s.Timeout > 0 {
		cfg.Timeout = s.Timeout
	}
	return cfg
}

// Tutor returns the explanation request settings.
func (c *Config) Tutor() tutor.Config {
	tc := tutor.DefaultConfig()
	if c.LLMSettings.Timeout > 0 {
		tc.Timeout = c.LLMSettings.Timeout
	}
	if c.LLMSettings.MaxTokens > 0 {
		tc.MaxTokens = c.LLMSettings.MaxTokens
	}
	if c.LLMSettings.Temperature > 0 {
		tc.Temperature = c.LLMSettings.Temperature
	}
	return tc
}

// QuizConfig returns the quiz controller settings.
func (c *Config) QuizConfig() (quiz.Config, error) {
	policy, err := quiz.ParseAnswerPolicy(c.Quiz.AnswerPolicy)
	if err != nil {
		return quiz.Config{}, fmt.Errorf("quiz.answer_policy: %w", err)
	}
	return quiz.Config{AnswerPolicy: policy}, nil
}

// Identity returns the learner identity, filling gaps from the OS.
func (c *Config) Identity() identity.Provider {
	return identity.NewStatic(c.User.Name, c.User.Locale)
}

// StoreOptions returns the database settings. An empty sqlite DSN resolves
// to the default data path.
func (c *Config) StoreOptions() (store.Options, error) {
	opts := store.Options{
		Driver:          c.Database.Driver,
		DSN:             c.Database.DSN,
		MaxConns:        c.Database.MaxConnections,
		MaxConnLifetime: c.Database.MaxConnLifetime,
	}
	switch opts.Driver {
	case "", store.DriverSQLite:
		opts.Driver = store.DriverSQLite
		if opts.DSN == "" {
			p, err := store.DefaultDBPath()
			if err != nil {
				return store.Options{}, fmt.Errorf("resolve DB path: %w", err)
			}
			opts.DSN = p
		}
	case store.DriverPostgres:
		if opts.DSN == "" {
			return store.Options{}, errors.New("database.dsn (or DATABASE_URL) is required for postgres")
		}
	default:
		return store.Options{}, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
	return opts, nil
}

// LogPath resolves log.path. The default sits next to the database in the
// XDG data directory.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(dbPath), "ababa.log"), nil
}
