package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/ababa/internal/config"
	"github.com/abhisek/ababa/internal/logger"
	"github.com/abhisek/ababa/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "ababa",
	Short: "Terminal quiz tutor",
	Long:  "Ababa is a terminal quiz app for national exam practice, with an AI tutor that explains every question.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Database DSN: a SQLite file path or a postgres URL (overrides database.dsn)")
	rootCmd.PersistentFlags().String("driver", "", "Database driver: sqlite or postgres (overrides database.driver)")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default ./ababa.yaml)")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(gradesCmd)
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(quizzesCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(examCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config named by --config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the logger for cfg. Subcommands that print to the
// terminal still log to the file so their output stays clean.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	l, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return l, nil
}

// openStore opens the database using --db and --driver (highest
// priority), then the config file and environment, then the default XDG
// path.
func openStore(cmd *cobra.Command, cfg *config.Config) (*store.Store, error) {
	if d, _ := cmd.Flags().GetString("driver"); d != "" {
		cfg.Database.Driver = d
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Database.DSN = p
	}

	opts, err := cfg.StoreOptions()
	if err != nil {
		return nil, err
	}
	if opts.Driver == store.DriverSQLite {
		if err := store.EnsureDir(opts.DSN); err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
	}

	s, err := store.OpenWith(cmd.Context(), opts)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return s, nil
}

// withStore loads config, opens the store and runs fn. It is the common
// preamble of the catalogue subcommands.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, s *store.Store) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(cmd.Context(), s)
}
