package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/ababa/internal/app"
	"github.com/abhisek/ababa/internal/config"
	"github.com/abhisek/ababa/internal/llm"
	"github.com/abhisek/ababa/internal/quiz"
	"github.com/abhisek/ababa/internal/store"
	"github.com/abhisek/ababa/internal/tutor"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	st, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	dispatcher, ctrl, err := newTutor(ctx, cfg, st, log)
	if err != nil {
		return err
	}
	defer dispatcher.Close()

	log.Info("starting TUI", zap.String("driver", st.Dialect()))
	return app.Run(app.Options{
		Catalogue:  st.ContentRepo(),
		Answers:    st.EventRepo(),
		History:    st.EventRepo(),
		Controller: ctrl,
		Events:     dispatcher.Events(),
		User:       cfg.Identity(),
		Logger:     log,
	})
}

// newTutor wires provider, transport, dispatcher and controller. A
// provider that cannot be built falls back to the offline mock so the
// quiz itself stays usable.
func newTutor(ctx context.Context, cfg *config.Config, st *store.Store, log *zap.Logger) (*tutor.AsyncDispatcher, *quiz.Controller, error) {
	quizCfg, err := cfg.QuizConfig()
	if err != nil {
		return nil, nil, err
	}

	provider, err := newProvider(ctx, cfg, st, log)
	if err != nil {
		return nil, nil, err
	}

	tutorCfg := cfg.Tutor()
	dispatcher := tutor.NewAsyncDispatcher(tutor.NewLLMTransport(provider, tutorCfg), tutorCfg, log)
	ctrl := quiz.NewController(dispatcher, cfg.Identity(), quizCfg, log)
	return dispatcher, ctrl, nil
}

func newProvider(ctx context.Context, cfg *config.Config, st *store.Store, log *zap.Logger) (llm.Provider, error) {
	llmCfg := cfg.LLM()
	provider, err := llm.NewProvider(ctx, llmCfg, st.EventRepo(), log)
	if err == nil {
		return provider, nil
	}

	fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
	fmt.Fprintln(os.Stderr, "The AI tutor will answer in offline mode.")
	log.Warn("falling back to offline provider", zap.String("provider", llmCfg.Provider), zap.Error(err))

	llmCfg.Provider = llm.ProviderMock
	return llm.NewProvider(ctx, llmCfg, st.EventRepo(), log)
}
