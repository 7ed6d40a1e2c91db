package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/ababa/internal/content"
	"github.com/abhisek/ababa/internal/quizgen"
	"github.com/abhisek/ababa/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Author a new quiz with the LLM",
	Long: `Generate a multiple-choice quiz for a subject and print it.

With --save the quiz is stored under the subject, creating the grade and
subject when they do not exist yet. Questions already stored for the
subject are sent to the model so it does not repeat them.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("subject", "", "Subject name, e.g. Biology (required)")
	generateCmd.Flags().String("grade", "12", "Grade name")
	generateCmd.Flags().String("topic", "", "Optional focus topic")
	generateCmd.Flags().String("difficulty", string(content.DifficultyMedium), "Easy, Medium or Hard")
	generateCmd.Flags().Int("count", 0, "Number of questions (0 uses the default)")
	generateCmd.Flags().Bool("save", false, "Store the generated quiz")
	_ = generateCmd.MarkFlagRequired("subject")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	subject, _ := cmd.Flags().GetString("subject")
	grade, _ := cmd.Flags().GetString("grade")
	topic, _ := cmd.Flags().GetString("topic")
	diffVal, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")
	save, _ := cmd.Flags().GetBool("save")

	difficulty, err := parseDifficulty(diffVal)
	if err != nil {
		return err
	}

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

	repo := st.ContentRepo()
	var sub content.Subject
	var prior []string
	if save {
		sub, err = ensureSubject(ctx, repo, grade, subject)
		if err != nil {
			return err
		}
		prior, err = priorQuestions(ctx, repo, sub.ID)
		if err != nil {
			return err
		}
	}

	provider, err := newProvider(ctx, cfg, st, log)
	if err != nil {
		return err
	}
	gen := quizgen.New(provider, quizgen.DefaultConfig(), log)

	fmt.Printf("Generating %s quiz for %s (grade %s)...\n\n", difficulty, subject, grade)
	q, err := gen.Generate(ctx, quizgen.Input{
		Subject:        subject,
		Grade:          "Grade " + grade,
		Topic:          topic,
		Difficulty:     difficulty,
		Count:          count,
		PriorQuestions: prior,
	})
	if err != nil {
		return fmt.Errorf("generate quiz: %w", err)
	}

	printQuiz(q, true)

	if !save {
		return nil
	}
	saved, err := repo.SaveQuiz(ctx, sub.ID, q)
	if err != nil {
		return fmt.Errorf("save quiz: %w", err)
	}
	log.Info("generated quiz saved", zap.Stringer("quiz_id", saved.ID), zap.Int("questions", saved.Len()))
	fmt.Printf("\nSaved as %s\n", saved.ID)
	return nil
}

func parseDifficulty(s string) (content.Difficulty, error) {
	for _, d := range content.AllDifficulties {
		if strings.EqualFold(s, string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want Easy, Medium or Hard)", s)
}

func ensureSubject(ctx context.Context, repo *store.ContentRepo, gradeName, subjectName string) (content.Subject, error) {
	g, err := repo.CreateGrade(ctx, gradeName)
	if err != nil {
		return content.Subject{}, err
	}
	return repo.CreateSubject(ctx, content.Subject{Name: subjectName, GradeID: g.ID})
}

// priorQuestions collects the question texts already stored for a subject.
func priorQuestions(ctx context.Context, repo *store.ContentRepo, subjectID uuid.UUID) ([]string, error) {
	quizzes, err := repo.Quizzes(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	var out []string
	for _, qz := range quizzes {
		full, err := repo.Quiz(ctx, qz.ID)
		if err != nil {
			return nil, fmt.Errorf("load quiz %q: %w", qz.Title, err)
		}
		for _, q := range full.Questions {
			out = append(out, q.Text)
		}
	}
	return out, nil
}
