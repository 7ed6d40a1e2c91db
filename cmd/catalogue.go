package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/ababa/internal/content"
	"github.com/abhisek/ababa/internal/seed"
	"github.com/abhisek/ababa/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the bundled grades, subjects and quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, s *store.Store) error {
			sum, err := seed.Load(ctx, s.ContentRepo())
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			fmt.Printf("Seeded %d grades, %d subjects, %d quizzes (%d new questions).\n",
				sum.Grades, sum.Subjects, sum.Quizzes, sum.Questions)
			return nil
		})
	},
}

var gradesCmd = &cobra.Command{
	Use:   "grades",
	Short: "List grades",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, s *store.Store) error {
			grades, err := s.ContentRepo().Grades(ctx)
			if err != nil {
				return fmt.Errorf("list grades: %w", err)
			}
			if len(grades) == 0 {
				fmt.Println("No grades found. Run `ababa seed` first.")
				return nil
			}
			fmt.Printf("%-36s  %s\n", "ID", "Grade")
			fmt.Println(strings.Repeat("─", 50))
			for _, g := range grades {
				fmt.Printf("%-36s  %s\n", g.ID, g.Name)
			}
			return nil
		})
	},
}

var subjectsCmd = &cobra.Command{
	Use:   "subjects <gradeID>",
	Short: "List the subjects of a grade",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gradeID, err := parseID("grade", args[0])
		if err != nil {
			return err
		}
		return withStore(cmd, func(ctx context.Context, s *store.Store) error {
			subjects, err := s.ContentRepo().Subjects(ctx, gradeID)
			if err != nil {
				return fmt.Errorf("list subjects: %w", err)
			}
			if len(subjects) == 0 {
				fmt.Println("No subjects found.")
				return nil
			}
			fmt.Printf("%-36s  %-14s  %8s  %s\n", "ID", "Subject", "Students", "Rating")
			fmt.Println(strings.Repeat("─", 72))
			for _, sub := range subjects {
				fmt.Printf("%-36s  %-14s  %8d  %s\n", sub.ID, sub.Name, sub.Students, sub.Rating)
			}
			return nil
		})
	},
}

var quizzesCmd = &cobra.Command{
	Use:   "quizzes <subjectID>",
	Short: "List the quizzes of a subject",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subjectID, err := parseID("subject", args[0])
		if err != nil {
			return err
		}
		return withStore(cmd, func(ctx context.Context, s *store.Store) error {
			quizzes, err := s.ContentRepo().Quizzes(ctx, subjectID)
			if err != nil {
				return fmt.Errorf("list quizzes: %w", err)
			}
			if len(quizzes) == 0 {
				fmt.Println("No quizzes found.")
				return nil
			}
			fmt.Printf("%-36s  %-32s  %-6s  %s\n", "ID", "Title", "Level", "Questions")
			fmt.Println(strings.Repeat("─", 90))
			for _, q := range quizzes {
				fmt.Printf("%-36s  %-32s  %-6s  %d\n", q.ID, truncate(q.Title, 32), q.Difficulty, q.QuestionsCount)
			}
			return nil
		})
	},
}

var quizCmd = &cobra.Command{
	Use:   "quiz <quizID>",
	Short: "Print a quiz with its questions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		quizID, err := parseID("quiz", args[0])
		if err != nil {
			return err
		}
		return showQuiz(cmd, func(ctx context.Context, r *store.ContentRepo) (*content.QuizWithQuestions, error) {
			return r.Quiz(ctx, quizID)
		})
	},
}

var feedCmd = &cobra.Command{
	Use:   "feed [subject]",
	Short: "Print a question feed for a subject slug (mathematics, biology, civics, english)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var slug string
		if len(args) == 1 {
			slug = args[0]
		}
		return showQuiz(cmd, func(ctx context.Context, r *store.ContentRepo) (*content.QuizWithQuestions, error) {
			return r.Feed(ctx, slug)
		})
	},
}

var examCmd = &cobra.Command{
	Use:   "exam <subject>",
	Short: "Print the national exam for a subject slug",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showQuiz(cmd, func(ctx context.Context, r *store.ContentRepo) (*content.QuizWithQuestions, error) {
			return r.NationalExam(ctx, args[0])
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{quizCmd, feedCmd, examCmd} {
		c.Flags().Bool("answers", false, "Mark the correct option and show explanations")
	}
}

func parseID(kind, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s ID %q: %w", kind, s, err)
	}
	return id, nil
}

func showQuiz(cmd *cobra.Command, load func(context.Context, *store.ContentRepo) (*content.QuizWithQuestions, error)) error {
	answers, _ := cmd.Flags().GetBool("answers")
	return withStore(cmd, func(ctx context.Context, s *store.Store) error {
		q, err := load(ctx, s.ContentRepo())
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("quiz not found")
		}
		if err != nil {
			return fmt.Errorf("load quiz: %w", err)
		}
		printQuiz(q, answers)
		return nil
	})
}

func printQuiz(q *content.QuizWithQuestions, answers bool) {
	fmt.Println(q.Title)
	meta := []string{string(q.Difficulty), fmt.Sprintf("%d questions", q.Len())}
	if q.SubjectName != "" {
		meta = append([]string{q.SubjectName}, meta...)
	}
	fmt.Println(strings.Join(meta, " · "))
	fmt.Println(strings.Repeat("─", 60))

	if q.Len() == 0 {
		fmt.Println("No questions found for this quiz.")
		return
	}
	for i, qu := range q.Questions {
		fmt.Printf("\n%d. %s\n", i+1, qu.Text)
		for j, opt := range qu.Options {
			mark := " "
			if answers && j == qu.CorrectIndex {
				mark = "✓"
			}
			fmt.Printf("   %s %c) %s\n", mark, 'A'+j, opt)
		}
		if answers && qu.HasExplanation() {
			fmt.Printf("   %s\n", qu.Explanation)
		}
	}
}
