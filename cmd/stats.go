package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/ababa/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show answer accuracy per quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, s *store.Store) error {
			stats, err := s.EventRepo().AnswerStats(ctx)
			if err != nil {
				return fmt.Errorf("query answer stats: %w", err)
			}
			if len(stats) == 0 {
				fmt.Println("No answers recorded yet.")
				return nil
			}

			fmt.Printf("%-36s  %8s  %8s  %8s  %8s\n", "Quiz", "Sessions", "Answered", "Correct", "Accuracy")
			fmt.Println(strings.Repeat("─", 78))

			var answered, correct int
			for _, st := range stats {
				title := st.Title
				if title == "" {
					title = st.QuizID.String()
				}
				fmt.Printf("%-36s  %8d  %8d  %8d  %7.0f%%\n",
					truncate(title, 36), st.Sessions, st.Answered, st.Correct, st.Accuracy()*100)
				answered += st.Answered
				correct += st.Correct
			}

			total := store.QuizAnswerStats{Answered: answered, Correct: correct}
			fmt.Println(strings.Repeat("─", 78))
			fmt.Printf("%-36s  %8s  %8d  %8d  %7.0f%%\n", "TOTAL", "", answered, correct, total.Accuracy()*100)
			return nil
		})
	},
}
