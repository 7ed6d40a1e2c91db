package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/ababa/internal/quiz"
	"github.com/abhisek/ababa/internal/tutor"
)

var explainCmd = &cobra.Command{
	Use:   "explain <quizID> <position>",
	Short: "Ask the AI tutor to explain a question",
	Long: `Stream the tutor's explanation of one question to the terminal.

Position is 1-based. Each --follow-up is sent after the previous reply has
finished, in order. A failed reply is retried up to --retries times.`,
	Args: cobra.ExactArgs(2),
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().StringArray("follow-up", nil, "Follow-up message (repeatable)")
	explainCmd.Flags().Int("retries", 0, "Manual retries after a failed reply")
	explainCmd.Flags().Bool("transcript", false, "Print the full conversation at the end")
}

func runExplain(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	quizID, err := parseID("quiz", args[0])
	if err != nil {
		return err
	}
	position, err := strconv.Atoi(args[1])
	if err != nil || position < 1 {
		return fmt.Errorf("invalid position %q: must be a positive number", args[1])
	}
	followUps, _ := cmd.Flags().GetStringArray("follow-up")
	retries, _ := cmd.Flags().GetInt("retries")
	transcript, _ := cmd.Flags().GetBool("transcript")

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

	q, err := st.ContentRepo().Quiz(ctx, quizID)
	if err != nil {
		return fmt.Errorf("load quiz: %w", err)
	}

	dispatcher, ctrl, err := newTutor(ctx, cfg, st, log)
	if err != nil {
		return err
	}
	defer dispatcher.Close()

	if err := ctrl.LoadQuiz(q); err != nil {
		return err
	}
	if _, err := ctrl.OpenExplanationFor(position - 1); err != nil {
		if errors.Is(err, quiz.ErrOutOfRange) {
			return fmt.Errorf("quiz has %d questions, no question %d", q.Len(), position)
		}
		return err
	}
	defer ctrl.CloseExplanation()

	question, _ := ctrl.CurrentQuestion()
	fmt.Printf("Q%d. %s\n\n", position, question.Text)

	host := &explainHost{ctrl: ctrl, events: dispatcher.Events(), out: os.Stdout, log: log, retries: retries}
	if _, err := ctrl.StartExplanation(); err != nil {
		return err
	}
	if err := host.await(ctx); err != nil {
		return err
	}

	for _, text := range followUps {
		fmt.Printf("\nYou: %s\n\n", text)
		if err := ctrl.SendFollowUp(text); err != nil {
			return fmt.Errorf("send follow-up: %w", err)
		}
		if err := host.await(ctx); err != nil {
			return err
		}
	}

	if transcript {
		snap, _ := ctrl.Conversation()
		printTranscript(os.Stdout, snap.Turns)
	}
	return nil
}

// explainHost is the event loop for a terminal conversation. It plays the
// role the TUI listener plays in the app.
type explainHost struct {
	ctrl    *quiz.Controller
	events  <-chan tutor.Event
	out     io.Writer
	log     *zap.Logger
	retries int
}

// await pumps events into the controller until the conversation settles,
// streaming chunks to out. A failure is retried while retries remain.
func (h *explainHost) await(ctx context.Context) error {
	fmt.Fprint(h.out, "Tutor: ")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-h.events:
			if !ok {
				return errors.New("tutor event stream closed")
			}
			if !h.ctrl.Deliver(ev) {
				continue
			}
			if ev.Kind == tutor.EventChunk {
				fmt.Fprint(h.out, ev.Text)
			}

			snap, _ := h.ctrl.Conversation()
			switch snap.State {
			case tutor.Ready:
				fmt.Fprintln(h.out)
				return nil
			case tutor.Failed:
				fmt.Fprintln(h.out)
				if h.retries == 0 {
					return fmt.Errorf("explanation failed: %w", snap.Err)
				}
				h.retries--
				h.log.Info("retrying explanation", zap.Error(snap.Err), zap.Int("retries_left", h.retries))
				fmt.Fprintf(h.out, "(failed: %v, retrying)\n", snap.Err)
				if err := h.ctrl.RetryExplanation(); err != nil {
					return fmt.Errorf("retry: %w", err)
				}
				fmt.Fprint(h.out, "Tutor: ")
			}
		}
	}
}

func printTranscript(w io.Writer, turns []tutor.Turn) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for _, t := range turns {
		label := "Tutor"
		if t.Role == tutor.RoleUser {
			label = "You"
		}
		fmt.Fprintf(w, "%s: %s\n\n", label, strings.TrimSpace(t.Text))
	}
}
