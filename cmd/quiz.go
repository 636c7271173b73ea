package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edututor/edututor/internal/quizgen"
	"github.com/edututor/edututor/internal/scoring"
	"github.com/edututor/edututor/internal/session"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a quiz in the terminal without the full-screen UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		subject, _ := cmd.Flags().GetString("subject")
		if subject == "" {
			subject = e.cfg.Quiz.DefaultSubject
		}
		if !quizgen.IsSubject(subject) {
			return fmt.Errorf("unknown subject %q (run `edututor subjects` for the list)", subject)
		}
		level, _ := cmd.Flags().GetString("difficulty")
		if level == "" {
			level = e.cfg.Quiz.DefaultDifficulty
		}
		d, err := quizgen.ParseDifficulty(level)
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Generating your personalized quiz...")
		q, err := e.quizzes.Generate(ctxOf(cmd), quizgen.Request{Subject: subject, Difficulty: d, Count: count})
		if err != nil {
			return fmt.Errorf("generate quiz: %w", err)
		}

		sess := session.NewManager(e.store)
		sess.StartQuiz(q)
		if err := askAll(sess, q, cmd.InOrStdin(), out); err != nil {
			return err
		}

		r, err := sess.SubmitQuiz(ctxOf(cmd))
		if err != nil {
			return err
		}
		printResult(out, r)
		return nil
	},
}

// askAll prompts for each question until a valid letter is given.
func askAll(sess *session.Manager, q *quizgen.Quiz, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "\n%s · %s · %d questions · about %d minutes\n",
		q.Subject, q.Difficulty, len(q.Questions), quizgen.EstimatedMinutes(len(q.Questions)))
	if q.Source == quizgen.SourceFallback {
		fmt.Fprintln(out, "(practice questions from the built-in bank)")
	}

	sc := bufio.NewScanner(in)
	for i, question := range q.Questions {
		fmt.Fprintf(out, "\nQuestion %d/%d", i+1, len(q.Questions))
		if question.Topic != "" {
			fmt.Fprintf(out, " [%s]", question.Topic)
		}
		fmt.Fprintf(out, "\n%s\n", question.Text)
		for _, l := range quizgen.Letters {
			fmt.Fprintf(out, "  %s) %s\n", l, question.Options[l])
		}

		for {
			fmt.Fprint(out, "Your answer (A-D): ")
			if !sc.Scan() {
				if err := sc.Err(); err != nil {
					return fmt.Errorf("read answer: %w", err)
				}
				return errors.New("input ended before the quiz was finished")
			}
			letter, ok := quizgen.ParseLetter(sc.Text())
			if !ok {
				fmt.Fprintln(out, "Please enter A, B, C or D.")
				continue
			}
			if err := sess.Answer(question.ID, letter); err != nil {
				return err
			}
			break
		}
	}
	return nil
}

func printResult(out io.Writer, r *scoring.Result) {
	sep := strings.Repeat("─", 60)
	fmt.Fprintln(out)
	fmt.Fprintln(out, sep)
	fmt.Fprintf(out, "Score: %.1f%% (%d/%d correct) · %s\n", r.ScorePercentage, r.CorrectAnswers, r.TotalQuestions, r.Level)
	fmt.Fprintln(out, r.Feedback)
	fmt.Fprintln(out, sep)

	for i, d := range r.Details {
		mark := "✓"
		if !d.Correct {
			mark = "✗"
		}
		fmt.Fprintf(out, "%s %d. %s\n", mark, i+1, d.Question)
		if !d.Correct {
			fmt.Fprintf(out, "   Your answer: %s · Correct answer: %s\n", d.UserAnswer, d.CorrectAnswer)
		}
		if d.Explanation != "" {
			fmt.Fprintf(out, "   %s\n", d.Explanation)
		}
	}
}

func init() {
	quizCmd.Flags().StringP("subject", "s", "", "Subject (see `edututor subjects`)")
	quizCmd.Flags().StringP("difficulty", "d", "", "Easy, Medium or Hard (Beginner, Intermediate, Advanced also accepted)")
	quizCmd.Flags().IntP("count", "n", 0, "Number of questions (3-10)")
}
