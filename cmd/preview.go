package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/academy/internal/gateway"
	"github.com/abhisek/academy/internal/lessonroom"
	"github.com/abhisek/academy/internal/llm"
	"github.com/abhisek/academy/internal/ui/components"
)

var previewCmd = &cobra.Command{
	Use:   "preview <lesson-id>",
	Short: "Take a generated quiz for a lesson in the terminal",
	Long: `Generate the quiz for a lesson and answer it on stdin.

Nothing is recorded as progress. Useful for checking quiz quality for a
provider or model.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	cat, err := e.loadCatalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	lesson, _, ok := cat.Lookup(args[0])
	if !ok {
		return fmt.Errorf("lesson %q not found", args[0])
	}

	ctx := llm.WithLesson(e.ctx(cmd.Context()), lesson.ID)
	gw := e.newGateway(ctx)

	fmt.Printf("Lesson: %s (%s)\n", lesson.Title, lesson.Kind.Label())
	fmt.Println("Generating questions...")
	fmt.Println()

	sess := lessonroom.NewQuizSession(gw.GenerateQuiz(ctx, lesson.Title))
	return takeQuiz(sess, bufio.NewScanner(os.Stdin))
}

// takeQuiz runs sess to the end, reading one option number per question.
func takeQuiz(sess *lessonroom.QuizSession, in *bufio.Scanner) error {
	for !sess.Submitted() {
		q, ok := sess.Question()
		if !ok {
			break
		}
		printQuestion(sess, q)

		for {
			fmt.Print("\nYour answer: ")
			if !in.Scan() {
				fmt.Println("\n(input closed)")
				return in.Err()
			}
			i, ok := components.OptionIndex(strings.TrimSpace(in.Text()))
			if ok && sess.Select(i) {
				break
			}
			fmt.Printf("Enter a number from 1 to %d.\n", len(q.Options))
		}

		chosen, _ := sess.Selected()
		if chosen == q.CorrectOptionIndex {
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %d) %s\n", q.CorrectOptionIndex+1, q.Options[q.CorrectOptionIndex])
		}
		fmt.Println()
		sess.Advance()
	}

	result := "not passed"
	if sess.Passed() {
		result = "passed"
	}
	fmt.Printf("── Summary: %d/%d correct, %d needed, %s ──\n",
		sess.Score(), sess.Total(), lessonroom.PassThreshold(sess.Total()), result)
	return nil
}

func printQuestion(sess *lessonroom.QuizSession, q gateway.Question) {
	fmt.Printf("── Question %d/%d ──\n", sess.Index()+1, sess.Total())
	fmt.Println(q.Question)
	for j, opt := range q.Options {
		fmt.Printf("  %d) %s\n", j+1, opt)
	}
}
