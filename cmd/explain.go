package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/academy/internal/llm"
)

var explainCmd = &cobra.Command{
	Use:   "explain <lesson-id>",
	Short: "Explain why a lesson matters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		fmt.Println(lesson.Title)
		fmt.Println()
		fmt.Println(gw.ExplainLesson(ctx, lesson.Title, lesson.Description))
		return nil
	},
}
