package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/academy/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the curriculum",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List lessons in curriculum order",
	RunE: func(cmd *cobra.Command, args []string) error {
		kindVal, _ := cmd.Flags().GetString("kind")
		search, _ := cmd.Flags().GetString("search")

		kind, ok := catalog.ParseKindFilter(kindVal)
		if !ok {
			return fmt.Errorf("invalid kind %q: must be all, video or article", kindVal)
		}

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		cat, err := e.loadCatalog()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		entries := cat.Filter(kind, search)
		if len(entries) == 0 {
			fmt.Println("No lessons found matching your search.")
			return nil
		}

		fmt.Printf("%-3s  %-24s  %-7s  %-8s  %s\n", "#", "ID", "Kind", "Length", "Title")
		fmt.Println(strings.Repeat("─", 80))
		for _, en := range entries {
			l := en.Lesson
			length := l.Duration
			if length == "" {
				length = "-"
			}
			fmt.Printf("%-3d  %-24s  %-7s  %-8s  %s\n",
				en.Position+1, truncate(l.ID, 24), l.Kind.Label(), length, l.Title)
		}
		return nil
	},
}

func init() {
	catalogListCmd.Flags().StringP("kind", "k", "all", "Filter by kind: all, video, article")
	catalogListCmd.Flags().StringP("search", "s", "", "Case-insensitive match on title or tags")

	catalogCmd.AddCommand(catalogListCmd)
}
