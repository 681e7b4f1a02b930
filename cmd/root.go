package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/academy/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "academy",
	Short: "Terminal learning portal for a neural networks course",
	Long:  "Academy: work through a fixed video and article curriculum, unlock lessons by passing quizzes, and ask an AI tutor along the way.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
