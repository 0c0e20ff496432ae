package cmd

import (
	"github.com/spf13/cobra"
)

var listInteractive bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all analyses",
	Long:    `List all stored invoice analyses with their top match candidates.`,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVarP(&listInteractive, "interactive", "i", false, "Review analyses in an interactive table")
}

func runList(cmd *cobra.Command, args []string) error {
	config, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	analyses, err := client.GetAnalyses()
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	if listInteractive {
		return runReviewTable(analyses, client, config)
	}

	return formatter.PrintAnalyses(analyses)
}
