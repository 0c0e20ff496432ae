package cmd

import (
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <analysis-id>",
	Short: "Get analysis details by ID",
	Long:  `Get the extracted entities and ranked match candidates for a stored analysis.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	_, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	id, err := validateAndParseID(args[0])
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	analysis, err := client.GetAnalysis(id)
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	return formatter.PrintAnalysis(analysis)
}
