package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reanalyzeForce bool

var reanalyzeCmd = &cobra.Command{
	Use:   "reanalyze <analysis-id>",
	Short: "Re-run matching for an analysis",
	Long: `Reanalyze re-runs entity extraction and matching for a stored analysis
against the current job pool. Runs within the cooldown window are refused
unless --force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runReanalyze,
}

func init() {
	rootCmd.AddCommand(reanalyzeCmd)

	reanalyzeCmd.Flags().BoolVar(&reanalyzeForce, "force", false, "Bypass the reanalysis cooldown")
}

func runReanalyze(cmd *cobra.Command, args []string) error {
	config, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	id, err := validateAndParseID(args[0])
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	analysis, err := client.ReanalyzeAnalysis(id, reanalyzeForce)
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	if !config.Quiet {
		formatter.PrintSuccess(fmt.Sprintf("Analysis %d reprocessed", id))
	}

	return formatter.PrintAnalysis(analysis)
}
