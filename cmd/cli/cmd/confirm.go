package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var confirmCmd = &cobra.Command{
	Use:   "confirm <analysis-id> <job-ref>",
	Short: "Confirm which job an analysis belongs to",
	Long: `Confirm records the job reference an invoice was finally allocated to.
Confirmed analyses are excluded from background reanalysis.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfirm,
}

var rejectCmd = &cobra.Command{
	Use:   "reject <analysis-id>",
	Short: "Clear a previous confirmation",
	Long:  `Reject clears the confirmed job reference so the analysis is re-matched again.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runReject,
}

func init() {
	rootCmd.AddCommand(confirmCmd)
	rootCmd.AddCommand(rejectCmd)
}

func runConfirm(cmd *cobra.Command, args []string) error {
	config, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	id, err := validateAndParseID(args[0])
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	jobRef, err := validateAndParseJobRef(args[1])
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	analysis, err := client.ConfirmAnalysis(id, jobRef)
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	if !config.Quiet {
		formatter.PrintSuccess(fmt.Sprintf("Analysis %d confirmed against job %d", id, jobRef))
	}

	return formatter.PrintAnalysis(analysis)
}

func runReject(cmd *cobra.Command, args []string) error {
	config, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	id, err := validateAndParseID(args[0])
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	if err := client.RejectAnalysis(id); err != nil {
		formatter.PrintError(err)
		return err
	}

	if !config.Quiet {
		formatter.PrintSuccess(fmt.Sprintf("Analysis %d confirmation cleared", id))
	}

	return nil
}
