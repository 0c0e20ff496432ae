package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	cliapi "invoice-matching/internal/cli"
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze [file]",
	Aliases: []string{"a"},
	Short:   "Analyze OCR invoice text",
	Long: `Analyze submits OCR-extracted invoice text to the server, which runs
entity extraction and fuzzy matching against the booked jobs. The text is
read from the given file, or from stdin when no file (or "-") is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	config, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	text, err := readAnalyzeInput(args)
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	var spin *cliapi.ProgressSpinner
	if !config.Quiet {
		spin = cliapi.NewProgressSpinner("Analyzing invoice", config.NoColor)
		spin.Start()
	}

	analysis, err := client.CreateAnalysis(text)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	if !config.Quiet {
		if analysis.IsCreditNote {
			formatter.PrintInfo("Document looks like a credit note")
		}
		formatter.PrintSuccess(fmt.Sprintf("Analysis %d created", analysis.ID))
	}

	return formatter.PrintAnalysis(analysis)
}

// readAnalyzeInput reads invoice text from the file argument or stdin
func readAnalyzeInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}
