package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/krishnashakula/LeaseIQ/internal/application/extraction"
	"github.com/krishnashakula/LeaseIQ/internal/domain/analysis"
	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/market"
)

func newAnalyzeCommand() *cobra.Command {
	var (
		jobID       string
		policy      string
		datasetPath string
	)

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a lease document locally and print the report",
		Long: `Reads a lease document from disk, extracts its fields and runs the full
analysis engine locally, without a server. The report is printed as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			var provider analysis.MarketDataProvider
			if datasetPath != "" {
				provider, err = market.NewFileProvider(datasetPath)
				if err != nil {
					return err
				}
			} else {
				provider = market.NewStaticProvider("us-metro")
			}

			fields, err := extraction.NewRegexExtractor().Extract(cmd.Context(), string(content))
			if err != nil {
				return err
			}

			engine := analysis.NewEngine(provider, analysis.WithCompliancePolicy(policy))
			report, err := engine.Analyze(analysis.AnalyzeRequest{JobID: jobID, Fields: fields})
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&jobID, "job-id", "", "job id to stamp on the report (random when empty)")
	cmd.Flags().StringVar(&policy, "policy", analysis.PolicyExclude,
		"compliance policy for rules with missing inputs (exclude|penalize)")
	cmd.Flags().StringVar(&datasetPath, "dataset", "", "path to a JSON market dataset")

	return cmd
}
