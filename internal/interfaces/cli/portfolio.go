package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krishnashakula/LeaseIQ/pkg/client"
)

func newPortfolioCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio <job-id>...",
		Short: "Roll up stored reports into portfolio metrics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := client.New(serverURL).AnalyzePortfolio(cmd.Context(), args)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
