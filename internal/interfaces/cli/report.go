package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krishnashakula/LeaseIQ/pkg/client"
)

func newReportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "report <job-id>",
		Short: "Fetch a stored analysis report from the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := client.New(serverURL).GetReport(cmd.Context(), args[0])
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
}
