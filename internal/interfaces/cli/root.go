// Package cli implements the leaseiq command line tool.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/krishnashakula/LeaseIQ/internal/config"
)

var serverURL string

// NewRootCommand builds the leaseiq command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:     "leaseiq",
		Short:   "Lease document analysis toolkit",
		Long:    "leaseiq analyzes lease documents for risk, compliance, market position and revenue opportunities.",
		Version: config.Version,
	}

	root.PersistentFlags().StringVar(&serverURL, "server",
		"http://localhost:8080", "LeaseIQ API server base URL")

	root.AddCommand(newAnalyzeCommand())
	root.AddCommand(newReportCommand())
	root.AddCommand(newPortfolioCommand())

	return root
}
