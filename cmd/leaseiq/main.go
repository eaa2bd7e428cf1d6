// Command leaseiq is the command line interface.
package main

import (
	"os"

	"github.com/krishnashakula/LeaseIQ/internal/interfaces/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
