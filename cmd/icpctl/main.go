// Package main provides icpctl, an operator tool for tiering leads, deriving
// ICP profiles from lead files and managing the database schema.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "icpctl",
		Short:         "ICP lead scoring toolkit",
		Long:          "icpctl classifies leads into tiers, derives Ideal Customer Profiles from lead files, scores leads against a profile and runs database migrations.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newTierCmd(), newDeriveCmd(), newMatchCmd(), newMigrateCmd())
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
