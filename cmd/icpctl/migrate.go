package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ignashub/ictperfect-tool2/internal/database"
)

func newMigrateCmd() *cobra.Command {
	var databaseURL string

	resolveURL := func() (string, error) {
		if databaseURL != "" {
			return databaseURL, nil
		}
		if url := os.Getenv("DATABASE_URL"); url != "" {
			return url, nil
		}
		return "", fmt.Errorf("database URL is required (set DATABASE_URL or use --db-url)")
	}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the workspace database schema",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "db-url", "", "Database URL (overrides DATABASE_URL)")

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, err := resolveURL()
			if err != nil {
				return err
			}
			if err := database.RunMigrations(url); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Revert migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, err := resolveURL()
			if err != nil {
				return err
			}
			if err := database.RollbackMigrations(url, steps); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reverted %d migration(s)\n", steps)
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to revert")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, err := resolveURL()
			if err != nil {
				return err
			}
			v, dirty, err := database.MigrationVersion(url)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", v, dirty)
			return nil
		},
	}

	cmd.AddCommand(up, down, version)
	return cmd
}
