package main

import (
	"errors"
	"fmt"

	"trivia-api/internal/database"

	"github.com/spf13/cobra"
)

// openFunc connects to the configured database and returns its migrator.
type openFunc func() (database.Migrator, error)

func newRootCommand(open openFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "migrate",
		Args:          cobra.NoArgs,
		Short:         "Database migration commands",
		Long:          `Apply or roll back the trivia schema on the database selected by db.driver.`,
		SilenceUsage:  true,
	}

	cmd.AddCommand(
		newUpCommand(open),
		newDownCommand(open),
		newVersionCommand(open),
	)
	return cmd
}

func withMigrator(open openFunc, fn func(m database.Migrator) error) (err error) {
	m, err := open()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := m.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(m)
}

func newUpCommand(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Args:  cobra.NoArgs,
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(open, func(m database.Migrator) error {
				if err := m.Up(); err != nil {
					return fmt.Errorf("failed to apply migrations: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied successfully!")
				return nil
			})
		},
	}
}

func newDownCommand(open openFunc) *cobra.Command {
	var (
		steps int
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "down",
		Args:  cobra.NoArgs,
		Short: "Roll back migrations (the last one by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && steps <= 0 {
				return fmt.Errorf("--steps must be positive, got %d", steps)
			}
			return withMigrator(open, func(m database.Migrator) error {
				if all {
					if err := m.Down(0); err != nil {
						return fmt.Errorf("failed to roll back migrations: %w", err)
					}
					fmt.Fprintln(cmd.OutOrStdout(), "Successfully rolled back all migrations")
					return nil
				}
				if err := m.Down(steps); err != nil {
					return fmt.Errorf("failed to roll back migrations: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Successfully rolled back %d migration(s)\n", steps)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "number of migrations to roll back")
	cmd.Flags().BoolVar(&all, "all", false, "roll back every migration")
	return cmd
}

func newVersionCommand(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Args:  cobra.NoArgs,
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(open, func(m database.Migrator) error {
				version, dirty, err := m.Version()
				if errors.Is(err, database.ErrNoVersion) {
					fmt.Fprintln(cmd.OutOrStdout(), "No migrations applied")
					return nil
				}
				if err != nil {
					return fmt.Errorf("failed to read schema version: %w", err)
				}
				if dirty {
					fmt.Fprintf(cmd.OutOrStdout(), "Version %d (dirty)\n", version)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Version %d\n", version)
				return nil
			})
		},
	}
}
