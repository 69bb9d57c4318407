package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// migrator is the part of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Version() (uint, bool, error)
	Force(version int) error
	Close() (error, error)
}

type openFunc func() (migrator, error)

func newRootCmd(open openFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the cookbook database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newUpCmd(open), newDownCmd(open), newVersionCmd(open), newForceCmd(open))
	return root
}

// withMigrator opens a migrator, runs fn and closes it again.
func withMigrator(open openFunc, fn func(m migrator) error) error {
	m, err := open()
	if err != nil {
		return err
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			logrus.WithFields(logrus.Fields{"source": srcErr, "database": dbErr}).Warn("failed to close migrator")
		}
	}()
	return fn(m)
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logrus.Info("schema already up to date")
		return nil
	}
	return err
}

func newUpCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "up [N]",
		Short: "Apply all pending migrations, or the next N",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(open, func(m migrator) error {
				if len(args) == 0 {
					return ignoreNoChange(m.Up())
				}
				n, err := positive(args[0])
				if err != nil {
					return err
				}
				return ignoreNoChange(m.Steps(n))
			})
		},
	}
}

func newDownCmd(open openFunc) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "down [N]",
		Short: "Roll back the last migration, the last N, or all with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(open, func(m migrator) error {
				if all {
					return ignoreNoChange(m.Down())
				}
				n := 1
				if len(args) == 1 {
					var err error
					if n, err = positive(args[0]); err != nil {
						return err
					}
				}
				return ignoreNoChange(m.Steps(-n))
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "roll back every migration")
	return cmd
}

func newVersionCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(open, func(m migrator) error {
				version, dirty, err := m.Version()
				if errors.Is(err, migrate.ErrNilVersion) {
					fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
				return nil
			})
		},
	}
}

func newForceCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "force VERSION",
		Short: "Mark VERSION as applied without running it, clearing the dirty flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}
			return withMigrator(open, func(m migrator) error {
				return m.Force(version)
			})
		},
	}
}

func positive(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("expected a positive number of steps, got %q", arg)
	}
	return n, nil
}
