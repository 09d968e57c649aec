package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ghuser/simplemarket/migrations"
	"github.com/ghuser/simplemarket/pkg/migrator"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDatabase(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := migrator.Up(cmd.Context(), db.DB(), migrations.FS); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the state of every migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDatabase(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			lines, err := migrator.Status(cmd.Context(), db.DB(), migrations.FS)
			if err != nil {
				return err
			}
			for _, l := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
			return nil
		},
	})

	return cmd
}
