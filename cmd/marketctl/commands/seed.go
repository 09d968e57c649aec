package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	categorySvcs "github.com/ghuser/simplemarket/services/category/application/services"
	"github.com/ghuser/simplemarket/services/category/infrastructure/persistence/postgres"
)

func seedCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-categories",
		Short: "Insert the default categories when none exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, log, err := openDatabase(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := categorySvcs.NewCategoryService(postgres.NewCategoryRepository(db), 0, log)
			n, err := svc.SeedDefaults(cmd.Context())
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "categories already present, nothing seeded")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d categories\n", n)
			return nil
		},
	}
}
