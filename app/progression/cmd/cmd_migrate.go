package main

import (
	"fmt"

	"github.com/lk2023060901/xdooria-progression/app/progression/internal/dao"
	"github.com/lk2023060901/xdooria-progression/pkg/database/postgres"
	"github.com/spf13/cobra"
)

func newMigrateCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the progression tables if they do not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := o.context(cmd)

			db, err := postgres.New(&o.cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.ExecScript(ctx, dao.Schema); err != nil {
				o.logger.Error("failed to apply schema", "error", err)
				return err
			}
			o.logger.Info("schema applied")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
			return err
		},
	}
}
