package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TheBadshahKid/unolo-field-force-tracker/pkg/database"
)

// NewMigrateCommand 对数据库镜像执行全部待执行迁移
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "migrate",
		Short:        "Apply pending schema migrations to the database image",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := rootOpts.open()
			if err != nil {
				return err
			}
			defer rt.logger.Sync()

			if err := database.RunMigrations(cmd.Context(), rt.gw, rt.logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied to %s\n", rt.gw.Path())
			return nil
		},
	}
}
