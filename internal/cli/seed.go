package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/seed"
	"github.com/TheBadshahKid/unolo-field-force-tracker/pkg/database"
)

type seedOptions struct {
	reset    bool
	password string
	cost     int
}

// NewSeedCommand 写入演示数据（1 名经理、3 名员工、5 个客户）
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo team, clients and check-ins",
		Long: `Load the demo fixtures into the database image.

Migrations are applied first. Without --reset the command refuses to
touch an image that already has users.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.reset, "reset", false, "delete existing rows before seeding")
	cmd.Flags().StringVar(&opts.password, "password", seed.DefaultPassword, "password for every seeded user")
	cmd.Flags().IntVar(&opts.cost, "bcrypt-cost", bcrypt.DefaultCost, "bcrypt cost for the seeded password")
	_ = cmd.Flags().MarkHidden("bcrypt-cost")

	return cmd
}

func runSeed(cmd *cobra.Command, rootOpts *RootOptions, opts *seedOptions) error {
	rt, err := rootOpts.open()
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	ctx := cmd.Context()
	if err := database.RunMigrations(ctx, rt.gw, rt.logger); err != nil {
		return err
	}

	hash, err := seed.HashPassword(opts.password, opts.cost)
	if err != nil {
		return err
	}

	fixtures := seed.Default(hash)
	if err := seed.Run(ctx, rt.gw, fixtures, opts.reset, rt.logger); err != nil {
		if errors.Is(err, seed.ErrAlreadySeeded) {
			return fmt.Errorf("%w (use --reset to replace existing data)", err)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d clients, %d assignments, %d check-ins into %s\n",
		len(fixtures.Users), len(fixtures.Clients), len(fixtures.Assignments), len(fixtures.Checkins), rt.gw.Path())
	return nil
}
