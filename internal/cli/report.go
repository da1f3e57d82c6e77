package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/repository"
	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/service"
)

// NewReportCommand 报表命令组
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Produce manager reports",
	}
	cmd.AddCommand(newDailyReportCommand(rootOpts))
	return cmd
}

type dailyReportOptions struct {
	managerID  int64
	date       string
	employeeID string
}

func newDailyReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &dailyReportOptions{}

	cmd := &cobra.Command{
		Use:          "daily",
		Short:        "Print a manager's daily team summary as JSON",
		Example:      "  unoloctl report daily --manager 1 --date 2024-01-15 --employee 2",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDailyReport(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().Int64Var(&opts.managerID, "manager", 0, "manager user id")
	cmd.Flags().StringVar(&opts.date, "date", "", "day to summarise (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.employeeID, "employee", "", "restrict to one employee id")
	_ = cmd.MarkFlagRequired("manager")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func runDailyReport(cmd *cobra.Command, rootOpts *RootOptions, opts *dailyReportOptions) error {
	// 参数先于任何存储访问校验
	if err := service.ValidateDate(opts.date); err != nil {
		return err
	}
	employeeID, err := service.ParseEmployeeID(opts.employeeID)
	if err != nil {
		return err
	}

	rt, err := rootOpts.open()
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	reports := service.NewReportService(repository.NewRepository(rt.gw), rt.logger)
	summary, err := reports.DailySummary(cmd.Context(), opts.managerID, opts.date, employeeID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
