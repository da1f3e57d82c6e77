package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TheBadshahKid/unolo-field-force-tracker/config"
	"github.com/TheBadshahKid/unolo-field-force-tracker/pkg/database"
	applogger "github.com/TheBadshahKid/unolo-field-force-tracker/pkg/logger"
)

// RootOptions 全局参数
type RootOptions struct {
	ConfigPath string
	DBPath     string // 非空时覆盖 db.path
	Verbose    bool
}

// NewRootCommand 创建 unoloctl 根命令
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "unoloctl",
		Short: "Unolo field force tracker maintenance tool",
		Long:  "Maintenance commands for the attendance database image: schema migrations, demo fixtures and daily reports.",
		// main 负责输出错误
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default ./config/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "database image path, overrides db.path")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))

	return cmd
}

// cliEnv 子命令共用的依赖
type cliEnv struct {
	gw     *database.Gateway
	logger *zap.Logger
}

func (o *RootOptions) open() (*cliEnv, error) {
	cfg, err := config.Read(o.ConfigPath)
	if err != nil {
		return nil, err
	}
	if o.DBPath != "" {
		cfg.Database.Path = o.DBPath
	}
	if o.Verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, err
	}

	gw, err := database.NewGateway(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("初始化持久化网关失败: %w", err)
	}

	return &cliEnv{gw: gw, logger: logger}, nil
}
