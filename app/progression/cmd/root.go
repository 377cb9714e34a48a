package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lk2023060901/xdooria-progression/pkg/app"
	"github.com/lk2023060901/xdooria-progression/pkg/logger"
	"github.com/spf13/cobra"
)

// rootOptions 全局参数与加载后的运行环境
type rootOptions struct {
	metricsOut string
	output     string
	actor      int64

	cfg        Config
	configPath string
	logger     logger.Logger
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:   app.AppName,
		Short: "Operate character progression: points ledger, leveling, equipment and stats",
		Long: `progressionctl drives the character progression core against PostgreSQL.

Every mutating command runs under the per-character single-writer lock and
commits its attribute, balance and ledger changes in one transaction.

Examples:
  progressionctl migrate
  progressionctl create --account 42 --name Kael --race HUMAN
  progressionctl allocate 1234 STR 5
  progressionctl gain-exp 1234 250 --reason "boss kill"
  progressionctl equip 1234 WEAPON --item-file items.yaml --item 1001
  progressionctl summary 1234`,
		SilenceUsage:      true,
		PersistentPreRunE: o.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if o.logger != nil {
				_ = o.logger.Sync()
			}
			return nil
		},
	}

	fs := cmd.PersistentFlags()
	app.RegisterFlags(fs)
	fs.StringVar(&o.metricsOut, "metrics-out", "", "write metrics in Prometheus text format to this file after the command")
	fs.StringVarP(&o.output, "output", "o", "yaml", "output format: yaml or json")
	fs.Int64Var(&o.actor, "actor", 0, "operator id recorded on ledger entries (omit for system)")

	cmd.AddCommand(
		newMigrateCmd(o),
		newCreateCmd(o),
		newShowCmd(o),
		newRetireCmd(o),
		newAllocateCmd(o),
		newCreditCmd(o),
		newSpendCmd(o),
		newHistoryCmd(o),
		newSummaryCmd(o),
		newAuditCmd(o),
		newGainExpCmd(o),
		newProgressCmd(o),
		newExpTableCmd(o),
		newSetLevelCmd(o),
		newResetExpCmd(o),
		newEquipCmd(o),
		newUnequipCmd(o),
		newBonusCmd(o),
		newStatsCmd(o),
		newTransformationCmd(o),
		newDemoCmd(o),
		newVersionCmd(),
	)
	return cmd
}

// setup 加载配置并初始化日志
func (o *rootOptions) setup(cmd *cobra.Command, _ []string) error {
	if o.output != "yaml" && o.output != "json" {
		return fmt.Errorf("unsupported output format %q", o.output)
	}

	path, err := app.LoadConfig(cmd.Flags(), &o.cfg, configDefaults)
	if err != nil {
		return err
	}
	o.configPath = path

	l, err := logger.New(&o.cfg.Log, logger.WithHooks(logger.RedactHook("password", "dsn")))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	o.logger = l.WithFields("command", cmd.Name())
	o.logger.Debug("config loaded", "path", path)
	return nil
}

// context 在命令上下文中附加操作者
func (o *rootOptions) context(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if o.actor > 0 {
		ctx = logger.WithActor(ctx, o.actor)
	}
	return ctx
}

// runFunc 子命令主体
type runFunc func(ctx context.Context, a *App, args []string) error

// withApp 组装 PostgreSQL 后端的应用并执行 fn
func (o *rootOptions) withApp(fn runFunc) func(*cobra.Command, []string) error {
	return o.with(InitPostgresApp, fn)
}

// withMemoryApp 组装进程内存储的应用并执行 fn
func (o *rootOptions) withMemoryApp(fn runFunc) func(*cobra.Command, []string) error {
	return o.with(func(_ context.Context, cfg *Config, l logger.Logger) (*App, func(), error) {
		return InitMemoryApp(cfg, l)
	}, fn)
}

type injector func(ctx context.Context, cfg *Config, l logger.Logger) (*App, func(), error)

func (o *rootOptions) with(inject injector, fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := o.context(cmd)

		a, cleanup, err := inject(ctx, &o.cfg, o.logger)
		if err != nil {
			o.logger.Error("failed to initialize application", "error", err)
			return err
		}
		defer cleanup()

		a.out = cmd.OutOrStdout()
		a.format = o.output

		runErr := fn(ctx, a, args)
		if err := o.dumpMetrics(a); err != nil {
			o.logger.Warn("failed to write metrics", "path", o.metricsOut, "error", err)
		}
		return runErr
	}
}

func (o *rootOptions) dumpMetrics(a *App) error {
	if o.metricsOut == "" {
		return nil
	}
	f, err := os.Create(o.metricsOut)
	if err != nil {
		return err
	}
	defer f.Close()
	return a.prom.WriteText(f)
}
