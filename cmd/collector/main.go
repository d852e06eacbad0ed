package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/go-tangra/go-tangra-sysinfo/cmd/collector/assets"
	"github.com/go-tangra/go-tangra-sysinfo/internal/collector"
	"github.com/go-tangra/go-tangra-sysinfo/internal/config"
	"github.com/go-tangra/go-tangra-sysinfo/internal/convert"
	"github.com/go-tangra/go-tangra-sysinfo/internal/logging"
	"github.com/go-tangra/go-tangra-sysinfo/internal/server"
	"github.com/go-tangra/go-tangra-sysinfo/internal/store"
	"github.com/go-tangra/go-tangra-sysinfo/internal/winsvc"
)

var (
	version    = "dev"
	commitHash = "unknown"
	buildDate  = "unknown"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "sysinfo-collector",
	Short: "Sysinfo Collector - HTTP daemon that stores host inventory snapshots",
	Long: `Sysinfo Collector receives host inventory snapshots from sysinfo agents
over HTTP and stores them in a local SQLite database.

Run without a subcommand to start the daemon (equivalent to 'serve').`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP collector daemon",
	RunE:  runServe,
}

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect this host's inventory and store it directly",
	RunE:  runCollect,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sysinfo-collector %s (commit: %s, built: %s)\n", version, commitHash, buildDate)
	},
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Purge snapshots older than the specified number of days",
	RunE:  runPurge,
}

var purgeDays int

const serviceName = "SysinfoCollector"

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage Windows service installation",
}

var serviceInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install as a Windows service",
	RunE:  runServiceInstall,
}

var serviceUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Uninstall the Windows service",
	RunE:  runServiceUninstall,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./sysinfo.yaml)")
	rootCmd.PersistentFlags().String("http-listen", "", "HTTP listen address (default :9551)")
	rootCmd.PersistentFlags().String("database", "", "SQLite database path (default sysinfo.db)")
	rootCmd.PersistentFlags().String("api-secret", "", "secret for REST API clients (empty = no auth)")

	purgeCmd.Flags().IntVar(&purgeDays, "days", 90, "purge snapshots older than this many days")

	serviceCmd.AddCommand(serviceInstallCmd)
	serviceCmd.AddCommand(serviceUninstallCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(serviceCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if v, _ := cmd.Flags().GetString("http-listen"); v != "" {
		cfg.HTTPListen = v
	}
	if v, _ := cmd.Flags().GetString("database"); v != "" {
		cfg.DatabasePath = v
	}
	if v, _ := cmd.Flags().GetString("api-secret"); v != "" {
		cfg.ApiSecret = v
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *zap.Logger {
	return logging.New(logging.Options{Format: cfg.Log.Format, Level: cfg.Log.Level})
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Windows service mode logs to the event log.
	if winsvc.IsWindowsService() {
		opts := logging.Options{Format: "json", Level: cfg.Log.Level}
		if w, err := winsvc.EventLogWriter(serviceName); err == nil {
			opts.Output = w
		}
		logger := logging.New(opts)
		return winsvc.RunService(serviceName, logger, func(ctx context.Context) error {
			return server.Run(ctx, cfg, assets.OpenApiData, logger)
		})
	}

	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	// Interactive mode: shut down on SIGINT / SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, cfg, assets.OpenApiData, logger)
}

func runCollect(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	opts, err := cfg.CollectorOptions()
	if err != nil {
		return err
	}

	db, err := store.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collectors := collector.Collectors(collector.NewCommandExecutor(cfg.CommandTimeout), opts, logger.Named("collector"))
	inv, err := collector.Collect(ctx, collectors, collector.NewLogSink(logger.Named("inventory")))
	if err != nil {
		logger.Warn("inventory incomplete", zap.Error(err))
	}

	rec, err := convert.InventoryToRecord(inv)
	if err != nil {
		return err
	}
	id, _, err := db.Insert(ctx, rec)
	if err != nil {
		return err
	}

	logger.Info("inventory stored",
		zap.Int64("id", id),
		zap.String("hostname", inv.Hostname),
		zap.Int("records", rec.RecordCount))
	return nil
}

func runServiceInstall(_ *cobra.Command, _ []string) error {
	exePath, err := winsvc.ExePath()
	if err != nil {
		return err
	}

	svcArgs := []string{"serve"}
	if cfgFile != "" {
		svcArgs = append(svcArgs, "--config", cfgFile)
	}

	logger := logging.New(logging.Options{})
	if err := winsvc.Install(
		serviceName,
		"Sysinfo Collector",
		"Receives host inventory snapshots from sysinfo agents and stores them locally.",
		exePath,
		svcArgs,
		logger,
	); err != nil {
		return err
	}

	logger.Info("service installed", zap.String("service", serviceName))
	return nil
}

func runServiceUninstall(_ *cobra.Command, _ []string) error {
	if err := winsvc.Uninstall(serviceName); err != nil {
		return err
	}
	logging.New(logging.Options{}).Info("service uninstalled", zap.String("service", serviceName))
	return nil
}

func runPurge(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := store.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	n, err := db.Purge(context.Background(), time.Duration(purgeDays)*24*time.Hour)
	if err != nil {
		return fmt.Errorf("purge: %w", err)
	}

	fmt.Printf("Purged %d snapshots older than %d days\n", n, purgeDays)
	return nil
}
