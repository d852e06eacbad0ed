package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/go-tangra/go-tangra-sysinfo/internal/collector"
	"github.com/go-tangra/go-tangra-sysinfo/internal/config"
	"github.com/go-tangra/go-tangra-sysinfo/internal/logging"
	"github.com/go-tangra/go-tangra-sysinfo/internal/publish"
	"github.com/go-tangra/go-tangra-sysinfo/internal/sender"
)

var (
	version    = "dev"
	commitHash = "unknown"
	buildDate  = "unknown"
)

var (
	cfgFile    string
	outputFile string
	submit     bool
	publishMQ  bool
	categories []string
)

var rootCmd = &cobra.Command{
	Use:   "sysinfo",
	Short: "Sysinfo agent - collects host inventory once and logs every record",
	Long: `Sysinfo runs every enabled inventory query once, logs each record and
optionally writes the snapshot as JSON, submits it to a sysinfo collector
or publishes it to an AMQP exchange.`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commitHash, buildDate),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default: ./sysinfo.yaml)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write JSON snapshot to file (\"-\" for stdout)")
	rootCmd.Flags().BoolVar(&submit, "submit", false, "submit the snapshot to collector_url")
	rootCmd.Flags().BoolVar(&publishMQ, "publish", false, "publish the snapshot to the configured AMQP exchange")
	rootCmd.Flags().StringSliceVar(&categories, "categories", nil, "limit collection to these categories (motherboard,os,cpu,gpu,ram,harddisk)")
	rootCmd.Flags().String("collector-url", "", "collector base URL, e.g. http://collector:9551")
	rootCmd.Flags().String("api-secret", "", "X-API-Key sent to the collector")
	rootCmd.Flags().String("ram-unit", "", "unit RAM capacity is recorded in (byte|kb|mb|gb|tb)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// CLI flag overrides.
	if len(categories) > 0 {
		cfg.Categories = categories
	}
	if v, _ := cmd.Flags().GetString("collector-url"); v != "" {
		cfg.CollectorURL = v
	}
	if v, _ := cmd.Flags().GetString("api-secret"); v != "" {
		cfg.ApiSecret = v
	}
	if v, _ := cmd.Flags().GetString("ram-unit"); v != "" {
		cfg.RAMCapacityUnit = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(logging.Options{Format: cfg.Log.Format, Level: cfg.Log.Level})
	defer func() { _ = logger.Sync() }()

	opts, err := cfg.CollectorOptions()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collectors := collector.Collectors(collector.NewCommandExecutor(cfg.CommandTimeout), opts, logger.Named("collector"))
	inv, err := collector.Collect(ctx, collectors, collector.NewLogSink(logger.Named("inventory")))
	if err != nil {
		// Partial snapshot: the failed categories are already logged.
		logger.Warn("inventory incomplete", zap.Error(err))
	}
	logger.Info("inventory collected",
		zap.String("id", inv.ID),
		zap.String("hostname", inv.Hostname),
		zap.Int("records", inv.RecordCount()))

	if outputFile != "" {
		if err := writeJSON(outputFile, inv); err != nil {
			return err
		}
	}

	if submit {
		if cfg.CollectorURL == "" {
			return errors.New("--submit requires collector_url")
		}
		id, err := sender.Send(ctx, cfg.CollectorURL, cfg.ApiSecret, inv)
		if err != nil {
			return err
		}
		logger.Info("inventory submitted", zap.String("collector", cfg.CollectorURL), zap.Int64("id", id))
	}

	if publishMQ {
		if cfg.AMQP.URL == "" {
			return errors.New("--publish requires amqp.url")
		}
		p := publish.New(cfg.AMQP, logger.Named("publish"))
		defer p.Close()
		if err := p.Connect(ctx); err != nil {
			return err
		}
		if err := p.Publish(ctx, inv); err != nil {
			return err
		}
		logger.Info("inventory published", zap.String("exchange", cfg.AMQP.Exchange))
	}

	return nil
}

func writeJSON(path string, inv *collector.Inventory) error {
	var w io.Writer = os.Stdout
	if strings.TrimSpace(path) != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(inv); err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}
	return nil
}
