package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/epmon/endpoint-monitor/internal/config"
	"github.com/epmon/endpoint-monitor/internal/logging"
	"github.com/epmon/endpoint-monitor/internal/probe"
	"github.com/epmon/endpoint-monitor/internal/scheduler"
	"github.com/epmon/endpoint-monitor/internal/sink"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.NewViper()
	cmd := &cobra.Command{
		Use:          "endpoint-monitor",
		Short:        "Periodically probes configured HTTP endpoints and reports their status",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(v)
		},
	}

	flags := cmd.Flags()
	flags.String("config-path", "config.json5", "path to the JSON5 endpoint configuration")
	flags.Int("check-interval", 5, "minutes between monitoring cycles")
	flags.String("log-dir", "logs", "directory for the rotated log file")
	flags.String("log-group", "endpoint-monitor", "CloudWatch Logs group for the remote sink")
	flags.String("log-stream", "", "CloudWatch Logs stream (defaults to a per-run name)")
	flags.Bool("no-cloud-sink", false, "disable the remote sink, console output only")

	// Each flag doubles as an EPMON_* environment variable via viper.
	for _, name := range []string{"config-path", "check-interval", "log-dir", "log-group", "log-stream", "no-cloud-sink"} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
	return cmd
}

func run(v *viper.Viper) error {
	settings, err := config.FromViper(v)
	if err != nil {
		return err
	}

	logger, err := logging.New(settings.LogDir)
	if err != nil {
		return err
	}
	defer logger.Sync()

	file, err := config.LoadFile(settings.ConfigPath)
	if err != nil {
		logger.Error("config_load_failed", zap.Error(err))
		return err
	}
	logger.Info("config_loaded",
		zap.String("path", settings.ConfigPath),
		zap.Int("endpoints", len(file.Endpoints)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sinks := sink.Multi{sink.NewConsole(logger)}
	if settings.NoCloudSink {
		logger.Info("cloud_sink_disabled")
	} else if cw, err := sink.NewCloudWatch(ctx, settings.LogGroup, settings.LogStream); err != nil {
		// Non-fatal: keep monitoring with local output only.
		logger.Warn("cloud_sink_unavailable", zap.Error(err))
	} else {
		sinks = append(sinks, cw)
	}

	orch := scheduler.NewOrchestrator(logger, probe.New(), sinks, file)
	loop := scheduler.NewLoop(logger, orch, scheduler.NewClock(), settings.Interval)
	return loop.Run(ctx)
}
