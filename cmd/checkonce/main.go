// checkonce runs a single monitoring cycle and prints the results as JSON.
// Exit status is 1 when any endpoint is unavailable, so it doubles as a
// deployment smoke test.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/epmon/endpoint-monitor/internal/config"
	"github.com/epmon/endpoint-monitor/internal/probe"
	"github.com/epmon/endpoint-monitor/internal/scheduler"
	"github.com/epmon/endpoint-monitor/internal/sink"
)

func main() {
	settings, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	file, err := config.LoadFile(settings.ConfigPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Status lines go to stderr so stdout stays parseable JSON.
	logger := stderrLogger()
	defer logger.Sync()

	mem := &sink.Memory{}
	sinks := sink.Multi{sink.NewConsole(logger), mem}
	orch := scheduler.NewOrchestrator(logger, probe.New(), sinks, file)
	results := orch.RunCycle(context.Background())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for _, r := range results {
		if !r.OK() {
			os.Exit(1)
		}
	}
}

func stderrLogger() *zap.Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(os.Stderr), zap.InfoLevel)
	return zap.New(core)
}
