// Command rtbsa runs one beam-synchronous acquisition analysis session
// headless: it reads device events from Kafka or a WebSocket gateway,
// refreshes the selected analysis on a fixed interval and publishes each
// frame to MQTT, with Prometheus metrics on the side.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joeydtaylor/rtbsa/pkg/builder"
)

func main() {
	configPath := flag.String("config", builder.EnvOr("RTBSA_CONFIG", ""), "path to a YAML config file")
	devA := flag.String("a", "", "device for slot A (overrides config)")
	devB := flag.String("b", "", "device for slot B (overrides config)")
	mode := flag.String("mode", "", "time | correlation | spectrum (overrides config)")
	flag.Parse()

	cfg, corrections, err := builder.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rtbsa: %v\n", err)
		os.Exit(2)
	}
	if *devA != "" {
		cfg.Session.DeviceA = *devA
	}
	if *devB != "" {
		cfg.Session.DeviceB = *devB
	}
	if *mode != "" {
		cfg.Session.Mode = *mode
		corrections = append(corrections, cfg.Validate()...)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := builder.NewApp(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rtbsa: %v\n", err)
		os.Exit(2)
	}
	for _, c := range corrections {
		app.Logger.Warn("config corrected", "event", "Config", "field", c.Field, "value", c.Value, "message", c.Message)
	}

	app.Logger.Info("rtbsa starting",
		"event", "Start", "session_id", app.Session.ID(), "mode", string(app.Session.Mode()),
		"device_a", cfg.Session.DeviceA, "device_b", cfg.Session.DeviceB, "source", cfg.Source.Kind)

	if err := app.Run(ctx); err != nil {
		app.Logger.Error("rtbsa stopped with error", "event", "Run", "result", "FAILURE", "error", err)
		_ = app.Logger.Flush()
		os.Exit(1)
	}
	app.Logger.Info("rtbsa stopped", "event", "Stop", "result", "SUCCESS")
	_ = app.Logger.Flush()
}
