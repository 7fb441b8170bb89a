package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"schemagen/internal/config"
	"schemagen/internal/metrics"
	"schemagen/internal/metrics/datadog"
	"schemagen/internal/metrics/prompush"

	"github.com/google/uuid"
)

// main is the entry point for the schemagen binary. It resolves the run
// configuration, optionally initializes a metrics backend, and translates the
// API document into a SQL schema script.
func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fatalf("config: %v", err)
	}

	issues := config.Validate(cfg)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		log.Printf("Configuration is invalid")
		os.Exit(1)
	}
	if cfg.ValidateOnly {
		log.Printf("Configuration is valid")
		os.Exit(0)
	}

	runID := uuid.New().String()
	if cfg.Verbose {
		log.Printf("run: id=%s input=%s output=%s", runID, cfg.Input, cfg.Output)
	}

	// Flush has to run before any os.Exit below.
	flush := setupMetrics(cfg, runID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	start := time.Now()
	err = run(ctx, cfg, os.Stdout)
	stop()
	flush()
	if err != nil {
		fatalf("%s", describeErr(err))
	}

	if cfg.Verbose {
		log.Printf("run: id=%s completed in %s", runID, time.Since(start).Truncate(time.Millisecond))
	}
}

// setupMetrics installs the configured backend and returns its flush func.
func setupMetrics(cfg config.Config, runID string) func() {
	var (
		b   metrics.Backend
		err error
	)
	switch cfg.MetricsBackend {
	case "pushgateway":
		b, err = prompush.NewBackend(cfg.Job, cfg.PushgatewayURL)
		if err == nil {
			log.Printf("metrics: url=%v, backend=%v, job_name=%v", cfg.PushgatewayURL, cfg.MetricsBackend, cfg.Job)
		}
	case "datadog":
		b, err = datadog.NewBackend(datadog.Config{
			Addr:       cfg.DatadogAddr,
			GlobalTags: []string{"service:schemagen", "run_id:" + runID},
		})
		if err == nil {
			log.Printf("metrics: addr=%v, backend=%v", cfg.DatadogAddr, cfg.MetricsBackend)
		}
	case "", "none":
		if cfg.Verbose {
			log.Printf("metrics: disabled (backend=%q)", cfg.MetricsBackend)
		}
		return func() {}
	}
	if err != nil {
		log.Printf("metrics: failed to init %s backend: %v; using nop", cfg.MetricsBackend, err)
		return func() {}
	}

	metrics.SetBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
