// The worker command runs the persistent article extraction process: one
// JSON ExtractionRequest per stdin line, one JSON Article or ErrorResult per
// stdout line, diagnostics on stderr. It is started once by its supervisor,
// fed many request lines, and exits cleanly on end of input.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"article-extract-worker/internal/config"
	"article-extract-worker/internal/extract"
	"article-extract-worker/internal/worker"
)

func main() {
	// Logging setup: stderr only, the stdout stream carries responses
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		configPath       string
		engines          string
		timeout          time.Duration
		parallelism      int
		charThreshold    int
		suppressWarnings bool
		verbose          bool
	)

	cfg := config.DefaultWorkerConfig()

	flag.StringVar(&configPath, "config", "", "Path to optional YAML configuration file")
	flag.StringVar(&engines, "engines", "", "Comma-separated engine priority order (readability,dom-heuristic,plaintext)")
	flag.DurationVar(&timeout, "timeout", cfg.Timeout, "Per-request wall-clock budget; 0 disables")
	flag.IntVar(&parallelism, "parallel", cfg.Parallelism, "Requests processed concurrently; output order is always preserved")
	flag.IntVar(&charThreshold, "charThreshold", cfg.CharThreshold, "Default minimum content length to accept a candidate")
	flag.BoolVar(&suppressWarnings, "suppress-warnings", cfg.SuppressWarnings, "Silence per-document parse diagnostics")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if configPath != "" {
		fc, err := config.LoadFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("loading configuration file")
		}
		cfg.ApplyFile(fc)
	}

	// Explicit flags win over both defaults and the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "engines":
			cfg.Engines = splitFlag(engines)
		case "timeout":
			cfg.Timeout = timeout
		case "parallel":
			cfg.Parallelism = parallelism
		case "charThreshold":
			cfg.CharThreshold = charThreshold
		case "suppress-warnings":
			cfg.SuppressWarnings = suppressWarnings
		case "v":
			cfg.Verbose = verbose
		}
	})

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	engineList, err := extract.NewEngines(cfg.Engines, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("configuring engines")
	}
	coordinator := extract.NewCoordinator(engineList, log.Logger)

	log.Info().
		Strs("engines", coordinator.Engines()).
		Dur("timeout", cfg.Timeout).
		Int("parallelism", cfg.Parallelism).
		Msg("worker started")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := worker.New(cfg, coordinator, log.Logger)
	switch err := w.Run(ctx, os.Stdin, os.Stdout); {
	case err == nil:
		log.Info().Msg("input drained, worker exiting")
	case errors.Is(err, context.Canceled):
		// Run surfaces the signal context when interrupted mid-stream
		log.Info().Msg("shutdown signal received, worker exiting")
	default:
		log.Fatal().Err(err).Msg("worker stream failure")
	}
}

func splitFlag(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
