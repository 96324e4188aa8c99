// Copyright 2026 The go-matbench Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command matbench times dense square matrix multiplication with the
// sequential, executor and forkjoin strategies and writes the results to flat
// files.
//
// Usage:
//
//	matbench                                  # 1024×1024, workers 2,4,6,8,10,12
//	matbench -size 512 -workers 2 -workers 8 -iterations 10
//	matbench -config bench.yaml -verify -metrics
//
// Configuration precedence is flag > MATBENCH_* environment > file > default.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ajroetker/go-matbench/bench"
	"github.com/ajroetker/go-matbench/bench/config"
	"github.com/ajroetker/go-matbench/mat"
)

// Build information, set via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	if err := app().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func app() *cli.App {
	return &cli.App{
		Name:    "matbench",
		Usage:   "benchmark sequential and parallel dense matrix multiplication",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to a YAML configuration file"},
			&cli.IntFlag{Name: "size", Aliases: []string{"n"}, Usage: "matrix dimension N"},
			&cli.IntSliceFlag{Name: "workers", Aliases: []string{"w"}, Usage: "worker counts for the parallel strategies (repeatable)"},
			&cli.IntFlag{Name: "warmup", Usage: "untimed calls per case"},
			&cli.IntFlag{Name: "iterations", Aliases: []string{"i"}, Usage: "timed calls per case"},
			&cli.IntFlag{Name: "threshold", Usage: "forkjoin split threshold in rows"},
			&cli.Int64Flag{Name: "seed", Usage: "matrix generator seed"},
			&cli.StringFlag{Name: "results-dir", Aliases: []string{"o"}, Usage: "directory for result files"},
			&cli.BoolFlag{Name: "metrics", Usage: "write a Prometheus text file with the timings"},
			&cli.BoolFlag{Name: "verify", Usage: "check each parallel strategy against the sequential product first"},
			&cli.StringFlag{Name: "log-level", Usage: "trace, debug, info, warn or error"},
			&cli.StringFlag{Name: "log-format", Usage: "text or json"},
		},
		Action: run,
	}
}

// flagOverrides maps the flags set on the command line to configuration keys.
func flagOverrides(c *cli.Context) map[string]any {
	out := make(map[string]any)
	set := func(flag, key string, value any) {
		if c.IsSet(flag) {
			out[key] = value
		}
	}
	set("size", "size", c.Int("size"))
	set("workers", "workers", c.IntSlice("workers"))
	set("warmup", "warmup", c.Int("warmup"))
	set("iterations", "iterations", c.Int("iterations"))
	set("threshold", "threshold", c.Int("threshold"))
	set("seed", "seed", c.Int64("seed"))
	set("results-dir", "results.dir", c.String("results-dir"))
	set("metrics", "results.metrics", c.Bool("metrics"))
	set("verify", "verify", c.Bool("verify"))
	set("log-level", "log.level", c.String("log-level"))
	set("log-format", "log.format", c.String("log-format"))
	return out
}

func run(c *cli.Context) error {
	startProgram := time.Now()

	cfg, err := config.Load(
		config.WithConfigFile(c.String("config")),
		config.WithOverrides(flagOverrides(c)),
	)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := bench.NewLogger(cfg.Log, os.Stderr)
	info := bench.CollectSystemInfo(cfg.Size, version, startProgram)
	log.Info("starting matbench",
		"version", version,
		"run_id", info.RunID,
		"size", fmt.Sprintf("%dx%d", cfg.Size, cfg.Size),
		"cpus", info.NumCPU,
		"workers", fmt.Sprint(cfg.Workers))

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	startInit := time.Now()
	a, err := mat.GenerateWithSeed(cfg.Size, cfg.Seed)
	if err != nil {
		return fmt.Errorf("generate A: %w", err)
	}
	b, err := mat.GenerateWithSeed(cfg.Size, cfg.Seed)
	if err != nil {
		return fmt.Errorf("generate B: %w", err)
	}
	log.Info("matrices initialized", "seconds", fmt.Sprintf("%.3f", time.Since(startInit).Seconds()))

	writer, err := bench.NewWriter(cfg.Results.Dir)
	if err != nil {
		return err
	}
	if err := writer.WriteSystemInfo(info); err != nil {
		return err
	}

	opts := []bench.RunnerOption{bench.WithSink(writer)}
	var metrics *bench.Metrics
	if cfg.Results.Metrics {
		metrics = bench.NewMetrics()
		opts = append(opts, bench.WithMetrics(metrics))
	}

	results, runErr := bench.NewRunner(cfg, log, opts...).Run(ctx, a, b)

	// Metrics are written even for a partial run; failures are part of them.
	if metrics != nil {
		if err := metrics.WriteTextfile(writer.Path(bench.MetricsFile)); err != nil {
			log.Error("write metrics", "error", err)
			if runErr == nil {
				runErr = err
			}
		}
	}
	if runErr != nil {
		return runErr
	}

	analysis, err := bench.Analyze(results)
	if err != nil {
		return err
	}
	for _, c := range analysis.Cases {
		log.Info("speedup",
			"case", c.String(),
			"speedup", fmt.Sprintf("%.2fx", c.Speedup),
			"efficiency", fmt.Sprintf("%.2f", c.Efficiency))
	}
	if err := writer.WriteAnalysis(analysis); err != nil {
		return err
	}

	log.Info("benchmark complete",
		"results", writer.Path(bench.TimesFile),
		"total_seconds", fmt.Sprintf("%.3f", time.Since(startProgram).Seconds()))
	return nil
}
