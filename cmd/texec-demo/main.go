/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Command texec-demo is a thin Cobra CLI wiring a config file, zerolog
// diagnostics, and Prometheus metrics around a texec/pool.Pool, modeled
// on the run command in
// _examples/ChuLiYu-raft-recovery/internal/cli/cli.go. It submits a batch
// of demo tasks through a TaskGroup and prints a summary; it carries no
// invariants of its own.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/texec/texec"
	"github.com/texec/texec/config"
	"github.com/texec/texec/diagnostics"
	"github.com/texec/texec/pool"
	"github.com/texec/texec/texecmetrics"
)

var configFile string

func main() {
	root := buildCLI()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildCLI() *cobra.Command {
	root := &cobra.Command{
		Use:     "texec-demo",
		Short:   "texec-demo runs a batch of demo tasks through a texec thread pool",
		Version: "1.0.0",
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "texec.yaml", "pool config file path")
	root.AddCommand(buildRunCommand())
	return root
}

func buildRunCommand() *cobra.Command {
	var taskCount int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Submit a batch of demo tasks and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(taskCount)
		},
	}
	cmd.Flags().IntVar(&taskCount, "tasks", 16, "number of demo tasks to submit")
	return cmd
}

func run(taskCount int) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("texec-demo: %w", err)
	}

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// p is assigned below, after the Collector is built; the queue-depth
	// and worker-busy gauges close over &p rather than p itself so they
	// read live values once the pool exists, and zero before it does.
	var p *pool.Pool

	reg := prometheus.NewRegistry()
	metrics := texecmetrics.New(reg, queueSizerFunc(func() int {
		if p == nil {
			return 0
		}
		return p.QueueLen()
	}), workerSizerFunc(func() int {
		if p == nil {
			return 0
		}
		return p.ActiveWorkers()
	}))
	diag := diagnostics.Multi{diagnostics.ZerologLogger{Log: log}, metrics}

	p, err = pool.Create(texec.NewExecutorCreateInfo(
		cfg.ThreadPoolInfo(),
		texec.NewDiagnosticsInfo(diag),
	))
	if err != nil {
		return fmt.Errorf("texec-demo: create pool: %w", err)
	}

	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			log.Info().Str("addr", addr).Msg("texec-demo: metrics server listening")
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Error().Err(err).Msg("texec-demo: metrics server stopped")
			}
		}()
	}

	roots := make([]texec.Descriptor, taskCount)
	for i := 0; i < taskCount; i++ {
		i := i
		roots[i] = texec.NewExecutorSubmitInfo(texec.Task{
			Run: func(ctx interface{}) int {
				n := ctx.(int)
				log.Debug().Int("task", n).Msg("texec-demo: running")
				return 0
			},
			Ctx: i,
		})
	}

	group, err := p.SubmitMany(roots)
	if err != nil {
		return fmt.Errorf("texec-demo: submit_many: %w", err)
	}
	if err := group.Wait(); err != nil {
		return fmt.Errorf("texec-demo: group wait: %w", err)
	}

	p.Close()
	p.Join()
	if err := p.Destroy(); err != nil {
		return fmt.Errorf("texec-demo: destroy pool: %w", err)
	}

	fmt.Printf("texec-demo: %d tasks completed\n", taskCount)
	return nil
}

// queueSizerFunc adapts a plain function to texecmetrics.QueueSizer.
type queueSizerFunc func() int

func (f queueSizerFunc) Len() int { return f() }

// workerSizerFunc adapts a plain function to texecmetrics.WorkerSizer.
type workerSizerFunc func() int

func (f workerSizerFunc) ActiveWorkers() int { return f() }
