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

// Package config loads YAML pool configuration, the same way
// _examples/ChuLiYu-raft-recovery/internal/cli.loadConfig does: read the
// file, yaml.Unmarshal into a tagged struct.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/texec/texec"
)

// PoolConfig is the on-disk configuration for a thread-pool Executor.
type PoolConfig struct {
	Pool struct {
		ThreadCount   int    `yaml:"thread_count"`
		QueueCapacity int    `yaml:"queue_capacity"`
		Backpressure  string `yaml:"backpressure"`
	} `yaml:"pool"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
		Port    int  `yaml:"port"`
	} `yaml:"metrics"`
}

// Load reads and parses a PoolConfig from path.
func Load(path string) (*PoolConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg PoolConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Backpressure resolves the configured policy name to a
// texec.BackpressurePolicy. An empty or unrecognized name falls back to
// BackpressureReject.
func (c *PoolConfig) Backpressure() texec.BackpressurePolicy {
	switch c.Pool.Backpressure {
	case "BLOCK":
		return texec.BackpressureBlock
	case "CALLER_RUNS":
		return texec.BackpressureCallerRuns
	default:
		return texec.BackpressureReject
	}
}

// ThreadPoolInfo builds a *texec.ThreadPoolInfo descriptor from the loaded
// values, ready to chain off an ExecutorCreateInfo.
func (c *PoolConfig) ThreadPoolInfo() *texec.ThreadPoolInfo {
	return texec.NewThreadPoolInfo(c.Pool.ThreadCount, c.Pool.QueueCapacity, c.Backpressure())
}
