// SPDX-License-Identifier: MIT

package network

import (
	"context"
	"log/slog"
	"time"
)

// Pipeline stages, used as log messages and as the "stage" metric label.
const (
	stageAdjacency    = "adjacency"
	stageConnectivity = "connectivity"
	stageMultiply     = "multiply"
	stageNormalize    = "normalize"
)

// progress emits step messages at Info when verbose, at Debug otherwise,
// and times each stage into the metrics histogram.
type progress struct {
	log     *slog.Logger
	level   slog.Level
	metrics *Metrics

	stage string
	start time.Time
}

func newProgress(o Options) *progress {
	level := slog.LevelDebug
	if o.verbose > 0 {
		level = slog.LevelInfo
	}
	return &progress{
		log:     o.logger.With(slog.Int("indent", o.indent)),
		level:   level,
		metrics: o.metrics,
	}
}

func (p *progress) step(msg string, args ...any) {
	p.log.Log(context.Background(), p.level, msg, args...)
}

// begin closes the running stage (if any) and opens the next one.
func (p *progress) begin(stage, msg string) {
	p.end()
	p.stage, p.start = stage, time.Now()
	p.step(msg)
}

func (p *progress) end() {
	if p.stage == "" {
		return
	}
	p.metrics.observeStage(p.stage, time.Since(p.start))
	p.stage = ""
}

func (p *progress) done() {
	p.end()
	p.step("..done")
}
