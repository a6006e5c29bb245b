// SPDX-License-Identifier: MIT

package network

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/gyanmishra/WGCNA/correlation"
)

// Config is the file form of Options. Policy fields decode from their
// names, e.g.
//
//	correlation: bicor
//	adjacency: signed hybrid
//	power: 12
//	tom: signed
//	denominator: mean
//	memory_budget: 4 GiB
type Config struct {
	Correlation  correlation.Kind     `yaml:"correlation"`
	Adjacency    AdjacencyType        `yaml:"adjacency"`
	Power        float64              `yaml:"power"`
	TOM          TOMType              `yaml:"tom"`
	Denominator  DenomType            `yaml:"denominator"`
	MaxPOutliers float64              `yaml:"max_p_outliers"`
	Quick        float64              `yaml:"quick"`
	Fallback     correlation.Fallback `yaml:"fallback"`
	Cosine       bool                 `yaml:"cosine"`
	Threads      int                  `yaml:"threads"`
	Verbose      int                  `yaml:"verbose"`
	Indent       int                  `yaml:"indent"`
	MemoryBudget string               `yaml:"memory_budget"` // humanized bytes; empty disables
	Epsilon      float64              `yaml:"epsilon"`
}

// DefaultConfig mirrors the defaults of NewOptions().
func DefaultConfig() Config {
	return Config{
		Correlation:  correlation.Pearson,
		Adjacency:    AdjUnsigned,
		Power:        DefaultPower,
		TOM:          TOMUnsigned,
		Denominator:  DenomMin,
		MaxPOutliers: DefaultMaxPOutliers,
		Quick:        DefaultQuick,
		Fallback:     correlation.FallbackIndividual,
		Epsilon:      DefaultEpsilon,
	}
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
// Unknown keys are rejected; empty input yields the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("ParseConfig: %w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("ParseConfig: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("LoadConfig: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("LoadConfig %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field and joins all failures. Each failure wraps
// ErrInvalidConfig and, for policies, the matching pipeline sentinel.
func (c Config) Validate() error {
	var errs []error
	bad := func(detail error) {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidConfig, detail))
	}

	if !c.Correlation.Valid() {
		bad(fmt.Errorf("correlation %d: %w", int(c.Correlation), ErrUnrecognizedCorrelation))
	}
	if !c.Adjacency.Valid() {
		bad(fmt.Errorf("adjacency %d: %w", int(c.Adjacency), ErrUnrecognizedAdjacency))
	}
	if math.IsNaN(c.Power) || math.IsInf(c.Power, 0) || c.Power <= 0 {
		bad(fmt.Errorf("power %g: %w", c.Power, ErrInvalidPower))
	}
	if !c.TOM.Valid() {
		bad(fmt.Errorf("tom %d: %w", int(c.TOM), ErrUnrecognizedTOM))
	}
	if !c.Denominator.Valid() {
		bad(fmt.Errorf("denominator %d: %w", int(c.Denominator), ErrUnrecognizedDenominator))
	}
	if !(c.MaxPOutliers > 0 && c.MaxPOutliers <= 1) {
		bad(fmt.Errorf("max_p_outliers %g outside (0,1]", c.MaxPOutliers))
	}
	if !(c.Quick >= 0 && c.Quick <= 1) {
		bad(fmt.Errorf("quick %g outside [0,1]", c.Quick))
	}
	if !c.Fallback.Valid() {
		bad(fmt.Errorf("fallback %d", int(c.Fallback)))
	}
	if c.Threads < 0 {
		bad(fmt.Errorf("threads %d", c.Threads))
	}
	if c.Verbose < 0 {
		bad(fmt.Errorf("verbose %d", c.Verbose))
	}
	if c.Indent < 0 {
		bad(fmt.Errorf("indent %d", c.Indent))
	}
	if math.IsNaN(c.Epsilon) || math.IsInf(c.Epsilon, 0) || c.Epsilon < 0 {
		bad(fmt.Errorf("epsilon %g", c.Epsilon))
	}
	if _, err := c.budgetBytes(); err != nil {
		bad(fmt.Errorf("memory_budget %q: %w", c.MemoryBudget, err))
	}
	return errors.Join(errs...)
}

func (c Config) budgetBytes() (uint64, error) {
	if c.MemoryBudget == "" {
		return 0, nil
	}
	return humanize.ParseBytes(c.MemoryBudget)
}

// Options validates c and converts it to functional options. Logger,
// provider and metrics are not part of the file form; append them.
func (c Config) Options() ([]Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	budget, _ := c.budgetBytes()
	return []Option{
		WithCorrelation(c.Correlation),
		WithAdjacency(c.Adjacency),
		WithPower(c.Power),
		WithTOM(c.TOM),
		WithDenominator(c.Denominator),
		WithMaxPOutliers(c.MaxPOutliers),
		WithQuick(c.Quick),
		WithFallback(c.Fallback),
		WithCosine(c.Cosine),
		WithThreads(c.Threads),
		WithVerbose(c.Verbose),
		WithIndent(c.Indent),
		WithMemoryBudget(budget),
		WithEpsilon(c.Epsilon),
	}, nil
}
