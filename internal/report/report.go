// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report records the outcome of one pipeline run as a YAML file,
// so a batch can be audited without re-reading its output table.
package report

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bioenrich/internal/enrich"
)

// Report is the on-disk summary of a run.
type Report struct {
	RunID      string           `yaml:"run_id"`
	Pipeline   string           `yaml:"pipeline"`
	Input      string           `yaml:"input"`
	Output     string           `yaml:"output"`
	StartedAt  time.Time        `yaml:"started_at"`
	FinishedAt time.Time        `yaml:"finished_at"`
	Counts     enrich.Counts    `yaml:"counts"`
	Failures   []enrich.Failure `yaml:"failures,omitempty"`
	Error      string           `yaml:"error,omitempty"`
}

// New starts a report for a run of pipeline with a fresh run ID.
func New(pipeline, input, output string) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Pipeline:  pipeline,
		Input:     input,
		Output:    output,
		StartedAt: time.Now().UTC(),
	}
}

// Finish fills in the outcome of the run.
func (r *Report) Finish(res enrich.Result, err error) {
	r.FinishedAt = time.Now().UTC()
	r.Counts = res.Counts
	r.Failures = res.Failures()
	if err != nil {
		r.Error = err.Error()
	}
}

// Write saves r to path as YAML.
func Write(path string, r *Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Read loads a report previously written by Write.
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &r, nil
}
