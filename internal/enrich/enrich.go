// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich runs the two batch lookups: UniProt accession enrichment
// of a CSV, and PubMed literature search for the genes of a spreadsheet.
// Both process one identifier at a time, in input order, and collect one
// outcome per identifier.
package enrich

import (
	"context"

	"go.uber.org/zap"

	"github.com/pdiddy/bioenrich/pkg/types"
)

// AccessionLookup resolves one protein identifier. Implemented by
// *uniprot.Client.
type AccessionLookup interface {
	FetchAccession(ctx context.Context, id string) types.LookupOutcome
}

// LiteratureLookup searches the literature for one gene. Implemented by
// *pubmed.Client.
type LiteratureLookup interface {
	Search(ctx context.Context, gene string) ([]string, error)
}

// Counts tallies outcomes by status.
type Counts struct {
	Found   int `yaml:"found"`
	NoMatch int `yaml:"no_match"`
	Errors  int `yaml:"errors"`
}

// Total returns the number of identifiers processed.
func (c Counts) Total() int {
	return c.Found + c.NoMatch + c.Errors
}

func (c *Counts) add(o types.LookupOutcome) {
	switch o.Status {
	case types.StatusFound:
		c.Found++
	case types.StatusNoMatch:
		c.NoMatch++
	default:
		c.Errors++
	}
}

// Failure records an identifier whose lookup ended in TransportError.
type Failure struct {
	Identifier string `yaml:"identifier"`
	Error      string `yaml:"error"`
}

// Result is the ordered collection of records built by a run.
type Result struct {
	Records []types.IdentifierRecord
	Counts  Counts
}

func (r *Result) record(id string, o types.LookupOutcome) {
	r.Records = append(r.Records, types.IdentifierRecord{Identifier: id, Outcome: o})
	r.Counts.add(o)
}

// Failures lists the records that ended in TransportError, in order.
func (r Result) Failures() []Failure {
	var out []Failure
	for _, rec := range r.Records {
		if rec.Outcome.Status != types.StatusTransportError {
			continue
		}
		msg := ""
		if rec.Outcome.Err != nil {
			msg = rec.Outcome.Err.Error()
		}
		out = append(out, Failure{Identifier: rec.Identifier, Error: msg})
	}
	return out
}

func nopIfNil(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
