// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/bioenrich/internal/table"
	"github.com/pdiddy/bioenrich/pkg/types"
)

// RunAccession looks up every row's identifier in order and sets the result
// column on tbl, one rendered outcome per row. A failed or empty lookup is
// recorded as a sentinel and never stops the loop.
//
// If ctx is cancelled the remaining rows are marked TransportError without
// a request, the column is still set, and ctx.Err() is returned alongside
// the complete result.
func RunAccession(ctx context.Context, lookup AccessionLookup, tbl *table.Table, cfg types.AccessionConfig, log *zap.Logger) (Result, error) {
	cfg = cfg.WithDefaults()
	log = nopIfNil(log)

	ids, err := tbl.Column(cfg.IDColumn)
	if err != nil {
		return Result{}, err
	}

	res := Result{Records: make([]types.IdentifierRecord, 0, len(ids))}
	for i, id := range ids {
		var o types.LookupOutcome
		if ctxErr := ctx.Err(); ctxErr != nil {
			o = types.TransportError(ctxErr)
		} else {
			o = lookup.FetchAccession(ctx, id)
		}
		res.record(id, o)

		fields := []zap.Field{
			zap.Int("row", i+1),
			zap.String("id", id),
			zap.Stringer("status", o.Status),
		}
		switch o.Status {
		case types.StatusFound:
			log.Debug("accession found", append(fields, zap.String("accession", o.Render()))...)
		case types.StatusNoMatch:
			log.Info("no accession match", fields...)
		default:
			log.Warn("accession lookup failed", append(fields, zap.Error(o.Err))...)
		}
	}

	values := make([]string, len(res.Records))
	for i, rec := range res.Records {
		values[i] = rec.Outcome.Render()
	}
	if err := tbl.SetColumn(cfg.ResultColumn, values); err != nil {
		return res, err
	}

	log.Info("accession batch complete",
		zap.Int("rows", res.Counts.Total()),
		zap.Int("found", res.Counts.Found),
		zap.Int("no_match", res.Counts.NoMatch),
		zap.Int("errors", res.Counts.Errors))

	return res, ctx.Err()
}

// Accession loads cfg.Input, runs RunAccession, and writes cfg.Output. Each
// path is read or written as CSV or workbook by its extension. The output is
// written whenever the input loaded, so every row is annotated even after an
// interruption.
func Accession(ctx context.Context, lookup AccessionLookup, cfg types.AccessionConfig, log *zap.Logger) (Result, error) {
	cfg = cfg.WithDefaults()

	tbl, err := table.Load(cfg.Input, "", cfg.IDColumn)
	if err != nil {
		return Result{}, err
	}

	res, runErr := RunAccession(ctx, lookup, tbl, cfg, log)
	if runErr != nil && ctx.Err() == nil {
		return res, runErr
	}
	if err := table.Write(cfg.Output, "", tbl); err != nil {
		return res, errors.Join(runErr, fmt.Errorf("writing output: %w", err))
	}
	return res, runErr
}
