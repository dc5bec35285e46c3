// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/bioenrich/internal/httputil"
	"github.com/pdiddy/bioenrich/internal/table"
	"github.com/pdiddy/bioenrich/pkg/types"
)

// RunLiterature searches each gene in order, pausing cfg.Delay between
// consecutive searches, and returns the collected records.
//
// By default a failed search is recorded as TransportError and the loop
// moves on. With cfg.FailFast the first failure ends the run and is
// returned as the error. Cancelling ctx stops the loop; the records
// gathered so far are returned with ctx.Err().
func RunLiterature(ctx context.Context, lookup LiteratureLookup, genes []string, cfg types.LiteratureConfig, log *zap.Logger) (Result, error) {
	res := Result{}
	err := runLiterature(ctx, lookup, genes, cfg, nopIfNil(log), &res)
	return res, err
}

// runLiterature appends into res so a caller holding res keeps every record
// collected before an early return or panic.
func runLiterature(ctx context.Context, lookup LiteratureLookup, genes []string, cfg types.LiteratureConfig, log *zap.Logger, res *Result) error {
	for i, gene := range genes {
		if i > 0 {
			if err := httputil.Pause(ctx, cfg.Delay); err != nil {
				log.Warn("literature batch interrupted", zap.Int("done", i), zap.Int("genes", len(genes)))
				return err
			}
		}

		ids, err := lookup.Search(ctx, gene)
		if err != nil {
			log.Warn("literature search failed", zap.String("gene", gene), zap.Error(err))
			if cfg.FailFast {
				return fmt.Errorf("searching %q: %w", gene, err)
			}
			res.record(gene, types.TransportError(err))
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			continue
		}

		res.record(gene, types.Found(ids...))
		log.Info("literature search",
			zap.String("gene", gene),
			zap.Int("pubmed_ids", len(ids)),
			zap.Strings("ids", ids))
	}

	log.Info("literature batch complete",
		zap.Int("genes", res.Counts.Total()),
		zap.Int("errors", res.Counts.Errors))
	return nil
}

// LiteratureTable builds the two-column output table: one row per gene in
// the order searched, with the PubMed IDs rendered as a JSON array or the
// error sentinel.
func LiteratureTable(res Result, geneColumn, idsColumn string) *table.Table {
	if geneColumn == "" {
		geneColumn = types.DefaultGeneColumn
	}
	if idsColumn == "" {
		idsColumn = types.DefaultIDListColumn
	}
	tbl := table.New(geneColumn, idsColumn)
	for _, rec := range res.Records {
		tbl.AddRow(rec.Identifier, rec.Outcome.RenderList())
	}
	return tbl
}

// Genes loads the gene column of path and returns the distinct names in
// first-seen order.
func Genes(path, sheet, column string) ([]string, error) {
	tbl, err := table.Load(path, sheet, column)
	if err != nil {
		return nil, err
	}
	names, err := tbl.Column(column)
	if err != nil {
		return nil, &table.LoadError{Path: path, Err: err}
	}
	return table.UniqueInOrder(names), nil
}

// Literature loads the genes of cfg.Input, searches each, and writes
// cfg.Output.
//
// The output is flushed from a deferred call, so whatever was collected is
// written even when the loop stops early or a lookup panics. With
// cfg.FailFast a failed run writes no output at all.
func Literature(ctx context.Context, lookup LiteratureLookup, cfg types.LiteratureConfig, log *zap.Logger) (res Result, err error) {
	cfg = cfg.WithDefaults()
	log = nopIfNil(log)

	genes, err := Genes(cfg.Input, cfg.Sheet, cfg.GeneColumn)
	if err != nil {
		return Result{}, err
	}
	log.Info("loaded genes", zap.String("input", cfg.Input), zap.Int("distinct", len(genes)))

	collected := &Result{}
	completed := false
	defer func() {
		res = *collected
		if cfg.FailFast && (err != nil || !completed) {
			log.Warn("fail-fast run stopped, no output written", zap.String("output", cfg.Output))
			return
		}
		tbl := LiteratureTable(*collected, cfg.GeneColumn, types.DefaultIDListColumn)
		if werr := table.Write(cfg.Output, "", tbl); werr != nil {
			err = errors.Join(err, fmt.Errorf("writing output: %w", werr))
			return
		}
		log.Info("wrote results", zap.String("output", cfg.Output), zap.Int("rows", tbl.Len()))
	}()

	err = runLiterature(ctx, lookup, genes, cfg, log, collected)
	completed = true
	return *collected, err
}
