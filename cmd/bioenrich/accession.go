// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/bioenrich/internal/enrich"
	"github.com/pdiddy/bioenrich/internal/report"
	"github.com/pdiddy/bioenrich/internal/uniprot"
	"github.com/pdiddy/bioenrich/pkg/types"
)

var accessionCmd = &cobra.Command{
	Use:   "accession",
	Short: "Add UniProt accession numbers to a CSV of protein identifiers",
	Long: `Accession reads a CSV, looks up every identifier in the UniProt ID column
against UniProtKB, and writes the same CSV with one extra column holding the
primary accession of the first match.

Rows without a match get "No match found"; rows whose lookup failed get
"API Error". Every row is written, in input order.`,
	RunE: runAccession,
}

func init() {
	f := accessionCmd.Flags()
	f.String("input", "", "CSV or xlsx file with a column of UniProt IDs")
	f.String("output", "", "CSV or xlsx file to write (input plus the result column)")
	f.String("id-column", types.DefaultIDColumn, "input column holding UniProt IDs")
	f.String("result-column", types.DefaultResultColumn, "name of the appended column")
	f.Duration("timeout", 0, "HTTP request timeout (0 keeps the transport default)")
	f.String("base-url", types.DefaultUniProtURL, "UniProtKB search endpoint")

	bindFlags(f, "accession", "input", "output", "id-column", "result-column", "timeout", "base-url")

	rootCmd.AddCommand(accessionCmd)
}

// accessionConfig resolves the accession settings from flags, environment,
// and config file.
func accessionConfig() types.AccessionConfig {
	return types.AccessionConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("accession.timeout"),
			UserAgent: userAgent(),
		},
		Input:        viper.GetString("accession.input"),
		Output:       viper.GetString("accession.output"),
		IDColumn:     viper.GetString("accession.id_column"),
		ResultColumn: viper.GetString("accession.result_column"),
		BaseURL:      viper.GetString("accession.base_url"),
	}.WithDefaults()
}

func runAccession(cmd *cobra.Command, args []string) error {
	cfg := accessionConfig()
	if cfg.Input == "" || cfg.Output == "" {
		return fmt.Errorf("provide both --input and --output")
	}

	rep := report.New("accession", cfg.Input, cfg.Output)
	logger.Info("starting accession batch",
		zap.String("run_id", rep.RunID),
		zap.String("input", cfg.Input),
		zap.String("id_column", cfg.IDColumn))

	res, err := enrich.Accession(cmd.Context(), uniprot.NewClient(cfg), cfg, logger)
	finishReport(rep, res, err)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d rows: %d found, %d no match, %d API errors -> %s\n",
		res.Counts.Total(), res.Counts.Found, res.Counts.NoMatch, res.Counts.Errors, cfg.Output)
	return nil
}
