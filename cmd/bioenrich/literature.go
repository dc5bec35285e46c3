// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/bioenrich/internal/enrich"
	"github.com/pdiddy/bioenrich/internal/pubmed"
	"github.com/pdiddy/bioenrich/internal/report"
	"github.com/pdiddy/bioenrich/internal/secrets"
	"github.com/pdiddy/bioenrich/pkg/types"
)

var literatureCmd = &cobra.Command{
	Use:   "literature",
	Short: "List PubMed IDs for each gene in a spreadsheet",
	Long: `Literature reads the gene column of a spreadsheet, searches PubMed for
"<gene> AND <keyword>" once per distinct gene, and writes a spreadsheet
with one row per gene and its PubMed IDs as a JSON array.

Searches run one at a time with a fixed pause between them. A failed
search is recorded as "API Error" and the run continues; the results
collected so far are written even if the run is interrupted. Pass
--fail-fast to stop at the first failure and write nothing.

NCBI requires a contact email: set --email, BIOENRICH_LITERATURE_EMAIL,
or put it in .secrets/ncbi-email.`,
	RunE: runLiterature,
}

func init() {
	f := literatureCmd.Flags()
	f.String("input", "", "spreadsheet (.xlsx) or CSV with a column of gene names")
	f.String("output", "", "spreadsheet (.xlsx) or CSV to write")
	f.String("sheet", "", "input worksheet (default: first sheet)")
	f.String("gene-column", types.DefaultGeneColumn, "input column holding gene names")
	f.String("keyword", types.DefaultKeyword, "topic ANDed with every gene name")
	f.Int("max-results", types.DefaultMaxResults, "maximum PubMed IDs per gene")
	f.Duration("delay", types.DefaultDelay, "pause between consecutive searches")
	f.String("email", "", "contact email sent to NCBI")
	f.String("tool", types.DefaultTool, "tool name sent to NCBI")
	f.String("api-key", "", "NCBI API key")
	f.Bool("fail-fast", false, "stop at the first failed search and write no output")
	f.Duration("timeout", 0, "HTTP request timeout (0 keeps the transport default)")
	f.String("base-url", types.DefaultESearchURL, "E-utilities esearch endpoint")

	bindFlags(f, "literature", "input", "output", "sheet", "gene-column", "keyword", "max-results",
		"delay", "email", "tool", "api-key", "fail-fast", "timeout", "base-url")

	rootCmd.AddCommand(literatureCmd)
}

// literatureConfig resolves the literature settings from flags,
// environment, config file, and secrets.
func literatureConfig() types.LiteratureConfig {
	return types.LiteratureConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("literature.timeout"),
			UserAgent: userAgent(),
		},
		Input:      viper.GetString("literature.input"),
		Output:     viper.GetString("literature.output"),
		Sheet:      viper.GetString("literature.sheet"),
		GeneColumn: viper.GetString("literature.gene_column"),
		Keyword:    viper.GetString("literature.keyword"),
		MaxResults: viper.GetInt("literature.max_results"),
		Delay:      viper.GetDuration("literature.delay"),
		Email:      loadedSecrets.Or(secrets.NCBIEmail, viper.GetString("literature.email")),
		Tool:       viper.GetString("literature.tool"),
		APIKey:     loadedSecrets.Or(secrets.NCBIAPIKey, viper.GetString("literature.api_key")),
		FailFast:   viper.GetBool("literature.fail_fast"),
		BaseURL:    viper.GetString("literature.base_url"),
	}.WithDefaults()
}

func runLiterature(cmd *cobra.Command, args []string) error {
	cfg := literatureConfig()
	if cfg.Input == "" || cfg.Output == "" {
		return fmt.Errorf("provide both --input and --output")
	}

	client, err := pubmed.NewClient(cfg)
	if err != nil {
		return err
	}

	rep := report.New("literature", cfg.Input, cfg.Output)
	logger.Info("starting literature batch",
		zap.String("run_id", rep.RunID),
		zap.String("input", cfg.Input),
		zap.String("keyword", cfg.Keyword),
		zap.Duration("delay", cfg.Delay),
		zap.Bool("fail_fast", cfg.FailFast))

	res, err := enrich.Literature(cmd.Context(), client, cfg, logger)
	finishReport(rep, res, err)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d genes: %d searched, %d API errors -> %s\n",
		res.Counts.Total(), res.Counts.Found, res.Counts.Errors, cfg.Output)
	return nil
}
