// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by the lookup clients.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the transport default.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "bioenrich/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AccessionConfig holds settings for the UniProt accession pipeline.
type AccessionConfig struct {
	HTTPConfig `yaml:",inline"`

	// Input is the CSV file holding the identifier column.
	Input string `json:"input" yaml:"input"`

	// Output is the CSV file written with the appended result column.
	Output string `json:"output" yaml:"output"`

	// IDColumn names the input column holding UniProt IDs (default "UniProt_ID").
	IDColumn string `json:"id_column" yaml:"id_column"`

	// ResultColumn names the appended column (default "Entry_Number").
	ResultColumn string `json:"result_column" yaml:"result_column"`

	// BaseURL is the UniProtKB search endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// LiteratureConfig holds settings for the PubMed literature pipeline.
type LiteratureConfig struct {
	HTTPConfig `yaml:",inline"`

	// Input is the spreadsheet holding the gene column.
	Input string `json:"input" yaml:"input"`

	// Output is the spreadsheet written with one row per distinct gene.
	Output string `json:"output" yaml:"output"`

	// Sheet selects the input worksheet. Empty means the first sheet.
	Sheet string `json:"sheet" yaml:"sheet"`

	// GeneColumn names the input column holding gene names (default "Gene").
	GeneColumn string `json:"gene_column" yaml:"gene_column"`

	// Keyword is combined with each gene as "<gene> AND <keyword>" (default "tag site").
	Keyword string `json:"keyword" yaml:"keyword"`

	// MaxResults caps the number of PubMed IDs per gene (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Delay is the pause after each gene's query before the next one (default 1s).
	Delay time.Duration `json:"delay" yaml:"delay"`

	// Email is the contact address NCBI requires on every E-utilities call.
	Email string `json:"email" yaml:"email"`

	// Tool identifies this program to NCBI (default "bioenrich").
	Tool string `json:"tool" yaml:"tool"`

	// APIKey is an optional NCBI API key for a higher request allowance.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// FailFast aborts the run on the first failed gene and writes no output.
	FailFast bool `json:"fail_fast" yaml:"fail_fast"`

	// BaseURL is the esearch endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// Defaults for both pipelines. The CLI applies them to zero-valued fields.
const (
	DefaultIDColumn     = "UniProt_ID"
	DefaultResultColumn = "Entry_Number"
	DefaultGeneColumn   = "Gene"
	DefaultIDListColumn = "PubMed IDs"
	DefaultKeyword      = "tag site"
	DefaultMaxResults   = 50
	DefaultDelay        = 1 * time.Second
	DefaultTool         = "bioenrich"
	DefaultUserAgent    = "bioenrich/0.1"
	DefaultUniProtURL   = "https://rest.uniprot.org/uniprotkb/search"
	DefaultESearchURL   = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
)

// WithDefaults returns a copy of cfg with zero-valued fields filled in.
func (cfg AccessionConfig) WithDefaults() AccessionConfig {
	if cfg.IDColumn == "" {
		cfg.IDColumn = DefaultIDColumn
	}
	if cfg.ResultColumn == "" {
		cfg.ResultColumn = DefaultResultColumn
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultUniProtURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	return cfg
}

// WithDefaults returns a copy of cfg with zero-valued fields filled in.
// Delay is left alone: zero disables the pause, and the CLI flag carries
// the 1s default.
func (cfg LiteratureConfig) WithDefaults() LiteratureConfig {
	if cfg.GeneColumn == "" {
		cfg.GeneColumn = DefaultGeneColumn
	}
	if cfg.Keyword == "" {
		cfg.Keyword = DefaultKeyword
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}
	if cfg.Tool == "" {
		cfg.Tool = DefaultTool
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultESearchURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	return cfg
}

// PipelineConfig groups both pipeline configurations as read from the
// config file.
type PipelineConfig struct {
	Accession  AccessionConfig  `json:"accession" yaml:"accession"`
	Literature LiteratureConfig `json:"literature" yaml:"literature"`
}
