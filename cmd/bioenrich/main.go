// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bioenrich CLI. Each pipeline is a
// subcommand: accession (UniProt) and literature (PubMed).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/bioenrich/internal/enrich"
	"github.com/pdiddy/bioenrich/internal/report"
	"github.com/pdiddy/bioenrich/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// logger is built in PersistentPreRunE.
	logger *zap.Logger

	// loadedSecrets holds credentials read from the secrets directory.
	loadedSecrets secrets.Secrets
)

// rootCmd is the base command for the bioenrich CLI.
var rootCmd = &cobra.Command{
	Use:   "bioenrich",
	Short: "Batch lookups of protein accessions and gene literature",
	Long: `bioenrich annotates tabular data with lookups against public biology
services, one row at a time.

  accession   add the UniProt primary accession for each protein identifier
  literature  list PubMed IDs for each distinct gene in a spreadsheet

Settings come from flags, BIOENRICH_* environment variables, or a
bioenrich.yaml config file, in that order of precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(viper.GetBool("verbose"))
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Info("using config file", zap.String("path", used))
		}

		s, err := secrets.Load(viper.GetString("secrets_dir"), logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := s.Keys()
			sort.Strings(keys)
			logger.Info("loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./bioenrich.yaml or ~/.config/bioenrich/config.yaml)")
	pf.BoolP("verbose", "v", false, "log every lookup at debug level")
	pf.String("secrets-dir", ".secrets", "directory of secret files (ncbi-email, ncbi-api-key)")
	pf.String("report", "", "write a YAML run report to this path")

	bindFlags(pf, "", "verbose", "secrets-dir", "report")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bioenrich")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bioenrich"))
		}
	}

	viper.SetEnvPrefix("BIOENRICH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintf(os.Stderr, "warning: reading config %s: %v\n", cfgFile, err)
	}
}

// bindFlags binds each named flag to the viper key "<prefix>.<name>" with
// dashes turned into underscores. An empty prefix binds at the top level.
func bindFlags(fs *pflag.FlagSet, prefix string, names ...string) {
	for _, name := range names {
		key := strings.ReplaceAll(name, "-", "_")
		if prefix != "" {
			key = prefix + "." + key
		}
		if err := viper.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
}

// newLogger builds the process logger. Tests replace it.
var newLogger = func(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// userAgent identifies this build to the remote services.
func userAgent() string {
	return "bioenrich/" + version
}

// finishReport writes the run report when --report is set. A report
// failure is logged and does not change the run's error.
func finishReport(r *report.Report, res enrich.Result, runErr error) {
	path := viper.GetString("report")
	if path == "" {
		return
	}
	r.Finish(res, runErr)
	if err := report.Write(path, r); err != nil {
		logger.Error("writing run report", zap.String("path", path), zap.Error(err))
		return
	}
	logger.Info("wrote run report", zap.String("path", path), zap.String("run_id", r.RunID))
}

// run executes the command line and flushes the logger afterwards, whether
// or not the command failed.
func run(ctx context.Context, args []string) error {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()
	if err != nil {
		os.Exit(1)
	}
}
