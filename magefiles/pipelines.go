//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Pipeline groups targets that run the pipelines on the data/ layout.
type Pipeline mg.Namespace

// Accession enriches data/input/indels.csv into data/output/indels_accession.csv.
func (Pipeline) Accession() error {
	mg.Deps(Init, Build)
	return runPipeline("accession",
		"--input", filepath.Join("data", "input", "indels.csv"),
		"--output", filepath.Join("data", "output", "indels_accession.csv"),
		"--report", filepath.Join("data", "reports", "accession.yaml"))
}

// Literature searches PubMed for the genes of data/input/genes.xlsx.
// The contact email comes from .secrets/ncbi-email or BIOENRICH_LITERATURE_EMAIL.
func (Pipeline) Literature() error {
	mg.Deps(Init, Build)
	return runPipeline("literature",
		"--input", filepath.Join("data", "input", "genes.xlsx"),
		"--output", filepath.Join("data", "output", "genes_pubmed.xlsx"),
		"--report", filepath.Join("data", "reports", "literature.yaml"))
}

func runPipeline(name string, args ...string) error {
	return sh.RunV(filepath.Join(binDir, binName), append([]string{name}, args...)...)
}
