package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vibe-cnv/internal/reference"
)

func (a *app) newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Import cytoband and gene tables into a DuckDB reference store",
		Long: `Parse the cytoband and/or gene tables and store them in a DuckDB database.
Tables not given are left as they are in the store. Later commands can read
the store with --db instead of re-parsing the files.`,
		Example: `  vibe-cnv import --db ~/.vibe-cnv/reference.duckdb --cytobands cytoBand.txt.gz --genes genes.bed`,
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runImport()
		},
	}
}

func (a *app) runImport() error {
	dbPath := a.v.GetString(keyDB)
	if dbPath == "" {
		return usageError{fmt.Errorf("--db is required")}
	}
	cytobandPath := a.v.GetString(keyCytobands)
	genePath := a.v.GetString(keyGenes)
	if cytobandPath == "" && genePath == "" {
		return usageError{fmt.Errorf("at least one of --cytobands or --genes is required")}
	}

	store, err := reference.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if cytobandPath != "" {
		n, err := store.ImportCytobands(cytobandPath)
		if err != nil {
			return err
		}
		a.logger.Info("imported cytobands", zap.String("file", cytobandPath), zap.Int("rows", n))
	}
	if genePath != "" {
		n, err := store.ImportGenes(genePath)
		if err != nil {
			return err
		}
		a.logger.Info("imported genes", zap.String("file", genePath), zap.Int("rows", n))
	}

	nBands, nGenes, err := store.Counts()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Reference store %s: %d cytobands, %d genes\n", dbPath, nBands, nGenes)
	return nil
}
