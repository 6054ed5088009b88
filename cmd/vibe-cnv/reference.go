package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/inodb/vibe-cnv/internal/reference"
)

// loadSnapshot builds the reference snapshot from the configured DuckDB store,
// or else from the table files, going through the snapshot cache when one is
// configured.
func (a *app) loadSnapshot() (*reference.Snapshot, error) {
	if dbPath := a.v.GetString(keyDB); dbPath != "" {
		for _, key := range []string{keyCytobands, keyGenes} {
			if p := a.v.GetString(key); p != "" {
				a.logger.Warn("reference store in use, ignoring table file",
					zap.String("key", key), zap.String("file", p), zap.String("db", dbPath))
			}
		}
		if _, err := os.Stat(dbPath); err != nil {
			return nil, fmt.Errorf("reference store: %w", err)
		}
		store, err := reference.Open(dbPath)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		snap, err := store.Snapshot()
		if err != nil {
			return nil, fmt.Errorf("read reference store: %w", err)
		}
		a.logSnapshot("store", dbPath, snap)
		return snap, nil
	}

	cytobandPath := a.v.GetString(keyCytobands)
	if cytobandPath == "" {
		cytobandPath = FindCytobandFile(a.v.GetString(keyAssembly))
	}
	genePath := a.v.GetString(keyGenes)

	cacheDir := a.v.GetString(keyCacheDir)
	if cacheDir == "" {
		return a.loadTables(cytobandPath, genePath)
	}

	cytobandFP, err := reference.StatFile(cytobandPath)
	if err != nil {
		return nil, fmt.Errorf("cytoband table: %w", err)
	}
	geneFP, err := reference.StatFile(genePath)
	if err != nil {
		return nil, fmt.Errorf("gene table: %w", err)
	}

	sc := reference.NewSnapshotCache(cacheDir)
	if sc.Valid(cytobandFP, geneFP) {
		snap, err := sc.Load()
		if err == nil {
			a.logSnapshot("cache", cacheDir, snap)
			return snap, nil
		}
		a.logger.Warn("could not load snapshot cache, re-reading tables", zap.Error(err))
		if err := sc.Clear(); err != nil {
			a.logger.Warn("could not clear snapshot cache", zap.String("dir", cacheDir), zap.Error(err))
		}
	}

	snap, err := a.loadTables(cytobandPath, genePath)
	if err != nil {
		return nil, err
	}
	if err := sc.Write(snap, cytobandFP, geneFP); err != nil {
		a.logger.Warn("could not write snapshot cache", zap.String("dir", cacheDir), zap.Error(err))
	}
	return snap, nil
}

func (a *app) loadTables(cytobandPath, genePath string) (*reference.Snapshot, error) {
	bands, err := reference.LoadCytobands(cytobandPath)
	if err != nil {
		return nil, err
	}
	genes, err := reference.LoadGenes(genePath)
	if err != nil {
		return nil, err
	}
	snap := reference.NewSnapshot(bands, genes)
	a.logSnapshot("files", cytobandPath+" "+genePath, snap)
	return snap, nil
}

func (a *app) logSnapshot(source, location string, snap *reference.Snapshot) {
	if !snap.HasCytobands() {
		a.logger.Warn("no cytoband table loaded; annotations will have no cytoband line")
	}
	if !snap.HasGenes() {
		a.logger.Warn("no gene table loaded; gene lists will be empty")
	}
	a.logger.Debug("reference data loaded",
		zap.String("source", source),
		zap.String("location", location),
		zap.Int("cytobands", snap.CytobandCount()),
		zap.Int("genes", snap.GeneCount()))
}
