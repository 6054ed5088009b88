package reference

import (
	"database/sql/driver"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_OpenEmpty(t *testing.T) {
	s := openInMemory(t)

	nBands, nGenes, err := s.Counts()
	require.NoError(t, err)
	assert.Zero(t, nBands)
	assert.Zero(t, nGenes)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.False(t, snap.HasCytobands())
	assert.False(t, snap.HasGenes())
}

func TestStore_WriteAndReadKeepsOrder(t *testing.T) {
	s := openInMemory(t)

	bands := []Cytoband{
		{Chrom: "chr16", Start: 16700000, End: 21200000, Band: "p12.3", Stain: "gpos50"},
		{Chrom: "chr16", Start: 14800000, End: 16700000, Band: "p13.11", Stain: "gneg"},
	}
	require.NoError(t, s.WriteCytobands(bands))

	got, err := s.Cytobands()
	require.NoError(t, err)
	assert.Equal(t, bands, got)

	genes := []Gene{
		{Chrom: "chr16", Start: 300, End: 400, Name: "Z"},
		{Chrom: "chr16", Start: 100, End: 200, Name: "A"},
	}
	require.NoError(t, s.WriteGenes(genes))

	gotGenes, err := s.Genes()
	require.NoError(t, err)
	assert.Equal(t, genes, gotGenes)
}

func TestStore_WriteReplacesExistingRows(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.WriteGenes([]Gene{{Chrom: "1", Start: 1, End: 2, Name: "OLD"}}))
	require.NoError(t, s.WriteGenes([]Gene{{Chrom: "1", Start: 1, End: 2, Name: "NEW"}}))

	genes, err := s.Genes()
	require.NoError(t, err)
	require.Len(t, genes, 1)
	assert.Equal(t, "NEW", genes[0].Name)
}

func TestStore_ImportFilesAndSnapshot(t *testing.T) {
	s := openInMemory(t)

	n, err := s.ImportCytobands(writeFile(t, "cytoBand.txt", testCytobandTSV))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = s.ImportGenes(writeFile(t, "genes.bed", testGeneTSV))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	nBands, nGenes, err := s.Counts()
	require.NoError(t, err)
	assert.Equal(t, int64(3), nBands)
	assert.Equal(t, int64(3), nGenes)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, []string{"p13.11"}, snap.CytobandsOverlapping("16", 15489724, 16367962))
	assert.Equal(t, []string{"GENEA", "GENEB"}, snap.GenesOverlapping("chr16", 15489724, 16367962))
}

func TestStore_ImportMissingFile(t *testing.T) {
	s := openInMemory(t)

	_, err := s.ImportGenes("/nonexistent/genes.bed")
	assert.Error(t, err)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "reference.duckdb")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.WriteGenes([]Gene{{Chrom: "1", Start: 1, End: 2, Name: "KEEP"}}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	genes, err := s.Genes()
	require.NoError(t, err)
	require.Len(t, genes, 1)
	assert.Equal(t, "KEEP", genes[0].Name)
}

func TestStore_FailedReplaceKeepsPreviousRows(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.WriteGenes([]Gene{{Chrom: "1", Start: 1, End: 2, Name: "KEEP"}}))

	err := s.replaceTable("genes", 2, func(i int) []driver.Value {
		if i == 1 {
			return []driver.Value{int64(i), "1"}
		}
		return []driver.Value{int64(i), "1", int64(10), int64(20), "NEW"}
	})
	require.Error(t, err)

	genes, err := s.Genes()
	require.NoError(t, err)
	require.Len(t, genes, 1)
	assert.Equal(t, "KEEP", genes[0].Name)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.True(t, snap.HasGenes())
}

func TestStore_ReplaceAfterFailureSucceeds(t *testing.T) {
	s := openInMemory(t)

	err := s.replaceTable("cytobands", 1, func(int) []driver.Value { return nil })
	require.Error(t, err)

	require.NoError(t, s.WriteCytobands([]Cytoband{{Chrom: "1", Start: 0, End: 10, Band: "p36.33"}}))
	bands, err := s.Cytobands()
	require.NoError(t, err)
	assert.Len(t, bands, 1)
}
