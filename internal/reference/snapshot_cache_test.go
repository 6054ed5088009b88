package reference

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCache_RoundTrip(t *testing.T) {
	bandsPath := writeFile(t, "cytoBand.txt", testCytobandTSV)
	bandsFP, err := StatFile(bandsPath)
	require.NoError(t, err)

	snap := NewSnapshot([]Cytoband{
		{Chrom: "chr16", Start: 14800000, End: 16700000, Band: "p13.11", Stain: "gneg"},
	}, nil)

	sc := NewSnapshotCache(t.TempDir())
	assert.False(t, sc.Valid(bandsFP, FileFingerprint{}), "nothing written yet")

	require.NoError(t, sc.Write(snap, bandsFP, FileFingerprint{}))
	assert.True(t, sc.Valid(bandsFP, FileFingerprint{}))

	loaded, err := sc.Load()
	require.NoError(t, err)
	assert.True(t, loaded.HasCytobands())
	assert.False(t, loaded.HasGenes(), "absent gene table stays absent")
	assert.Equal(t, snap.Cytobands(), loaded.Cytobands())
}

func TestSnapshotCache_EmptyTableStaysPresent(t *testing.T) {
	sc := NewSnapshotCache(t.TempDir())
	require.NoError(t, sc.Write(NewSnapshot(nil, []Gene{}), FileFingerprint{}, FileFingerprint{}))

	loaded, err := sc.Load()
	require.NoError(t, err)
	assert.True(t, loaded.HasGenes())
	assert.Equal(t, 0, loaded.GeneCount())
}

func TestSnapshotCache_InvalidatedBySourceChange(t *testing.T) {
	bandsPath := writeFile(t, "cytoBand.txt", testCytobandTSV)
	before, err := StatFile(bandsPath)
	require.NoError(t, err)

	sc := NewSnapshotCache(t.TempDir())
	require.NoError(t, sc.Write(NewSnapshot([]Cytoband{}, nil), before, FileFingerprint{}))
	require.True(t, sc.Valid(before, FileFingerprint{}))

	require.NoError(t, os.WriteFile(bandsPath, []byte(testCytobandTSV+"chr1\t0\t10\tp36.33\tgneg\n"), 0644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(bandsPath, later, later))

	after, err := StatFile(bandsPath)
	require.NoError(t, err)
	assert.False(t, sc.Valid(after, FileFingerprint{}))
}

func TestSnapshotCache_Clear(t *testing.T) {
	sc := NewSnapshotCache(t.TempDir())
	require.NoError(t, sc.Write(NewSnapshot(nil, nil), FileFingerprint{}, FileFingerprint{}))
	require.True(t, sc.Valid(FileFingerprint{}, FileFingerprint{}))

	require.NoError(t, sc.Clear())
	assert.False(t, sc.Valid(FileFingerprint{}, FileFingerprint{}))

	_, err := sc.Load()
	assert.Error(t, err)

	assert.NoError(t, sc.Clear(), "clearing a missing cache")
}

func TestSnapshotCache_TruncatedPayload(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "reference.gob"))
	require.NoError(t, err)
	require.NoError(t, gob.NewEncoder(f).Encode(cacheHeader{Version: snapshotCacheVersion}))
	require.NoError(t, f.Close())

	sc := NewSnapshotCache(dir)
	assert.True(t, sc.Valid(FileFingerprint{}, FileFingerprint{}), "header alone matches")

	_, err = sc.Load()
	assert.Error(t, err)
}

func TestSnapshotCache_GarbageFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reference.gob"), []byte("not gob"), 0644))

	sc := NewSnapshotCache(dir)
	assert.False(t, sc.Valid(FileFingerprint{}, FileFingerprint{}))
}

func TestSnapshotCache_OtherVersionInvalid(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "reference.gob"))
	require.NoError(t, err)
	require.NoError(t, gob.NewEncoder(f).Encode(cacheHeader{Version: snapshotCacheVersion + 1}))
	require.NoError(t, f.Close())

	assert.False(t, NewSnapshotCache(dir).Valid(FileFingerprint{}, FileFingerprint{}))
}

func TestStatFile_EmptyPath(t *testing.T) {
	fp, err := StatFile("")
	require.NoError(t, err)
	assert.Equal(t, FileFingerprint{}, fp)
}
