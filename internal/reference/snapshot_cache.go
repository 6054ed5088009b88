package reference

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// snapshotCacheVersion is bumped whenever the cached layout changes.
const snapshotCacheVersion = 1

// FileFingerprint identifies a source table by path, size and modification time.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile fingerprints a file on disk. An empty path yields a zero fingerprint.
func StatFile(path string) (FileFingerprint, error) {
	if path == "" {
		return FileFingerprint{}, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{Path: path, Size: info.Size(), ModTime: info.ModTime()}, nil
}

func (f FileFingerprint) matches(other FileFingerprint) bool {
	return f.Path == other.Path && f.Size == other.Size && f.ModTime.Equal(other.ModTime)
}

// SnapshotCache keeps parsed reference tables in {dir}/reference.gob.
// The file holds a cacheHeader followed by the snapshotData payload, so
// validity can be checked without decoding the tables.
type SnapshotCache struct {
	dir string
}

type cacheHeader struct {
	Version   int
	Cytobands FileFingerprint
	Genes     FileFingerprint
}

// snapshotData is the gob payload. The Has flags keep an absent table apart
// from an empty one.
type snapshotData struct {
	HasCytobands bool
	HasGenes     bool
	Cytobands    []Cytoband
	Genes        []Gene
}

// NewSnapshotCache creates a snapshot cache for the given directory.
func NewSnapshotCache(dir string) *SnapshotCache {
	return &SnapshotCache{dir: dir}
}

func (sc *SnapshotCache) path() string {
	return filepath.Join(sc.dir, "reference.gob")
}

// Valid reports whether the cache was written from the given source files.
func (sc *SnapshotCache) Valid(cytobands, genes FileFingerprint) bool {
	f, err := os.Open(sc.path())
	if err != nil {
		return false
	}
	defer f.Close()

	var hdr cacheHeader
	if err := gob.NewDecoder(f).Decode(&hdr); err != nil {
		return false
	}
	return hdr.Version == snapshotCacheVersion &&
		hdr.Cytobands.matches(cytobands) &&
		hdr.Genes.matches(genes)
}

// Load decodes the cached tables into a new snapshot.
func (sc *SnapshotCache) Load() (*Snapshot, error) {
	f, err := os.Open(sc.path())
	if err != nil {
		return nil, fmt.Errorf("open snapshot cache: %w", err)
	}
	defer f.Close()

	dec := gob.NewDecoder(f)
	var hdr cacheHeader
	if err := dec.Decode(&hdr); err != nil {
		return nil, fmt.Errorf("decode snapshot cache header: %w", err)
	}
	if hdr.Version != snapshotCacheVersion {
		return nil, fmt.Errorf("snapshot cache version %d, want %d", hdr.Version, snapshotCacheVersion)
	}

	var data snapshotData
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("decode snapshot cache: %w", err)
	}

	var bands []Cytoband
	if data.HasCytobands {
		bands = append([]Cytoband{}, data.Cytobands...)
	}
	var genes []Gene
	if data.HasGenes {
		genes = append([]Gene{}, data.Genes...)
	}
	return NewSnapshot(bands, genes), nil
}

// Write stores the snapshot tables with the fingerprints of their sources.
// The file is replaced atomically.
func (sc *SnapshotCache) Write(s *Snapshot, cytobands, genes FileFingerprint) error {
	if err := os.MkdirAll(sc.dir, 0755); err != nil {
		return fmt.Errorf("create snapshot cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(sc.dir, "reference.gob.*")
	if err != nil {
		return fmt.Errorf("create snapshot cache: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := gob.NewEncoder(tmp)
	hdr := cacheHeader{Version: snapshotCacheVersion, Cytobands: cytobands, Genes: genes}
	data := snapshotData{
		HasCytobands: s.HasCytobands(),
		HasGenes:     s.HasGenes(),
		Cytobands:    s.Cytobands(),
		Genes:        s.Genes(),
	}
	if err := enc.Encode(hdr); err != nil {
		tmp.Close()
		return fmt.Errorf("encode snapshot cache header: %w", err)
	}
	if err := enc.Encode(data); err != nil {
		tmp.Close()
		return fmt.Errorf("encode snapshot cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot cache: %w", err)
	}
	return os.Rename(tmp.Name(), sc.path())
}

// Clear removes the cache file. A missing file is not an error.
func (sc *SnapshotCache) Clear() error {
	if err := os.Remove(sc.path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear snapshot cache: %w", err)
	}
	return nil
}
