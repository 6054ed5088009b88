package reference

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"

	goduckdb "github.com/marcboeker/go-duckdb"
)

// Store persists the reference tables in a DuckDB database so they can be
// imported once and reopened without re-parsing the source files.
type Store struct {
	db *sql.DB
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ensureSchema creates tables if they don't exist.
// The ord column records source-table order, which cytoband reduction depends on.
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS cytobands (
		ord BIGINT,
		chrom VARCHAR,
		start_pos BIGINT,
		end_pos BIGINT,
		band VARCHAR,
		stain VARCHAR
	)`); err != nil {
		return err
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS genes (
		ord BIGINT,
		chrom VARCHAR,
		start_pos BIGINT,
		end_pos BIGINT,
		name VARCHAR
	)`)
	return err
}

// ImportCytobands parses a cytoband file and replaces the stored table with it.
// It returns the number of rows written.
func (s *Store) ImportCytobands(path string) (int, error) {
	bands, err := LoadCytobands(path)
	if err != nil {
		return 0, err
	}
	if err := s.WriteCytobands(bands); err != nil {
		return 0, err
	}
	return len(bands), nil
}

// ImportGenes parses a gene file and replaces the stored table with it.
// It returns the number of rows written.
func (s *Store) ImportGenes(path string) (int, error) {
	genes, err := LoadGenes(path)
	if err != nil {
		return 0, err
	}
	if err := s.WriteGenes(genes); err != nil {
		return 0, err
	}
	return len(genes), nil
}

// WriteCytobands replaces the cytoband table using the Appender API.
func (s *Store) WriteCytobands(bands []Cytoband) error {
	return s.replaceTable("cytobands", len(bands), func(i int) []driver.Value {
		b := bands[i]
		return []driver.Value{int64(i), b.Chrom, b.Start, b.End, b.Band, b.Stain}
	})
}

// WriteGenes replaces the gene table using the Appender API.
func (s *Store) WriteGenes(genes []Gene) error {
	return s.replaceTable("genes", len(genes), func(i int) []driver.Value {
		g := genes[i]
		return []driver.Value{int64(i), g.Chrom, g.Start, g.End, g.Name}
	})
}

// replaceTable swaps the contents of table for n rows in one transaction,
// so a failed append leaves the previous rows in place.
func (s *Store) replaceTable(table string, n int, row func(i int) []driver.Value) error {
	ctx := context.Background()
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN TRANSACTION"); err != nil {
		return fmt.Errorf("begin %s: %w", table, err)
	}
	if err := appendRows(ctx, conn, table, n, row); err != nil {
		if _, rbErr := conn.ExecContext(ctx, "ROLLBACK"); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		return fmt.Errorf("commit %s: %w", table, err)
	}
	return nil
}

func appendRows(ctx context.Context, conn *sql.Conn, table string, n int, row func(i int) []driver.Value) error {
	if _, err := conn.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if n == 0 {
		return nil
	}

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", table)
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}

	for i := 0; i < n; i++ {
		if err := appender.AppendRow(row(i)...); err != nil {
			appender.Close()
			return fmt.Errorf("append %s row %d: %w", table, i, err)
		}
	}
	if err := appender.Close(); err != nil {
		return fmt.Errorf("flush %s: %w", table, err)
	}
	return nil
}

// Cytobands returns the stored cytoband table in source order.
func (s *Store) Cytobands() ([]Cytoband, error) {
	rows, err := s.db.Query(`SELECT chrom, start_pos, end_pos, band, stain
		FROM cytobands ORDER BY ord`)
	if err != nil {
		return nil, fmt.Errorf("query cytobands: %w", err)
	}
	defer rows.Close()

	bands := []Cytoband{}
	for rows.Next() {
		var b Cytoband
		if err := rows.Scan(&b.Chrom, &b.Start, &b.End, &b.Band, &b.Stain); err != nil {
			return nil, fmt.Errorf("scan cytoband: %w", err)
		}
		bands = append(bands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cytobands: %w", err)
	}
	return bands, nil
}

// Genes returns the stored gene table in source order.
func (s *Store) Genes() ([]Gene, error) {
	rows, err := s.db.Query(`SELECT chrom, start_pos, end_pos, name
		FROM genes ORDER BY ord`)
	if err != nil {
		return nil, fmt.Errorf("query genes: %w", err)
	}
	defer rows.Close()

	genes := []Gene{}
	for rows.Next() {
		var g Gene
		if err := rows.Scan(&g.Chrom, &g.Start, &g.End, &g.Name); err != nil {
			return nil, fmt.Errorf("scan gene: %w", err)
		}
		genes = append(genes, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genes: %w", err)
	}
	return genes, nil
}

// Counts returns the number of stored cytoband and gene rows.
func (s *Store) Counts() (cytobands, genes int64, err error) {
	if err := s.db.QueryRow("SELECT COUNT(*) FROM cytobands").Scan(&cytobands); err != nil {
		return 0, 0, fmt.Errorf("count cytobands: %w", err)
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM genes").Scan(&genes); err != nil {
		return 0, 0, fmt.Errorf("count genes: %w", err)
	}
	return cytobands, genes, nil
}

// Snapshot builds an annotation snapshot from the stored tables.
// An empty table is treated as absent.
func (s *Store) Snapshot() (*Snapshot, error) {
	bands, err := s.Cytobands()
	if err != nil {
		return nil, err
	}
	genes, err := s.Genes()
	if err != nil {
		return nil, err
	}
	if len(bands) == 0 {
		bands = nil
	}
	if len(genes) == 0 {
		genes = nil
	}
	return NewSnapshot(bands, genes), nil
}
