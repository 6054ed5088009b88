package reference

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadCytobands loads a UCSC cytoBand.txt file (optionally gzipped).
// Columns: chrom, chromStart, chromEnd, name, gieStain. Row order is kept.
// An empty path returns a nil table.
func LoadCytobands(path string) ([]Cytoband, error) {
	if path == "" {
		return nil, nil
	}

	var bands []Cytoband
	err := scanTable(path, 4, func(fields []string, lineNum int) error {
		start, end, err := parseSpan(fields[1], fields[2])
		if err != nil {
			return fmt.Errorf("%s:%d: %w", path, lineNum, err)
		}
		b := Cytoband{
			Chrom: fields[0],
			Start: start,
			End:   end,
			Band:  strings.TrimSpace(fields[3]),
		}
		if len(fields) > 4 {
			b.Stain = strings.TrimSpace(fields[4])
		}
		bands = append(bands, b)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load cytobands: %w", err)
	}
	if bands == nil {
		bands = []Cytoband{}
	}
	return bands, nil
}

// LoadGenes loads a BED-like gene list (optionally gzipped).
// Columns: chrom, start, end, name; extra columns are ignored.
// An empty path returns a nil table.
func LoadGenes(path string) ([]Gene, error) {
	if path == "" {
		return nil, nil
	}

	var genes []Gene
	firstRow := true
	err := scanTable(path, 4, func(fields []string, lineNum int) error {
		start, end, err := parseSpan(fields[1], fields[2])
		if err != nil {
			// The first data row may be a column header.
			if firstRow {
				firstRow = false
				return nil
			}
			return fmt.Errorf("%s:%d: %w", path, lineNum, err)
		}
		firstRow = false
		name := strings.TrimSpace(fields[3])
		if name == "" {
			return nil
		}
		genes = append(genes, Gene{Chrom: fields[0], Start: start, End: end, Name: name})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load genes: %w", err)
	}
	if genes == nil {
		genes = []Gene{}
	}
	return genes, nil
}

// scanTable calls fn for each data line with at least minFields tab-separated
// fields. Comment, track, browser and blank lines are skipped.
func scanTable(path string, minFields int, fn func(fields []string, lineNum int) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var reader io.Reader = f

	// Handle gzipped files
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	scanner := bufio.NewScanner(reader)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")

		if line == "" || strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < minFields {
			return fmt.Errorf("%s:%d: expected at least %d columns, got %d", path, lineNum, minFields, len(fields))
		}
		if err := fn(fields, lineNum); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func parseSpan(startField, endField string) (int64, int64, error) {
	start, err := strconv.ParseInt(strings.TrimSpace(startField), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start %q", startField)
	}
	end, err := strconv.ParseInt(strings.TrimSpace(endField), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid end %q", endField)
	}
	return start, end, nil
}
