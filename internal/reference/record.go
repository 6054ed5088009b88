// Package reference holds the cytoband and gene tables used for CNV annotation.
package reference

import "strings"

// Record is a reference row with a chromosome and a closed [start, end] span.
type Record interface {
	Chromosome() string
	Span() (start, end int64)
}

// Cytoband is one row of a UCSC-style cytoband map.
type Cytoband struct {
	Chrom string // Chromosome as written in the source (e.g., "chr16")
	Start int64  // Band start
	End   int64  // Band end
	Band  string // Band label (e.g., "p13.11")
	Stain string // Giemsa stain (e.g., "gneg", "acen")
}

// Chromosome returns the chromosome name as stored.
func (c Cytoband) Chromosome() string { return c.Chrom }

// Span returns the band boundaries.
func (c Cytoband) Span() (int64, int64) { return c.Start, c.End }

// Gene is one row of a gene coordinate list.
type Gene struct {
	Chrom string // Chromosome as written in the source
	Start int64  // Gene start
	End   int64  // Gene end (inclusive)
	Name  string // Gene symbol (e.g., KRAS)
}

// Chromosome returns the chromosome name as stored.
func (g Gene) Chromosome() string { return g.Chrom }

// Span returns the gene boundaries.
func (g Gene) Span() (int64, int64) { return g.Start, g.End }

// NormalizeChrom returns the chromosome name without "chr" prefix.
func NormalizeChrom(chrom string) string {
	return strings.TrimPrefix(chrom, "chr")
}
