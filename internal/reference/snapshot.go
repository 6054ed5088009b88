package reference

import "sort"

// Snapshot is the read-only reference data handed to the annotator.
// It is built once and never modified, so concurrent readers need no locking.
type Snapshot struct {
	cytobands []Cytoband
	genes     []Gene

	cytobandIndex *Index[Cytoband]
	geneIndex     *Index[Gene]
}

// NewSnapshot indexes the given tables. A nil table means the data source is
// absent; an empty non-nil table means it was loaded but holds no rows.
func NewSnapshot(cytobands []Cytoband, genes []Gene) *Snapshot {
	s := &Snapshot{}
	if cytobands != nil {
		s.cytobands = append([]Cytoband{}, cytobands...)
		s.cytobandIndex = BuildIndex(s.cytobands)
	}
	if genes != nil {
		s.genes = append([]Gene{}, genes...)
		s.geneIndex = BuildIndex(s.genes)
	}
	return s
}

// HasCytobands reports whether a cytoband table was supplied.
func (s *Snapshot) HasCytobands() bool { return s.cytobandIndex != nil }

// HasGenes reports whether a gene table was supplied.
func (s *Snapshot) HasGenes() bool { return s.geneIndex != nil }

// CytobandCount returns the number of cytoband rows.
func (s *Snapshot) CytobandCount() int { return s.cytobandIndex.Len() }

// GeneCount returns the number of gene rows.
func (s *Snapshot) GeneCount() int { return s.geneIndex.Len() }

// CytobandsOverlapping returns the labels of bands overlapping the range,
// in source-table order. Repeated labels are kept.
func (s *Snapshot) CytobandsOverlapping(chrom string, start, end int64) []string {
	bands := s.cytobandIndex.FindOverlaps(chrom, start, end)
	labels := make([]string, len(bands))
	for i, b := range bands {
		labels[i] = b.Band
	}
	return labels
}

// GenesOverlapping returns the distinct names of genes overlapping the range,
// sorted ascending.
func (s *Snapshot) GenesOverlapping(chrom string, start, end int64) []string {
	genes := s.geneIndex.FindOverlaps(chrom, start, end)
	seen := make(map[string]bool, len(genes))
	names := make([]string, 0, len(genes))
	for _, g := range genes {
		if !seen[g.Name] {
			seen[g.Name] = true
			names = append(names, g.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Cytobands returns a copy of the cytoband table in source order.
func (s *Snapshot) Cytobands() []Cytoband {
	if s.cytobands == nil {
		return nil
	}
	return append([]Cytoband{}, s.cytobands...)
}

// Genes returns a copy of the gene table in source order.
func (s *Snapshot) Genes() []Gene {
	if s.genes == nil {
		return nil
	}
	return append([]Gene{}, s.genes...)
}
