package cnv

import (
	"strings"

	"go.uber.org/zap"
)

// ReferenceLookup answers overlap queries against the reference tables.
// *reference.Snapshot implements it.
type ReferenceLookup interface {
	HasCytobands() bool
	HasGenes() bool
	// CytobandsOverlapping returns band labels in reference-table order.
	CytobandsOverlapping(chrom string, start, end int64) []string
	// GenesOverlapping returns distinct gene names sorted ascending.
	GenesOverlapping(chrom string, start, end int64) []string
}

// Result is the annotation of one CNV call.
type Result struct {
	Range          GenomicRange
	EventType      string   // "duplication" or "deletion"
	Zygosity       string   // as given without surrounding space, may be empty
	HGVS           string   // e.g. chr16:(?_15489724)_(16367962_?) [3]
	FullAnnotation string   // HGVS plus the cytoband line when a band overlaps
	Cytoband       string   // reduced band label, empty if none overlaps
	Genes          []string // sorted, distinct, never nil

	NoCytobandData bool // no cytoband table was supplied
	NoGeneData     bool // no gene table was supplied
}

// Annotator annotates CNV calls against an immutable reference snapshot.
type Annotator struct {
	ref    ReferenceLookup
	logger *zap.Logger
}

// NewAnnotator creates a new annotator over the given reference data.
func NewAnnotator(ref ReferenceLookup) *Annotator {
	return &Annotator{
		ref:    ref,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for debug messages.
func (a *Annotator) SetLogger(l *zap.Logger) {
	a.logger = l
}

// Annotate parses the coordinate, builds the notation and looks up the
// overlapping cytobands and genes. On failure it returns a nil result and a
// *Error.
func (a *Annotator) Annotate(coordinate, eventType, zygosity string) (*Result, error) {
	r, err := ParseCoordinate(coordinate)
	if err != nil {
		return nil, err
	}

	hgvs, eventName, err := BuildHGVS(r.Chrom, r.Start, r.End, eventType, zygosity)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Range:          r,
		EventType:      eventName,
		Zygosity:       strings.TrimSpace(zygosity),
		HGVS:           hgvs,
		FullAnnotation: hgvs,
		Genes:          []string{},
	}

	if a.ref == nil || !a.ref.HasCytobands() {
		res.NoCytobandData = true
		a.logger.Debug("no cytoband data loaded")
	} else if band, ok := ReduceCytobands(a.ref.CytobandsOverlapping(r.Chrom, r.Start, r.End)); ok {
		res.Cytoband = band
		res.FullAnnotation = hgvs + "\n(chr" + r.Chrom + band + " partial " + eventName + ")"
	}

	if a.ref == nil || !a.ref.HasGenes() {
		res.NoGeneData = true
		a.logger.Debug("no gene data loaded")
	} else if genes := a.ref.GenesOverlapping(r.Chrom, r.Start, r.End); len(genes) > 0 {
		res.Genes = genes
	}

	a.logger.Debug("annotated CNV",
		zap.String("range", r.String()),
		zap.String("event", eventName),
		zap.String("cytoband", res.Cytoband),
		zap.Int("genes", len(res.Genes)))

	return res, nil
}
