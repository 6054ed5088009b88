// Package cnv builds HGVS-like notation and cytoband/gene annotations for
// copy-number variants given as a single coordinate range.
package cnv

import (
	"regexp"
	"strconv"
	"strings"
)

var coordinatePattern = regexp.MustCompile(`^(chr)?(\d+|X|Y|M|MT):(\d+)-(\d+)$`)

// GenomicRange is a parsed coordinate range.
type GenomicRange struct {
	Chrom string // Chromosome without "chr" prefix, as captured
	Start int64  // 1-based, inclusive
	End   int64  // inclusive, always > Start
}

// ParseCoordinate parses text of the form [chr]CHROM:START-END.
// Surrounding whitespace is ignored. Matching is case-sensitive.
func ParseCoordinate(text string) (GenomicRange, error) {
	m := coordinatePattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return GenomicRange{}, &Error{Kind: KindMalformedCoordinate, Input: text}
	}

	start, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return GenomicRange{}, &Error{Kind: KindMalformedCoordinate, Input: text}
	}
	end, err := strconv.ParseInt(m[4], 10, 64)
	if err != nil {
		return GenomicRange{}, &Error{Kind: KindMalformedCoordinate, Input: text}
	}

	if start >= end {
		return GenomicRange{}, &Error{Kind: KindInvalidRange, Input: text, Start: start, End: end}
	}

	return GenomicRange{Chrom: m[2], Start: start, End: end}, nil
}

// String formats the range as chrCHROM:START-END.
func (r GenomicRange) String() string {
	return "chr" + r.Chrom + ":" + strconv.FormatInt(r.Start, 10) + "-" + strconv.FormatInt(r.End, 10)
}
