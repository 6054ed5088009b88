package reference

import "sort"

// Overlaps returns the records on chrom whose closed span intersects [start, end],
// in input order. Chromosome names are compared without a "chr" prefix.
func Overlaps[R Record](records []R, chrom string, start, end int64) []R {
	chrom = NormalizeChrom(chrom)
	var result []R
	for _, r := range records {
		if NormalizeChrom(r.Chromosome()) != chrom {
			continue
		}
		rs, re := r.Span()
		if rs <= end && re >= start {
			result = append(result, r)
		}
	}
	return result
}

// Index provides O(log n + k) range overlap queries using a sorted-slice approach,
// one slice per normalized chromosome. Records are indexed once and never
// modified after build. Query results come back in source order.
type Index[R Record] struct {
	trees map[string]*intervalTree[R]
	size  int
}

type intervalTree[R Record] struct {
	intervals []interval[R]
	maxEnd    []int64 // maxEnd[i] = max(end) for intervals[:i+1]
}

type interval[R Record] struct {
	start  int64
	end    int64
	ord    int // position in the source table
	record R
}

// BuildIndex creates an index from records. The slice order is taken as the
// source-table order.
func BuildIndex[R Record](records []R) *Index[R] {
	byChrom := make(map[string][]interval[R])
	for i, r := range records {
		s, e := r.Span()
		chrom := NormalizeChrom(r.Chromosome())
		byChrom[chrom] = append(byChrom[chrom], interval[R]{start: s, end: e, ord: i, record: r})
	}

	idx := &Index[R]{trees: make(map[string]*intervalTree[R], len(byChrom)), size: len(records)}
	for chrom, intervals := range byChrom {
		idx.trees[chrom] = buildTree(intervals)
	}
	return idx
}

func buildTree[R Record](intervals []interval[R]) *intervalTree[R] {
	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].start < intervals[j].start
	})

	// Prefix-max array: maxEnd[i] = max(end) for intervals[:i+1]
	maxEnd := make([]int64, len(intervals))
	maxEnd[0] = intervals[0].end
	for i := 1; i < len(intervals); i++ {
		maxEnd[i] = intervals[i].end
		if maxEnd[i-1] > maxEnd[i] {
			maxEnd[i] = maxEnd[i-1]
		}
	}

	return &intervalTree[R]{intervals: intervals, maxEnd: maxEnd}
}

// Len returns the number of indexed records.
func (x *Index[R]) Len() int {
	if x == nil {
		return 0
	}
	return x.size
}

// FindOverlaps returns all records on chrom whose [start, end] intersects the
// query range, ordered as in the source table.
func (x *Index[R]) FindOverlaps(chrom string, start, end int64) []R {
	if x == nil {
		return nil
	}
	t, ok := x.trees[NormalizeChrom(chrom)]
	if !ok {
		return nil
	}

	// hi is the first index with start > end; candidates are [0, hi).
	hi := sort.Search(len(t.intervals), func(i int) bool {
		return t.intervals[i].start > end
	})

	var hits []interval[R]
	for i := hi - 1; i >= 0; i-- {
		// No interval in [0, i] reaches the query start.
		if t.maxEnd[i] < start {
			break
		}
		if t.intervals[i].end >= start {
			hits = append(hits, t.intervals[i])
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].ord < hits[j].ord })

	result := make([]R, len(hits))
	for i, h := range hits {
		result[i] = h.record
	}
	return result
}
