package reference

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geneNames(genes []Gene) []string {
	names := make([]string, len(genes))
	for i, g := range genes {
		names[i] = g.Name
	}
	return names
}

func TestBuildIndex_Empty(t *testing.T) {
	idx := BuildIndex[Gene](nil)
	assert.Empty(t, idx.FindOverlaps("1", 100, 200))
	assert.Equal(t, 0, idx.Len())
}

func TestIndex_NilSafe(t *testing.T) {
	var idx *Index[Gene]
	assert.Empty(t, idx.FindOverlaps("1", 100, 200))
	assert.Equal(t, 0, idx.Len())
}

func TestIndex_ClosedBoundaries(t *testing.T) {
	idx := BuildIndex([]Gene{{Chrom: "1", Start: 100, End: 200, Name: "A"}})

	assert.Len(t, idx.FindOverlaps("1", 150, 160), 1, "contained")
	assert.Len(t, idx.FindOverlaps("1", 50, 100), 1, "query end touches record start")
	assert.Len(t, idx.FindOverlaps("1", 200, 300), 1, "query start touches record end")
	assert.Len(t, idx.FindOverlaps("1", 10, 1000), 1, "query contains record")
	assert.Empty(t, idx.FindOverlaps("1", 10, 99), "before start")
	assert.Empty(t, idx.FindOverlaps("1", 201, 300), "after end")
}

func TestIndex_PointRecordTouchingBoundary(t *testing.T) {
	idx := BuildIndex([]Gene{{Chrom: "1", Start: 500, End: 500, Name: "P"}})

	assert.Len(t, idx.FindOverlaps("1", 100, 500), 1)
	assert.Len(t, idx.FindOverlaps("1", 500, 900), 1)
	assert.Empty(t, idx.FindOverlaps("1", 501, 900))
}

func TestIndex_ChromPrefixNormalized(t *testing.T) {
	idx := BuildIndex([]Gene{
		{Chrom: "chr16", Start: 100, End: 200, Name: "A"},
		{Chrom: "16", Start: 150, End: 250, Name: "B"},
		{Chrom: "chr1", Start: 100, End: 200, Name: "C"},
	})

	assert.Equal(t, []string{"A", "B"}, geneNames(idx.FindOverlaps("16", 100, 300)))
	assert.Equal(t, []string{"A", "B"}, geneNames(idx.FindOverlaps("chr16", 100, 300)))
	assert.Equal(t, []string{"C"}, geneNames(idx.FindOverlaps("chr1", 100, 300)))
	assert.Empty(t, idx.FindOverlaps("X", 100, 300))
}

func TestIndex_SourceOrderPreserved(t *testing.T) {
	// Source order deliberately differs from start order.
	genes := []Gene{
		{Chrom: "1", Start: 300, End: 400, Name: "third"},
		{Chrom: "1", Start: 100, End: 200, Name: "first"},
		{Chrom: "1", Start: 200, End: 300, Name: "second"},
	}
	idx := BuildIndex(genes)

	assert.Equal(t, []string{"third", "first", "second"}, geneNames(idx.FindOverlaps("1", 0, 1000)))
}

func TestIndex_LongIntervalBeforeShortOnes(t *testing.T) {
	// The long interval starts first, so pruning must look at the running max end.
	genes := []Gene{
		{Chrom: "1", Start: 0, End: 1000, Name: "long"},
		{Chrom: "1", Start: 10, End: 20, Name: "short1"},
		{Chrom: "1", Start: 30, End: 40, Name: "short2"},
	}
	idx := BuildIndex(genes)

	results := idx.FindOverlaps("1", 500, 600)
	require.Len(t, results, 1)
	assert.Equal(t, "long", results[0].Name)
}

func TestIndex_MatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	chroms := []string{"1", "chr1", "2", "X"}

	var genes []Gene
	for i := 0; i < 300; i++ {
		start := rng.Int63n(10000)
		genes = append(genes, Gene{
			Chrom: chroms[rng.Intn(len(chroms))],
			Start: start,
			End:   start + rng.Int63n(800),
			Name:  string(rune('A' + i%26)),
		})
	}
	idx := BuildIndex(genes)

	for q := 0; q < 500; q++ {
		start := rng.Int63n(11000)
		end := start + rng.Int63n(1500)
		chrom := chroms[rng.Intn(len(chroms))]

		linear := Overlaps(genes, chrom, start, end)
		indexed := idx.FindOverlaps(chrom, start, end)

		if len(linear) == 0 {
			assert.Empty(t, indexed, "chrom=%s [%d,%d]", chrom, start, end)
			continue
		}
		assert.Equal(t, linear, indexed, "chrom=%s [%d,%d]", chrom, start, end)
	}
}

func TestOverlaps_Linear(t *testing.T) {
	bands := []Cytoband{
		{Chrom: "chr16", Start: 0, End: 100, Band: "p13.3"},
		{Chrom: "chr16", Start: 100, End: 200, Band: "p13.2"},
		{Chrom: "chr16", Start: 200, End: 300, Band: "p13.13"},
		{Chrom: "chr17", Start: 0, End: 300, Band: "p13.3"},
	}

	got := Overlaps(bands, "16", 150, 200)
	require.Len(t, got, 2)
	assert.Equal(t, "p13.2", got[0].Band)
	assert.Equal(t, "p13.13", got[1].Band)

	assert.Empty(t, Overlaps(bands, "18", 0, 1000))
	assert.Empty(t, Overlaps[Cytoband](nil, "16", 0, 1000))
}
