package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridoc/pdfdiff/internal/document"
	"github.com/veridoc/pdfdiff/internal/geometry"
)

func makePage(number int, lines ...document.TextLine) *document.Page {
	for i := range lines {
		lines[i].Index = i
	}
	return &document.Page{Number: number, Lines: lines}
}

func line(text string, x, y int) document.TextLine {
	return document.TextLine{
		Text: text,
		Box:  geometry.BoundingBox{X: x, Y: y, Width: 10 * len(text), Height: 20},
	}
}

func TestComparePagesIdentical(t *testing.T) {
	a := makePage(1, line("The quick brown fox", 50, 100))
	b := makePage(1, line("The quick brown fox", 50, 100))
	assert.Empty(t, ComparePages(a, b, DefaultGroupConfig()))
}

func TestComparePagesBothNil(t *testing.T) {
	assert.Nil(t, ComparePages(nil, nil, DefaultGroupConfig()))
}

func TestComparePagesMissingSide(t *testing.T) {
	p := makePage(3,
		line("first line", 50, 100),
		line("second line", 50, 130),
	)

	inserts := ComparePages(nil, p, DefaultGroupConfig())
	require.Len(t, inserts, 2)
	for i, rec := range inserts {
		assert.Equal(t, OpInsert, rec.Op)
		assert.Equal(t, 0, rec.PageA)
		assert.Equal(t, 3, rec.PageB)
		assert.Equal(t, p.Lines[i].Text, rec.TextB)
		assert.Empty(t, rec.TextA)
		assert.Empty(t, rec.BoxesA)
		require.Len(t, rec.BoxesB, 1)
		assert.Equal(t, p.Lines[i].Box, rec.BoxesB[0])
	}

	deletes := ComparePages(p, nil, DefaultGroupConfig())
	require.Len(t, deletes, 2)
	for i, rec := range deletes {
		assert.Equal(t, OpDelete, rec.Op)
		assert.Equal(t, 3, rec.PageA)
		assert.Equal(t, 0, rec.PageB)
		assert.Equal(t, p.Lines[i].Text, rec.TextA)
		assert.Empty(t, rec.BoxesB)
	}
}

// A paired line rewrite whose word diff is a pure insertion reports
// insert, but keeps both texts and boxes.
func TestComparePagesInferredInsert(t *testing.T) {
	a := makePage(1, line("Hello this is Michael", 50, 100))
	b := makePage(1, line("Hello this is not Michael", 50, 100))

	records := ComparePages(a, b, DefaultGroupConfig())
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, OpInsert, rec.Op)
	assert.Equal(t, 1, rec.PageA)
	assert.Equal(t, 1, rec.PageB)
	assert.Equal(t, "Hello this is Michael", rec.TextA)
	assert.Equal(t, "Hello this is not Michael", rec.TextB)
	assert.Len(t, rec.BoxesA, 1)
	assert.Len(t, rec.BoxesB, 1)
	assert.NotEmpty(t, rec.Unified)
	require.Len(t, rec.Segments, 3)
	assert.Equal(t, "not ", rec.Segments[1].TextB)
}

func TestComparePagesReplacedWord(t *testing.T) {
	a := makePage(2, line("Vanilla extract", 50, 100))
	b := makePage(2, line("Chocolate extract", 50, 100))

	records := ComparePages(a, b, DefaultGroupConfig())
	require.Len(t, records, 1)
	assert.Equal(t, OpReplace, records[0].Op)
	assert.Equal(t, 2, records[0].PageA)
	assert.Equal(t, 2, records[0].PageB)
}

// Inside a replace range the shorter side pairs positionally; the
// longer side's extra lines degrade to plain insert records.
func TestComparePagesUnevenReplace(t *testing.T) {
	a := makePage(1,
		line("header", 50, 40),
		line("old body", 50, 100),
	)
	b := makePage(1,
		line("header", 50, 40),
		line("new body", 50, 100),
		line("appendix", 50, 700),
	)

	records := ComparePages(a, b, DefaultGroupConfig())
	require.Len(t, records, 2)
	assert.Equal(t, OpReplace, records[0].Op)
	assert.Equal(t, "old body", records[0].TextA)
	assert.Equal(t, "new body", records[0].TextB)
	assert.Equal(t, OpInsert, records[1].Op)
	assert.Equal(t, "appendix", records[1].TextB)
	assert.Empty(t, records[1].TextA)
}

func TestGroupingMergesAdjacentRecords(t *testing.T) {
	a := makePage(1,
		line("Line one", 50, 100),
		line("Line two", 50, 130),
	)
	b := makePage(1,
		line("First line", 50, 100),
		line("Second line", 50, 130),
	)

	records := ComparePages(a, b, DefaultGroupConfig())
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Line one\nLine two", rec.TextA)
	assert.Equal(t, "First line\nSecond line", rec.TextB)
	assert.Len(t, rec.BoxesA, 2)
	assert.Len(t, rec.BoxesB, 2)
	assert.NotEmpty(t, rec.Segments)
	assert.NotEmpty(t, rec.Unified)
}

func TestGroupingRespectsVerticalThreshold(t *testing.T) {
	a := makePage(1,
		line("Line one", 50, 100),
		line("Line two", 50, 300),
	)
	b := makePage(1,
		line("First line", 50, 100),
		line("Second line", 50, 300),
	)

	// 200px apart vertically, over the 100px threshold: no merge.
	records := ComparePages(a, b, DefaultGroupConfig())
	require.Len(t, records, 2)
	assert.Equal(t, "Line one", records[0].TextA)
	assert.Equal(t, "Line two", records[1].TextA)
}

func TestGroupingRespectsHorizontalThreshold(t *testing.T) {
	// Same rows but a second column 500px to the right.
	a := makePage(1,
		line("Line one", 50, 100),
		line("Line two", 550, 130),
	)
	b := makePage(1,
		line("First line", 50, 100),
		line("Second line", 550, 130),
	)

	records := ComparePages(a, b, DefaultGroupConfig())
	require.Len(t, records, 2)
}

// A delete may merge with a neighboring replace; grouping is spatial,
// not operation-keyed. Reflow that moves a word across a line break
// then re-diffs as one record.
func TestGroupingMergesAcrossOperations(t *testing.T) {
	a := makePage(1,
		line("chopped fresh parsley", 50, 100),
		line("leaves", 50, 130),
	)
	b := makePage(1,
		line("chopped fresh parsley leaves", 50, 100),
	)

	records := ComparePages(a, b, DefaultGroupConfig())
	require.Len(t, records, 1)
	assert.Equal(t, "chopped fresh parsley\nleaves", records[0].TextA)
	assert.Equal(t, "chopped fresh parsley leaves", records[0].TextB)
}

func TestCompareDocumentsPageCountMismatch(t *testing.T) {
	pagesA := []document.Page{
		*makePage(1, line("shared content", 50, 100)),
		*makePage(2, line("only in A", 50, 100)),
	}
	pagesB := []document.Page{
		*makePage(1, line("shared content", 50, 100)),
	}

	report := CompareDocuments(pagesA, pagesB, "a.pdf", "b.pdf", DefaultGroupConfig())
	assert.Equal(t, "a.pdf", report.DocA)
	assert.Equal(t, "b.pdf", report.DocB)
	assert.Equal(t, 2, report.TotalPagesA)
	assert.Equal(t, 1, report.TotalPagesB)

	require.Len(t, report.Records, 1)
	rec := report.Records[0]
	assert.Equal(t, OpDelete, rec.Op)
	assert.Equal(t, 2, rec.PageA)
	assert.Equal(t, 0, rec.PageB)
	assert.Equal(t, "only in A", rec.TextA)
}

// Pages pair strictly by index. A page inserted at the front shifts
// every later pairing instead of re-synchronizing.
func TestCompareDocumentsPositionalPairing(t *testing.T) {
	pagesA := []document.Page{
		*makePage(1, line("chapter one", 50, 100)),
	}
	pagesB := []document.Page{
		*makePage(1, line("preface", 50, 100)),
		*makePage(2, line("chapter one", 50, 100)),
	}

	report := CompareDocuments(pagesA, pagesB, "a.pdf", "b.pdf", DefaultGroupConfig())
	require.Len(t, report.Records, 2)
	// Page 1 of A diffs against the new preface, not its true counterpart.
	assert.Equal(t, 1, report.Records[0].PageA)
	assert.Equal(t, 1, report.Records[0].PageB)
	assert.Equal(t, OpInsert, report.Records[1].Op)
	assert.Equal(t, 0, report.Records[1].PageA)
	assert.Equal(t, 2, report.Records[1].PageB)
}

func TestClosestLine(t *testing.T) {
	candidates := []string{"mix the batter", "preheat the oven", "grease the pan"}

	idx, ok := ClosestLine("preheat oven", candidates, DefaultSimilarityThreshold)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = ClosestLine("zzzzzz", candidates, DefaultSimilarityThreshold)
	assert.False(t, ok)

	_, ok = ClosestLine("anything", nil, DefaultSimilarityThreshold)
	assert.False(t, ok)
}
