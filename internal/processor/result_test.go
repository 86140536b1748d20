package processor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridoc/pdfdiff/internal/diff"
	"github.com/veridoc/pdfdiff/internal/document"
	"github.com/veridoc/pdfdiff/internal/geometry"
)

func TestBuildResultAbsentSidesAreNull(t *testing.T) {
	pagesA := []document.Page{{
		Number: 1,
		Lines: []document.TextLine{{
			Text: "only in A",
			Box:  geometry.BoundingBox{X: 50, Y: 100, Width: 90, Height: 20},
		}},
	}}

	report := diff.CompareDocuments(pagesA, nil, "a.pdf", "b.pdf", diff.DefaultGroupConfig())
	result := BuildResult(report)

	assert.Equal(t, "a.pdf", result.PDFAPath)
	assert.Equal(t, "b.pdf", result.PDFBPath)
	assert.Equal(t, 1, result.TotalPagesA)
	assert.Equal(t, 0, result.TotalPagesB)
	assert.Equal(t, 1, result.TotalDifferences)
	require.Len(t, result.DiffItems, 1)

	item := result.DiffItems[0]
	assert.Equal(t, "delete", item.Operation)
	require.NotNil(t, item.PageA)
	assert.Equal(t, 1, *item.PageA)
	assert.Nil(t, item.PageB)
	require.NotNil(t, item.TextA)
	assert.Equal(t, "only in A", *item.TextA)
	assert.Nil(t, item.TextB)

	// The absent side must serialize as JSON null, not a zero value.
	payload, err := json.Marshal(item)
	require.NoError(t, err)
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &raw))
	assert.Nil(t, raw["page_b"])
	assert.Nil(t, raw["text_b"])
}

func TestBuildResultCarriesSegments(t *testing.T) {
	pagesA := []document.Page{{
		Number: 1,
		Lines: []document.TextLine{{
			Text: "Hello this is Michael",
			Box:  geometry.BoundingBox{X: 50, Y: 100, Width: 200, Height: 20},
		}},
	}}
	pagesB := []document.Page{{
		Number: 1,
		Lines: []document.TextLine{{
			Text: "Hello this is Tabatha",
			Box:  geometry.BoundingBox{X: 50, Y: 100, Width: 200, Height: 20},
		}},
	}}

	result := BuildResult(diff.CompareDocuments(pagesA, pagesB, "a.pdf", "b.pdf", diff.DefaultGroupConfig()))
	require.Len(t, result.DiffItems, 1)

	item := result.DiffItems[0]
	assert.Equal(t, "replace", item.Operation)
	assert.NotEmpty(t, item.UnifiedDiff)
	require.Len(t, item.CharDiffs, 2)
	assert.Equal(t, "equal", item.CharDiffs[0].Operation)
	assert.Equal(t, "replace", item.CharDiffs[1].Operation)
	assert.Equal(t, "Michael", item.CharDiffs[1].TextA)
	assert.Equal(t, "Tabatha", item.CharDiffs[1].TextB)
}

func TestBuildResultEmptyReport(t *testing.T) {
	result := BuildResult(diff.CompareDocuments(nil, nil, "a.pdf", "b.pdf", diff.DefaultGroupConfig()))
	assert.Equal(t, 0, result.TotalDifferences)
	assert.NotNil(t, result.DiffItems)
	assert.Empty(t, result.DiffItems)
}
