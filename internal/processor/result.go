/**
 * Wire representation of a comparison report.
 *
 * CompareResult is what the API, worker and CLI all serialize. Fields
 * that are absent on one side of a diff item are rendered as JSON null
 * rather than zero values.
 */

package processor

import (
	"github.com/veridoc/pdfdiff/internal/diff"
	"github.com/veridoc/pdfdiff/internal/geometry"
)

// CompareResult is the JSON shape of a finished comparison.
type CompareResult struct {
	PDFAPath         string     `json:"pdf_a_path"`
	PDFBPath         string     `json:"pdf_b_path"`
	TotalPagesA      int        `json:"total_pages_a"`
	TotalPagesB      int        `json:"total_pages_b"`
	TotalDifferences int        `json:"total_differences"`
	DiffItems        []DiffItem `json:"diff_items"`
}

// DiffItem is one difference record on the wire.
type DiffItem struct {
	Operation      string                 `json:"operation"`
	PageA          *int                   `json:"page_a"`
	PageB          *int                   `json:"page_b"`
	TextA          *string                `json:"text_a"`
	TextB          *string                `json:"text_b"`
	BoundingBoxesA []geometry.BoundingBox `json:"bounding_boxes_a"`
	BoundingBoxesB []geometry.BoundingBox `json:"bounding_boxes_b"`
	UnifiedDiff    string                 `json:"unified_diff,omitempty"`
	CharDiffs      []CharDiff             `json:"char_diffs,omitempty"`
}

// CharDiff is one word-level segment within a replace item.
type CharDiff struct {
	Operation string `json:"operation"`
	TextA     string `json:"text_a"`
	TextB     string `json:"text_b"`
	StartA    int    `json:"start_a"`
	EndA      int    `json:"end_a"`
	StartB    int    `json:"start_b"`
	EndB      int    `json:"end_b"`
}

// BuildResult converts an internal report into its wire form.
func BuildResult(report *diff.Report) *CompareResult {
	result := &CompareResult{
		PDFAPath:         report.DocA,
		PDFBPath:         report.DocB,
		TotalPagesA:      report.TotalPagesA,
		TotalPagesB:      report.TotalPagesB,
		TotalDifferences: len(report.Records),
		DiffItems:        make([]DiffItem, 0, len(report.Records)),
	}

	for _, rec := range report.Records {
		item := DiffItem{
			Operation:      string(rec.Op),
			PageA:          optionalPage(rec.PageA),
			PageB:          optionalPage(rec.PageB),
			TextA:          optionalText(rec.TextA),
			TextB:          optionalText(rec.TextB),
			BoundingBoxesA: rec.BoxesA,
			BoundingBoxesB: rec.BoxesB,
			UnifiedDiff:    rec.Unified,
		}
		for _, seg := range rec.Segments {
			item.CharDiffs = append(item.CharDiffs, CharDiff{
				Operation: string(seg.Op),
				TextA:     seg.TextA,
				TextB:     seg.TextB,
				StartA:    seg.StartA,
				EndA:      seg.EndA,
				StartB:    seg.StartB,
				EndB:      seg.EndB,
			})
		}
		result.DiffItems = append(result.DiffItems, item)
	}

	return result
}

// optionalPage maps the absent-page sentinel to JSON null.
func optionalPage(page int) *int {
	if page == 0 {
		return nil
	}
	return &page
}

// optionalText maps the empty string to JSON null.
func optionalText(text string) *string {
	if text == "" {
		return nil
	}
	return &text
}
