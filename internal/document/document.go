/**
 * Document model produced by ingestion.
 *
 * A Page is an ordered sequence of OCR-recognized text lines in reading
 * order, each with a pixel bounding box. Pages are built once by the
 * ingest package and treated as read-only by everything downstream.
 */

package document

import "github.com/veridoc/pdfdiff/internal/geometry"

// TextLine is one recognized row of text on a page.
type TextLine struct {
	Text  string               `json:"text"`
	Box   geometry.BoundingBox `json:"bounding_box"`
	Index int                  `json:"line_number"`
}

// Page holds the OCR output for a single page. Number is 1-indexed.
type Page struct {
	Number      int        `json:"page_number"`
	Lines       []TextLine `json:"text_blocks"`
	ImageWidth  int        `json:"image_width"`
	ImageHeight int        `json:"image_height"`
}

// LineTexts returns the page's line texts in reading order.
func (p *Page) LineTexts() []string {
	out := make([]string, len(p.Lines))
	for i, l := range p.Lines {
		out[i] = l.Text
	}
	return out
}
