/**
 * Tesseract OCR for page images.
 *
 * Extracts word-level bounding boxes together with Tesseract's
 * block/paragraph/line metadata, which downstream line grouping uses to
 * respect the reading order Tesseract detected.
 */

package ingest

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/veridoc/pdfdiff/internal/geometry"
)

// Word is a single recognized word with its position and Tesseract
// layout metadata. Block/Paragraph/Line/WordNum are 1-indexed; zero
// means the metadata is unavailable.
type Word struct {
	Text       string
	Box        geometry.BoundingBox
	Confidence float64
	Block      int
	Paragraph  int
	Line       int
	WordNum    int
}

// TesseractOCR recognizes words on rendered page images.
type TesseractOCR struct {
	language string
}

// NewTesseractOCR creates an OCR engine for the given language hint
// (empty means Tesseract's default).
func NewTesseractOCR(language string) *TesseractOCR {
	return &TesseractOCR{language: language}
}

// RecognizeWords runs OCR over one encoded page image and returns the
// recognized words in Tesseract's detection order. Empty recognitions
// are dropped.
func (t *TesseractOCR) RecognizeWords(imageData []byte) ([]Word, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}
	if t.language != "" {
		if err := client.SetLanguage(t.language); err != nil {
			return nil, fmt.Errorf("failed to set language: %w", err)
		}
	}

	boxes, err := client.GetBoundingBoxesVerbose()
	if err != nil {
		return nil, fmt.Errorf("tesseract OCR failed: %w", err)
	}

	words := make([]Word, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		words = append(words, Word{
			Text: text,
			Box: geometry.BoundingBox{
				X:      b.Box.Min.X,
				Y:      b.Box.Min.Y,
				Width:  b.Box.Dx(),
				Height: b.Box.Dy(),
			},
			Confidence: b.Confidence,
			Block:      b.BlockNum,
			Paragraph:  b.ParNum,
			Line:       b.LineNum,
			WordNum:    b.WordNum,
		})
	}
	return words, nil
}
