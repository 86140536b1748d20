/**
 * PDF ingestion pipeline.
 *
 * Turns a PDF file into spatially annotated pages: rasterize each
 * page, recognize words with Tesseract, group words into lines,
 * clean OCR artifacts and order lines in reading order.
 */

package ingest

import (
	"context"
	"fmt"

	"github.com/veridoc/pdfdiff/internal/document"
	"github.com/veridoc/pdfdiff/internal/logging"
)

// Options controls the ingestion pipeline.
type Options struct {
	// DPI is the rasterization resolution.
	DPI int

	// CleanStrayChars drops isolated single-letter artifacts that
	// Tesseract tends to produce on scanned documents.
	CleanStrayChars bool

	// Language is the Tesseract language code.
	Language string

	// PdftoppmPath is the pdftoppm binary; empty uses PATH lookup.
	PdftoppmPath string

	// TempDir holds intermediate page images; empty uses the system default.
	TempDir string

	// Lines controls word-to-line grouping and spatial ordering.
	Lines LineOptions
}

// DefaultOptions returns pipeline defaults suitable for scanned documents.
func DefaultOptions() Options {
	return Options{
		DPI:             300,
		CleanStrayChars: true,
		Language:        "eng",
		Lines:           DefaultLineOptions(),
	}
}

// Ingestor converts PDF files into documents ready for comparison.
type Ingestor struct {
	opts       Options
	rasterizer *Rasterizer
	ocr        *TesseractOCR
	logger     *logging.Logger
}

// NewIngestor creates an ingestor with the given options.
func NewIngestor(opts Options, logger *logging.Logger) *Ingestor {
	if opts.DPI <= 0 {
		opts.DPI = 300
	}
	if opts.Language == "" {
		opts.Language = "eng"
	}
	if logger == nil {
		logger = logging.NewLogger("ingest")
	}
	return &Ingestor{
		opts: opts,
		rasterizer: &Rasterizer{
			PdftoppmPath: opts.PdftoppmPath,
			TempDir:      opts.TempDir,
		},
		ocr:    NewTesseractOCR(opts.Language),
		logger: logger,
	}
}

// ProcessPDF ingests a PDF and returns one page per PDF page, in order.
// Pages that produce no recognizable text yield an empty page rather
// than being dropped, so page numbering stays aligned with the file.
func (in *Ingestor) ProcessPDF(ctx context.Context, pdfPath string) ([]document.Page, error) {
	pageCount, err := InspectPDF(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect PDF %s: %w", pdfPath, err)
	}

	in.logger.Info("ingesting PDF", "path", pdfPath, "pages", pageCount, "dpi", in.opts.DPI)

	images, err := in.rasterizer.RenderPages(ctx, pdfPath, in.opts.DPI)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize %s: %w", pdfPath, err)
	}

	pages := make([]document.Page, 0, len(images))
	for _, img := range images {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := in.processPage(img)
		if err != nil {
			return nil, fmt.Errorf("failed to process page %d of %s: %w", img.Number, pdfPath, err)
		}
		pages = append(pages, page)
	}

	return pages, nil
}

// processPage runs OCR and line assembly for a single rendered page.
func (in *Ingestor) processPage(img PageImage) (document.Page, error) {
	words, err := in.ocr.RecognizeWords(img.Data)
	if err != nil {
		return document.Page{}, err
	}

	lines := GroupWordsIntoLines(words, in.opts.Lines)
	if in.opts.CleanStrayChars {
		lines = CleanStrayCharacters(lines)
	}
	lines = SortLinesSpatially(lines, in.opts.Lines)

	in.logger.Debug("page ingested", "page", img.Number, "words", len(words), "lines", len(lines))

	return document.Page{
		Number:      img.Number,
		Lines:       lines,
		ImageWidth:  img.Width,
		ImageHeight: img.Height,
	}, nil
}
