package ingest

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// InspectPDF opens the file structurally and returns its page count.
// Used to reject non-PDF uploads and empty documents before paying for
// rasterization and OCR.
func InspectPDF(path string) (int, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("not a readable PDF: %w", err)
	}
	defer f.Close()

	n := reader.NumPage()
	if n < 1 {
		return 0, fmt.Errorf("PDF has no pages")
	}
	return n, nil
}
