/**
 * PDF rasterization via poppler's pdftoppm.
 *
 * Pages are rendered to PNG at the requested DPI in a per-call temp
 * directory that is removed when rendering finishes. Rendering shells
 * out to pdftoppm because OCR needs pixel-accurate page images and
 * the rest of the stack only handles PDFs structurally.
 */

package ingest

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// PageImage is one rendered page.
type PageImage struct {
	Number int // 1-indexed
	Data   []byte
	Width  int
	Height int
}

// Rasterizer renders PDF pages to images.
type Rasterizer struct {
	// PdftoppmPath is the pdftoppm binary; defaults to "pdftoppm" on PATH.
	PdftoppmPath string
	// TempDir is where per-call render directories are created; empty
	// means the system default.
	TempDir string
}

// RenderPages rasterizes every page of the PDF at the given DPI, in
// page order.
func (r *Rasterizer) RenderPages(ctx context.Context, pdfPath string, dpi int) ([]PageImage, error) {
	binary := r.PdftoppmPath
	if binary == "" {
		binary = "pdftoppm"
	}

	dir, err := os.MkdirTemp(r.TempDir, "pdfdiff-render-")
	if err != nil {
		return nil, fmt.Errorf("failed to create render directory: %w", err)
	}
	defer os.RemoveAll(dir)

	prefix := filepath.Join(dir, "page")
	cmd := exec.CommandContext(ctx, binary, "-r", strconv.Itoa(dpi), "-png", pdfPath, prefix)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}

	entries, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to list rendered pages: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no pages for %s", pdfPath)
	}

	// pdftoppm numbers output files with a page suffix whose zero
	// padding depends on the page count; sort numerically.
	sort.Slice(entries, func(i, j int) bool {
		return pageSuffix(entries[i]) < pageSuffix(entries[j])
	})

	pages := make([]PageImage, 0, len(entries))
	for i, path := range entries {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read rendered page %s: %w", path, err)
		}
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode rendered page %s: %w", path, err)
		}
		pages = append(pages, PageImage{
			Number: i + 1,
			Data:   data,
			Width:  cfg.Width,
			Height: cfg.Height,
		})
	}
	return pages, nil
}

func pageSuffix(path string) int {
	base := strings.TrimSuffix(filepath.Base(path), ".png")
	idx := strings.LastIndexByte(base, '-')
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(base[idx+1:])
	if err != nil {
		return 0
	}
	return n
}
