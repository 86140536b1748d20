/**
 * Word-to-line grouping and reading-order normalization.
 *
 * Words come out of OCR individually; the diff engine wants ordered
 * lines. Grouping prefers Tesseract's own block/paragraph/line metadata
 * (which fixes word-order mistakes coordinate sorting makes, e.g.
 * "8 people Serves" vs "Serves 8 people") and splits a detected line
 * when words sit too far apart horizontally, which separates columns
 * Tesseract fused. Coordinate-based grouping remains as a fallback for
 * words without metadata.
 */

package ingest

import (
	"sort"

	"github.com/veridoc/pdfdiff/internal/document"
	"github.com/veridoc/pdfdiff/internal/geometry"
)

// LineOptions holds the layout thresholds for line grouping and
// reading-order sorting, all in pixels.
type LineOptions struct {
	// HorizontalGap splits a Tesseract line between words that are
	// farther apart than this.
	HorizontalGap int
	// LineHeightTolerance groups words into lines by vertical proximity
	// when Tesseract metadata is unavailable.
	LineHeightTolerance int
	// ColumnThreshold is the horizontal distance separating two columns.
	ColumnThreshold int
	// MinColumnLines is the minimum number of lines a column needs to
	// count as a real column.
	MinColumnLines int
	// RowTolerance is the vertical distance within which lines are
	// considered the same visual row.
	RowTolerance int
}

// DefaultLineOptions returns the standard layout thresholds.
func DefaultLineOptions() LineOptions {
	return LineOptions{
		HorizontalGap:       100,
		LineHeightTolerance: 5,
		ColumnThreshold:     400,
		MinColumnLines:      3,
		RowTolerance:        50,
	}
}

// GroupWordsIntoLines assembles recognized words into ordered text
// lines. Line indices follow the grouping order; callers that re-sort
// must reassign them.
func GroupWordsIntoLines(words []Word, opts LineOptions) []document.TextLine {
	if len(words) == 0 {
		return nil
	}
	if hasLineMetadata(words) {
		return groupByTesseractLines(words, opts.HorizontalGap)
	}
	return groupByCoordinates(words, opts.LineHeightTolerance)
}

func hasLineMetadata(words []Word) bool {
	for _, w := range words {
		if w.Block > 0 || w.Line > 0 {
			return true
		}
	}
	return false
}

func groupByTesseractLines(words []Word, horizontalGap int) []document.TextLine {
	sorted := make([]Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Block != b.Block {
			return a.Block < b.Block
		}
		if a.Paragraph != b.Paragraph {
			return a.Paragraph < b.Paragraph
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.WordNum < b.WordNum
	})

	var lines []document.TextLine
	var current []Word
	flush := func() {
		if len(current) > 0 {
			lines = append(lines, lineFromWords(current, len(lines)))
			current = nil
		}
	}

	prevKey := [3]int{-1, -1, -1}
	for _, w := range sorted {
		key := [3]int{w.Block, w.Paragraph, w.Line}
		if key != prevKey {
			flush()
			prevKey = key
		} else if len(current) > 0 {
			// Same Tesseract line, but a wide horizontal gap means a
			// column boundary: start a new line.
			last := current[len(current)-1]
			if w.Box.X-last.Box.Right() > horizontalGap {
				flush()
			}
		}
		current = append(current, w)
	}
	flush()
	return lines
}

func groupByCoordinates(words []Word, tolerance int) []document.TextLine {
	sorted := make([]Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Box.Y != sorted[j].Box.Y {
			return sorted[i].Box.Y < sorted[j].Box.Y
		}
		return sorted[i].Box.X < sorted[j].Box.X
	})

	var lines []document.TextLine
	var current []Word
	lineTop := -1
	for _, w := range sorted {
		if lineTop >= 0 && absInt(w.Box.Y-lineTop) > tolerance {
			lines = append(lines, lineFromWords(current, len(lines)))
			current = nil
			lineTop = -1
		}
		if lineTop < 0 {
			lineTop = w.Box.Y
		}
		current = append(current, w)
	}
	if len(current) > 0 {
		lines = append(lines, lineFromWords(current, len(lines)))
	}
	return lines
}

func lineFromWords(words []Word, index int) document.TextLine {
	texts := make([]string, len(words))
	boxes := make([]geometry.BoundingBox, len(words))
	for i, w := range words {
		texts[i] = w.Text
		boxes[i] = w.Box
	}
	return document.TextLine{
		Text:  joinWords(texts),
		Box:   geometry.Enclose(boxes),
		Index: index,
	}
}

func joinWords(texts []string) string {
	out := ""
	for i, t := range texts {
		if i > 0 {
			out += " "
		}
		out += t
	}
	return out
}

// SortLinesSpatially orders lines for reading: multi-column layouts are
// sorted column by column (left column top-to-bottom first), everything
// else row by row with left-to-right order within a row. Line indices
// are reassigned to the final order.
func SortLinesSpatially(lines []document.TextLine, opts LineOptions) []document.TextLine {
	if len(lines) == 0 {
		return lines
	}

	columns := detectColumns(lines, opts)
	var sorted []document.TextLine
	if len(columns) >= 2 {
		sorted = sortByColumns(lines, columns)
	} else {
		sorted = sortByRows(lines, opts.RowTolerance)
	}
	for i := range sorted {
		sorted[i].Index = i
	}
	return sorted
}

// detectColumns clusters left edges and keeps clusters with enough
// lines to be a real column.
func detectColumns(lines []document.TextLine, opts LineOptions) []int {
	xs := make([]int, len(lines))
	for i, l := range lines {
		xs[i] = l.Box.X
	}
	sort.Ints(xs)

	var clusters [][]int
	current := []int{xs[0]}
	for _, x := range xs[1:] {
		if x-current[len(current)-1] < opts.ColumnThreshold {
			current = append(current, x)
		} else {
			clusters = append(clusters, current)
			current = []int{x}
		}
	}
	clusters = append(clusters, current)

	var centers []int
	for _, c := range clusters {
		if len(c) < opts.MinColumnLines {
			continue
		}
		sum := 0
		for _, x := range c {
			sum += x
		}
		centers = append(centers, sum/len(c))
	}
	return centers
}

func sortByColumns(lines []document.TextLine, centers []int) []document.TextLine {
	buckets := make([][]document.TextLine, len(centers))
	for _, l := range lines {
		best, bestDist := 0, absInt(l.Box.X-centers[0])
		for i, c := range centers[1:] {
			if d := absInt(l.Box.X - c); d < bestDist {
				best, bestDist = i+1, d
			}
		}
		buckets[best] = append(buckets[best], l)
	}

	var out []document.TextLine
	for _, bucket := range buckets {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Box.Y < bucket[j].Box.Y
		})
		out = append(out, bucket...)
	}
	return out
}

func sortByRows(lines []document.TextLine, rowTolerance int) []document.TextLine {
	byY := make([]document.TextLine, len(lines))
	copy(byY, lines)
	sort.SliceStable(byY, func(i, j int) bool {
		return byY[i].Box.Y < byY[j].Box.Y
	})

	var out []document.TextLine
	row := []document.TextLine{byY[0]}
	rowYSum := byY[0].Box.Y
	flushRow := func() {
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].Box.X < row[j].Box.X
		})
		out = append(out, row...)
	}
	for _, l := range byY[1:] {
		if absInt(l.Box.Y-rowYSum/len(row)) <= rowTolerance {
			row = append(row, l)
			rowYSum += l.Box.Y
		} else {
			flushRow()
			row = []document.TextLine{l}
			rowYSum = l.Box.Y
		}
	}
	flushRow()
	return out
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
