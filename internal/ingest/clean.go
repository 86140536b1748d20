package ingest

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/veridoc/pdfdiff/internal/document"
)

// trailingStrayPattern matches a line that ends with a lone letter
// separated by a space, e.g. "Vanilla e" or "Recipe s", a common
// Tesseract artifact where a fragment of a neighboring glyph is read as
// its own one-letter word.
var trailingStrayPattern = regexp.MustCompile(`^.+ [a-zA-Z]$`)

// CleanStrayCharacters removes likely OCR artifacts: standalone
// single-letter lines are dropped entirely, and a trailing " X" single
// letter is stripped from the line text. Bounding boxes are preserved
// as recognized.
func CleanStrayCharacters(lines []document.TextLine) []document.TextLine {
	cleaned := make([]document.TextLine, 0, len(lines))
	for _, line := range lines {
		text := strings.TrimSpace(line.Text)

		if isSingleLetter(text) {
			continue
		}
		if trailingStrayPattern.MatchString(text) {
			line.Text = text[:len(text)-2]
			cleaned = append(cleaned, line)
			continue
		}
		cleaned = append(cleaned, line)
	}
	return cleaned
}

func isSingleLetter(text string) bool {
	runes := []rune(text)
	return len(runes) == 1 && unicode.IsLetter(runes[0])
}
