package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordDiffReplacedWord(t *testing.T) {
	segs := WordDiff("Hello this is Michael", "Hello this is Tabatha")
	require.Len(t, segs, 2)

	assert.Equal(t, OpEqual, segs[0].Op)
	assert.Equal(t, "Hello this is ", segs[0].TextA)
	assert.Equal(t, "Hello this is ", segs[0].TextB)

	assert.Equal(t, OpReplace, segs[1].Op)
	assert.Equal(t, "Michael", segs[1].TextA)
	assert.Equal(t, "Tabatha", segs[1].TextB)
}

func TestWordDiffInsertedWord(t *testing.T) {
	segs := WordDiff("Hello this is Michael", "Hello this is not Michael")
	require.Len(t, segs, 3)

	assert.Equal(t, OpEqual, segs[0].Op)
	assert.Equal(t, "Hello this is ", segs[0].TextA)

	assert.Equal(t, OpInsert, segs[1].Op)
	assert.Equal(t, "", segs[1].TextA)
	assert.Equal(t, "not ", segs[1].TextB)

	assert.Equal(t, OpEqual, segs[2].Op)
	assert.Equal(t, "Michael", segs[2].TextA)

	assert.Equal(t, OpInsert, InferOp(segs))
}

// Punctuation stays attached to its word; a trailing comma makes the
// whole word differ.
func TestWordDiffPunctuationAttached(t *testing.T) {
	segs := WordDiff("Hello, world", "Hello world")
	require.NotEmpty(t, segs)
	assert.Equal(t, OpReplace, segs[0].Op)
	assert.Equal(t, "Hello,", segs[0].TextA)
	assert.Equal(t, "Hello", segs[0].TextB)
}

// Concatenating each side's present texts in order must reconstruct
// the original string exactly.
func TestWordDiffReconstruction(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"empty both", "", ""},
		{"empty a", "", "some text here"},
		{"empty b", "some text here", ""},
		{"identical", "the same line", "the same line"},
		{"replace", "Vanilla ice cream", "Chocolate ice cream"},
		{"insert", "Tips", "Tips / Other Items"},
		{"whitespace change", "one  two", "one two"},
		{"multiline", "Line one\nLine two", "Line one\nLine three"},
		{"unicode", "café au lait", "café con leche"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			segs := WordDiff(tc.a, tc.b)

			var gotA, gotB string
			var prevEndA, prevEndB int
			for _, s := range segs {
				gotA += s.TextA
				gotB += s.TextB
				assert.Equal(t, prevEndA, s.StartA, "A offsets must be contiguous")
				assert.Equal(t, prevEndB, s.StartB, "B offsets must be contiguous")
				prevEndA, prevEndB = s.EndA, s.EndB
			}
			assert.Equal(t, tc.a, gotA)
			assert.Equal(t, tc.b, gotB)
		})
	}
}

func TestWordDiffOffsetsMatchTexts(t *testing.T) {
	a := "Hello this is Michael"
	b := "Hello this is not Michael"
	for _, s := range WordDiff(a, b) {
		assert.Equal(t, a[s.StartA:s.EndA], s.TextA)
		assert.Equal(t, b[s.StartB:s.EndB], s.TextB)
	}
}

func TestTokenizePartition(t *testing.T) {
	cases := []string{
		"",
		"word",
		"   ",
		"Hello this is Michael",
		"tabs\tand  spaces",
		"trailing space ",
		" leading",
	}
	for _, s := range cases {
		toks := tokenize(s)
		var rebuilt string
		pos := 0
		for _, tok := range toks {
			assert.Equal(t, pos, tok.start)
			assert.Equal(t, s[tok.start:tok.end], tok.text)
			rebuilt += tok.text
			pos = tok.end
		}
		assert.Equal(t, s, rebuilt)
	}
}
