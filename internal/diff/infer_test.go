package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferOpFromText(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want Op
	}{
		{"pure insert", "Tips", "Tips / Other Items", OpInsert},
		{"pure delete", "Tips / Other Items", "Tips", OpDelete},
		{"replace", "Vanilla", "Chocolate", OpReplace},
		{"replace within line", "add the vanilla extract", "add the chocolate extract", OpReplace},
		{"insert and delete", "one two three", "zero one three", OpReplace},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, InferOp(WordDiff(tc.a, tc.b)))
		})
	}
}

// A replace whose two sides are both whitespace is reflow, not a
// change; with nothing else present the result falls back to replace.
func TestInferOpIgnoresWhitespaceReplace(t *testing.T) {
	segs := []Segment{
		{Op: OpEqual, TextA: "one", TextB: "one"},
		{Op: OpReplace, TextA: "  ", TextB: " "},
		{Op: OpEqual, TextA: "two", TextB: "two"},
	}
	assert.Equal(t, OpReplace, InferOp(segs))

	// The same shape with an insert present resolves to insert; the
	// whitespace replace must not force a replace.
	segs = append(segs, Segment{Op: OpInsert, TextB: " three"})
	assert.Equal(t, OpInsert, InferOp(segs))
}

func TestInferOpDefaultsToReplace(t *testing.T) {
	assert.Equal(t, OpReplace, InferOp(nil))
	assert.Equal(t, OpReplace, InferOp([]Segment{{Op: OpEqual, TextA: "same", TextB: "same"}}))
}
