package diff

import (
	"unicode"
	"unicode/utf8"
)

// token is a maximal run of whitespace or non-whitespace characters.
// start/end are byte offsets into the owning string, so concatenating
// all token texts in order reconstructs it exactly.
type token struct {
	text  string
	start int
	end   int
}

// tokenize splits s into word and whitespace tokens. A "word" is any
// maximal non-whitespace run, so punctuation stays attached: "Michael,"
// is a single token.
func tokenize(s string) []token {
	var toks []token
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		ws := unicode.IsSpace(r)
		j := i + size
		for j < len(s) {
			r2, size2 := utf8.DecodeRuneInString(s[j:])
			if unicode.IsSpace(r2) != ws {
				break
			}
			j += size2
		}
		toks = append(toks, token{text: s[i:j], start: i, end: j})
		i = j
	}
	return toks
}

func tokenTexts(toks []token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.text
	}
	return out
}
