package diff

import "strings"

// InferOp classifies the aggregate edit described by a segment list.
//
// A replace segment whose two sides are both pure whitespace is ignored:
// a line break turning into a space is cosmetic reflow, not a change.
// When inserts and deletes both occur, or any real replace does, the
// aggregate is a replace. When nothing but equals and ignored
// whitespace replaces remain, the result still defaults to replace;
// callers must not read that fallback as proof a change exists.
func InferOp(segs []Segment) Op {
	var sawInsert, sawDelete, sawReplace bool
	for _, s := range segs {
		switch s.Op {
		case OpEqual:
		case OpInsert:
			sawInsert = true
		case OpDelete:
			sawDelete = true
		case OpReplace:
			if strings.TrimSpace(s.TextA) != "" || strings.TrimSpace(s.TextB) != "" {
				sawReplace = true
			}
		}
	}
	switch {
	case sawReplace || (sawInsert && sawDelete):
		return OpReplace
	case sawInsert:
		return OpInsert
	case sawDelete:
		return OpDelete
	default:
		return OpReplace
	}
}
