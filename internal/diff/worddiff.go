/**
 * Word-level text differ.
 *
 * Aligns the token sequences of two strings and maps each opcode back to
 * the exact substring and byte offsets it covers. Word granularity keeps
 * an inserted word from smearing into character-level replace noise on
 * the untouched words around it.
 */

package diff

// WordDiff compares two strings at word granularity. The returned
// segments partition [0,len(textA)] and [0,len(textB)] contiguously in
// left-to-right order.
func WordDiff(textA, textB string) []Segment {
	toksA := tokenize(textA)
	toksB := tokenize(textB)
	codes := Align(tokenTexts(toksA), tokenTexts(toksB))

	segs := make([]Segment, 0, len(codes))
	for _, c := range codes {
		startA, endA := tokenSpan(toksA, c.I1, c.I2, len(textA))
		startB, endB := tokenSpan(toksB, c.J1, c.J2, len(textB))
		seg := Segment{
			Op:     c.Op,
			StartA: startA,
			EndA:   endA,
			StartB: startB,
			EndB:   endB,
		}
		// Slice the originals rather than joining token texts so the
		// covered substring is exact.
		if startA < endA {
			seg.TextA = textA[startA:endA]
		}
		if startB < endB {
			seg.TextB = textB[startB:endB]
		}
		segs = append(segs, seg)
	}
	return segs
}

// tokenSpan resolves a token index range to byte offsets. An empty
// range collapses to the position where it sits, so segment offsets
// stay contiguous.
func tokenSpan(toks []token, i1, i2, textLen int) (int, int) {
	if i1 < i2 {
		return toks[i1].start, toks[i2-1].end
	}
	if i1 < len(toks) {
		return toks[i1].start, toks[i1].start
	}
	return textLen, textLen
}
