/**
 * Generic sequence aligner.
 *
 * Gestalt (longest-matching-block) alignment over two ordered sequences
 * of comparable elements, used both for page lines and for word tokens.
 * Ties among equally long matching runs resolve to the lowest A index,
 * then the lowest B index, so output is stable across runs. There is
 * deliberately no junk or popular-element heuristic: repetitive inputs
 * (recipes with repeated ingredient names, boilerplate headers) must
 * still align exactly, or true insertions get misreported.
 */

package diff

// OpCode is one step of an edit script: the half-open index ranges
// [I1,I2) in sequence A and [J1,J2) in sequence B tagged with an Op.
// The opcodes of an alignment cover both sequences completely and
// contiguously.
type OpCode struct {
	Op Op
	I1 int
	I2 int
	J1 int
	J2 int
}

type matchBlock struct {
	a, b, size int
}

type matcher[T comparable] struct {
	a   []T
	b   []T
	b2j map[T][]int
}

func newMatcher[T comparable](a, b []T) *matcher[T] {
	m := &matcher[T]{a: a, b: b, b2j: make(map[T][]int, len(b))}
	for j, v := range b {
		m.b2j[v] = append(m.b2j[v], j)
	}
	return m
}

// Align computes the edit script turning a into b.
func Align[T comparable](a, b []T) []OpCode {
	return newMatcher(a, b).opCodes()
}

// findLongestMatch returns the longest run with a[i:i+k] == b[j:j+k],
// alo <= i <= i+k <= ahi and blo <= j <= j+k <= bhi. Of all maximal
// runs it returns the one starting earliest in a, and of those the one
// starting earliest in b. Returns size 0 when nothing matches.
func (m *matcher[T]) findLongestMatch(alo, ahi, blo, bhi int) matchBlock {
	besti, bestj, bestsize := alo, blo, 0

	// j2len[j] = length of the longest match ending with a[i-1], b[j]
	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		newj2len := map[int]int{}
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return matchBlock{a: besti, b: bestj, size: bestsize}
}

// matchingBlocks returns the non-adjacent maximal matching runs in
// order, terminated by a (len(a), len(b), 0) sentinel.
func (m *matcher[T]) matchingBlocks() []matchBlock {
	var recurse func(alo, ahi, blo, bhi int, acc []matchBlock) []matchBlock
	recurse = func(alo, ahi, blo, bhi int, acc []matchBlock) []matchBlock {
		mb := m.findLongestMatch(alo, ahi, blo, bhi)
		if mb.size > 0 {
			if alo < mb.a && blo < mb.b {
				acc = recurse(alo, mb.a, blo, mb.b, acc)
			}
			acc = append(acc, mb)
			if mb.a+mb.size < ahi && mb.b+mb.size < bhi {
				acc = recurse(mb.a+mb.size, ahi, mb.b+mb.size, bhi, acc)
			}
		}
		return acc
	}
	matched := recurse(0, len(m.a), 0, len(m.b), nil)

	// Collapse runs that touch end to end.
	var blocks []matchBlock
	cur := matchBlock{}
	for _, mb := range matched {
		if cur.a+cur.size == mb.a && cur.b+cur.size == mb.b {
			cur.size += mb.size
		} else {
			if cur.size > 0 {
				blocks = append(blocks, cur)
			}
			cur = mb
		}
	}
	if cur.size > 0 {
		blocks = append(blocks, cur)
	}
	return append(blocks, matchBlock{a: len(m.a), b: len(m.b)})
}

func (m *matcher[T]) opCodes() []OpCode {
	i, j := 0, 0
	blocks := m.matchingBlocks()
	codes := make([]OpCode, 0, len(blocks))
	for _, mb := range blocks {
		// Emit the gap before this matching run, then the run itself.
		var tag Op
		switch {
		case i < mb.a && j < mb.b:
			tag = OpReplace
		case i < mb.a:
			tag = OpDelete
		case j < mb.b:
			tag = OpInsert
		}
		if tag != "" {
			codes = append(codes, OpCode{Op: tag, I1: i, I2: mb.a, J1: j, J2: mb.b})
		}
		i, j = mb.a+mb.size, mb.b+mb.size
		if mb.size > 0 {
			codes = append(codes, OpCode{Op: OpEqual, I1: mb.a, I2: i, J1: mb.b, J2: j})
		}
	}
	return codes
}

// ratio is the similarity of the two sequences in [0,1]: 2*M/T where M
// is the number of matched elements and T the total length of both.
func (m *matcher[T]) ratio() float64 {
	matches := 0
	for _, mb := range m.matchingBlocks() {
		matches += mb.size
	}
	total := len(m.a) + len(m.b)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matches) / float64(total)
}

// Similarity reports the character-level similarity ratio of two strings.
func Similarity(a, b string) float64 {
	return newMatcher([]rune(a), []rune(b)).ratio()
}
