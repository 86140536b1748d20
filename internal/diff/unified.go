/**
 * Unified diff rendering.
 *
 * Conventional three-line-context, line-oriented rendering of a text
 * pair. Display-only: the output lands in Record.Unified and nothing
 * downstream parses it.
 */

package diff

import (
	"fmt"
	"strings"
)

const unifiedContext = 3

// RenderUnified renders textA vs textB as a unified diff labeled with
// the caller-supplied identifiers.
func RenderUnified(textA, textB, labelA, labelB string) string {
	a := splitKeepEnds(textA)
	b := splitKeepEnds(textB)

	var sb strings.Builder
	started := false
	for _, g := range groupOpCodes(Align(a, b), unifiedContext) {
		if !started {
			started = true
			fmt.Fprintf(&sb, "--- %s\n", labelA)
			fmt.Fprintf(&sb, "+++ %s\n", labelB)
		}
		first, last := g[0], g[len(g)-1]
		fmt.Fprintf(&sb, "@@ -%s +%s @@\n",
			formatRangeUnified(first.I1, last.I2),
			formatRangeUnified(first.J1, last.J2))
		for _, c := range g {
			if c.Op == OpEqual {
				for _, line := range a[c.I1:c.I2] {
					sb.WriteString(" " + line)
				}
				continue
			}
			if c.Op == OpReplace || c.Op == OpDelete {
				for _, line := range a[c.I1:c.I2] {
					sb.WriteString("-" + line)
				}
			}
			if c.Op == OpReplace || c.Op == OpInsert {
				for _, line := range b[c.J1:c.J2] {
					sb.WriteString("+" + line)
				}
			}
		}
	}
	return sb.String()
}

// splitKeepEnds splits into lines that keep their newline, forcing one
// onto the last line so every rendered line terminates cleanly.
func splitKeepEnds(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	last := lines[len(lines)-1]
	if !strings.HasSuffix(last, "\n") {
		lines[len(lines)-1] = last + "\n"
	}
	return lines
}

// groupOpCodes isolates change clusters, trimming equal runs down to n
// lines of context around each cluster.
func groupOpCodes(codes []OpCode, n int) [][]OpCode {
	if len(codes) == 0 {
		codes = []OpCode{{Op: OpEqual, I1: 0, I2: 1, J1: 0, J2: 1}}
	}
	if codes[0].Op == OpEqual {
		c := codes[0]
		codes[0] = OpCode{Op: c.Op, I1: max(c.I1, c.I2-n), I2: c.I2, J1: max(c.J1, c.J2-n), J2: c.J2}
	}
	if last := codes[len(codes)-1]; last.Op == OpEqual {
		codes[len(codes)-1] = OpCode{Op: last.Op, I1: last.I1, I2: min(last.I2, last.I1+n), J1: last.J1, J2: min(last.J2, last.J1+n)}
	}

	var groups [][]OpCode
	var group []OpCode
	for _, c := range codes {
		i1, j1 := c.I1, c.J1
		// A large unchanged stretch ends the current group.
		if c.Op == OpEqual && c.I2-c.I1 > 2*n {
			group = append(group, OpCode{Op: c.Op, I1: i1, I2: min(c.I2, i1+n), J1: j1, J2: min(c.J2, j1+n)})
			groups = append(groups, group)
			group = nil
			i1, j1 = max(i1, c.I2-n), max(j1, c.J2-n)
		}
		group = append(group, OpCode{Op: c.Op, I1: i1, I2: c.I2, J1: j1, J2: c.J2})
	}
	if len(group) > 0 && !(len(group) == 1 && group[0].Op == OpEqual) {
		groups = append(groups, group)
	}
	return groups
}

func formatRangeUnified(start, stop int) string {
	beginning := start + 1 // line numbers are 1-based in the header
	length := stop - start
	if length == 1 {
		return fmt.Sprintf("%d", beginning)
	}
	if length == 0 {
		beginning--
	}
	return fmt.Sprintf("%d,%d", beginning, length)
}
