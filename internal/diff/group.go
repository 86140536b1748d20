/**
 * Spatial grouping and merge.
 *
 * Adjacent line-level records that are visually one change (consecutive
 * rewritten lines, a reflow pushing a word across a line break) collapse
 * into a single record. The pass is a single greedy left-to-right fold
 * with two states: no open group, or an open group with one or more
 * members. Each incoming record either joins the open group or flushes
 * it and starts the next one.
 */

package diff

import (
	"fmt"
	"strings"

	"github.com/veridoc/pdfdiff/internal/geometry"
)

// Default grouping thresholds in pixels.
const (
	DefaultMaxYGap = 100
	DefaultMaxXGap = 200
)

// GroupConfig bounds how far apart two records may sit and still merge.
// MaxYGap limits the vertical gap between the previous record's last box
// and the current record's first box; MaxXGap limits their left-edge
// offset, keeping merges within one column.
type GroupConfig struct {
	MaxYGap int
	MaxXGap int
}

// DefaultGroupConfig returns the standard grouping thresholds.
func DefaultGroupConfig() GroupConfig {
	return GroupConfig{MaxYGap: DefaultMaxYGap, MaxXGap: DefaultMaxXGap}
}

type grouper struct {
	cfg  GroupConfig
	open []Record
	out  []Record
}

func groupRecords(records []Record, cfg GroupConfig) []Record {
	if len(records) == 0 {
		return records
	}
	g := &grouper{cfg: cfg, out: make([]Record, 0, len(records))}
	for _, r := range records {
		g.add(r)
	}
	g.flush()
	return g.out
}

func (g *grouper) add(r Record) {
	if len(g.open) > 0 && !g.groupable(g.open[len(g.open)-1], r) {
		g.flush()
	}
	g.open = append(g.open, r)
}

func (g *grouper) flush() {
	switch len(g.open) {
	case 0:
	case 1:
		g.out = append(g.out, g.open[0])
	default:
		g.out = append(g.out, mergeRecords(g.open))
	}
	g.open = g.open[:0]
}

// groupable tests the current record against the last member of the
// open group. Grouping is purely spatial and page-scoped: operation
// types are allowed to differ, so a delete can merge with a replace
// when a reflow moved text between lines.
func (g *grouper) groupable(prev, curr Record) bool {
	if prev.PageA != curr.PageA || prev.PageB != curr.PageB {
		return false
	}
	var prevBox, currBox geometry.BoundingBox
	switch {
	case len(prev.BoxesA) > 0 && len(curr.BoxesA) > 0:
		prevBox = prev.BoxesA[len(prev.BoxesA)-1]
		currBox = curr.BoxesA[0]
	case len(prev.BoxesB) > 0 && len(curr.BoxesB) > 0:
		prevBox = prev.BoxesB[len(prev.BoxesB)-1]
		currBox = curr.BoxesB[0]
	default:
		return false
	}
	return abs(currBox.Y-prevBox.Y) <= g.cfg.MaxYGap &&
		abs(currBox.X-prevBox.X) <= g.cfg.MaxXGap
}

// mergeRecords builds one record from the members of a group: texts are
// newline-joined per side, box lists concatenated side-preserving, and
// when both merged texts are non-empty the word diff, inference and
// rendered diff are recomputed over the merged pair.
func mergeRecords(members []Record) Record {
	var textsA, textsB []string
	var boxesA, boxesB []geometry.BoundingBox
	for _, m := range members {
		if m.TextA != "" {
			textsA = append(textsA, m.TextA)
		}
		if m.TextB != "" {
			textsB = append(textsB, m.TextB)
		}
		boxesA = append(boxesA, m.BoxesA...)
		boxesB = append(boxesB, m.BoxesB...)
	}

	merged := Record{
		PageA:  members[0].PageA,
		PageB:  members[0].PageB,
		TextA:  strings.Join(textsA, "\n"),
		TextB:  strings.Join(textsB, "\n"),
		BoxesA: boxesA,
		BoxesB: boxesB,
	}
	switch {
	case merged.TextA != "" && merged.TextB != "":
		merged.Segments = WordDiff(merged.TextA, merged.TextB)
		merged.Op = InferOp(merged.Segments)
		merged.Unified = RenderUnified(merged.TextA, merged.TextB,
			fmt.Sprintf("page_%d", merged.PageA),
			fmt.Sprintf("page_%d", merged.PageB))
	case merged.TextA != "":
		merged.Op = OpDelete
	default:
		merged.Op = OpInsert
	}
	return merged
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
