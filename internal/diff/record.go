/**
 * Diff engine output types.
 *
 * Record is the unit of the comparison report: one visual change on one
 * page pairing. Records are created only by the page comparator's
 * constructors or by merging in the spatial grouper; a merge builds a
 * brand-new record and discards its inputs. Nothing mutates a record
 * after construction.
 */

package diff

import (
	"fmt"

	"github.com/veridoc/pdfdiff/internal/document"
	"github.com/veridoc/pdfdiff/internal/geometry"
)

// Op identifies a diff operation. The set is closed; every consumer
// switches over these four values exhaustively.
type Op string

const (
	OpEqual   Op = "equal"
	OpDelete  Op = "delete"
	OpInsert  Op = "insert"
	OpReplace Op = "replace"
)

// Segment is one word-level span of a text pair comparison. For a given
// pair the segments are emitted left to right and their offset ranges
// partition both texts contiguously. TextA is non-empty exactly when
// StartA < EndA, and likewise for the B side.
type Segment struct {
	Op     Op
	TextA  string
	TextB  string
	StartA int
	EndA   int
	StartB int
	EndB   int
}

// Record is a single difference between the two documents. PageA/PageB
// are 1-indexed page numbers, 0 when the page does not exist on that
// side. An insert record carries no A-side text or boxes and a delete
// record no B-side ones; a record built from a paired line replacement
// carries both sides even when inference relabels its Op as insert or
// delete.
type Record struct {
	Op       Op
	PageA    int
	PageB    int
	TextA    string
	TextB    string
	BoxesA   []geometry.BoundingBox
	BoxesB   []geometry.BoundingBox
	Unified  string
	Segments []Segment
}

// Report is the full result of comparing two documents. Assembled once
// by CompareDocuments and immutable thereafter.
type Report struct {
	DocA        string
	DocB        string
	TotalPagesA int
	TotalPagesB int
	Records     []Record
}

func newInsertRecord(pageA, pageB int, line document.TextLine) Record {
	return Record{
		Op:     OpInsert,
		PageA:  pageA,
		PageB:  pageB,
		TextB:  line.Text,
		BoxesB: []geometry.BoundingBox{line.Box},
	}
}

func newDeleteRecord(pageA, pageB int, line document.TextLine) Record {
	return Record{
		Op:     OpDelete,
		PageA:  pageA,
		PageB:  pageB,
		TextA:  line.Text,
		BoxesA: []geometry.BoundingBox{line.Box},
	}
}

// newReplaceRecord pairs two lines, sub-diffs them at word granularity
// and lets operation inference decide the final Op. The record stays
// replace-shaped either way: both texts and both boxes are kept.
func newReplaceRecord(pageA, pageB int, lineA, lineB document.TextLine, idxA, idxB int) Record {
	segs := WordDiff(lineA.Text, lineB.Text)
	return Record{
		Op:     InferOp(segs),
		PageA:  pageA,
		PageB:  pageB,
		TextA:  lineA.Text,
		TextB:  lineB.Text,
		BoxesA: []geometry.BoundingBox{lineA.Box},
		BoxesB: []geometry.BoundingBox{lineB.Box},
		Unified: RenderUnified(lineA.Text, lineB.Text,
			fmt.Sprintf("page_%d_line_%d", pageA, idxA),
			fmt.Sprintf("page_%d_line_%d", pageB, idxB)),
		Segments: segs,
	}
}
