/**
 * Document comparator.
 *
 * Walks the page indices of both documents in order and concatenates the
 * per-page records into the final report. Pages are paired strictly by
 * index: page i of A is always compared against page i of B, with no
 * content-based re-synchronization, so a page inserted mid-document
 * shifts every later pairing and those pages diff against the wrong
 * counterpart. Known limitation carried over from the observed behavior
 * of the system this replaces.
 */

package diff

import "github.com/veridoc/pdfdiff/internal/document"

// CompareDocuments compares two ordered page sequences and assembles
// the final report. The inputs are treated as read-only.
func CompareDocuments(pagesA, pagesB []document.Page, docA, docB string, cfg GroupConfig) *Report {
	var records []Record
	for i := 0; i < max(len(pagesA), len(pagesB)); i++ {
		var pa, pb *document.Page
		if i < len(pagesA) {
			pa = &pagesA[i]
		}
		if i < len(pagesB) {
			pb = &pagesB[i]
		}
		records = append(records, ComparePages(pa, pb, cfg)...)
	}
	return &Report{
		DocA:        docA,
		DocB:        docB,
		TotalPagesA: len(pagesA),
		TotalPagesB: len(pagesB),
		Records:     records,
	}
}
