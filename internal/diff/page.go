/**
 * Page comparator.
 *
 * Aligns the line sequences of a page pairing and emits one record per
 * changed line. Paired lines inside a replace range get a word-level
 * sub-diff and an inferred operation; leftover lines on the longer side
 * fall back to plain per-line delete/insert records. The result is run
 * through the spatial grouper, except for the single-sided fast paths.
 */

package diff

import "github.com/veridoc/pdfdiff/internal/document"

// ComparePages compares two pages. Either page may be nil, meaning the
// page does not exist in that document; both nil yields no records.
func ComparePages(pageA, pageB *document.Page, cfg GroupConfig) []Record {
	if pageA == nil && pageB == nil {
		return nil
	}

	// A page that exists on one side only becomes one record per line,
	// in line order, and skips spatial grouping.
	if pageA == nil {
		records := make([]Record, 0, len(pageB.Lines))
		for _, line := range pageB.Lines {
			records = append(records, newInsertRecord(0, pageB.Number, line))
		}
		return records
	}
	if pageB == nil {
		records := make([]Record, 0, len(pageA.Lines))
		for _, line := range pageA.Lines {
			records = append(records, newDeleteRecord(pageA.Number, 0, line))
		}
		return records
	}

	var records []Record
	for _, c := range Align(pageA.LineTexts(), pageB.LineTexts()) {
		switch c.Op {
		case OpEqual:
		case OpDelete:
			for i := c.I1; i < c.I2; i++ {
				records = append(records, newDeleteRecord(pageA.Number, pageB.Number, pageA.Lines[i]))
			}
		case OpInsert:
			for j := c.J1; j < c.J2; j++ {
				records = append(records, newInsertRecord(pageA.Number, pageB.Number, pageB.Lines[j]))
			}
		case OpReplace:
			// Pair lines positionally for the shorter side; extras on
			// the longer side degrade to plain delete/insert records.
			paired := min(c.I2-c.I1, c.J2-c.J1)
			for k := 0; k < paired; k++ {
				i, j := c.I1+k, c.J1+k
				records = append(records, newReplaceRecord(
					pageA.Number, pageB.Number, pageA.Lines[i], pageB.Lines[j], i, j))
			}
			for i := c.I1 + paired; i < c.I2; i++ {
				records = append(records, newDeleteRecord(pageA.Number, pageB.Number, pageA.Lines[i]))
			}
			for j := c.J1 + paired; j < c.J2; j++ {
				records = append(records, newInsertRecord(pageA.Number, pageB.Number, pageB.Lines[j]))
			}
		}
	}

	return groupRecords(records, cfg)
}
