package stats

import "fmt"

// sizeUnits are 1024-based; GB is the largest unit rendered.
var sizeUnits = []string{"bytes", "KB", "MB", "GB"}

// HumanSize renders a byte count with one decimal place at the largest
// unit greater than or equal to one.
func HumanSize(n int64) string {
	value := float64(n)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", value, sizeUnits[unit])
}

// 📝 FormatNoteLines renders parsed statistics as exactly two short lines.
// In dry-run mode the first line uses the itemized summary; in a real run
// it uses the stats block's transferred counters. The second line always
// comes from the examined counters.
func FormatNoteLines(st *TransferStats, sum *DryRunSummary, dryRun bool) []string {
	var first string
	if dryRun && sum != nil {
		first = fmt.Sprintf("Would transfer %d files (%s).", sum.Files, HumanSize(sum.Bytes))
	} else {
		first = fmt.Sprintf("Transferred %d files (%s).", st.FilesTransferred, HumanSize(st.BytesTransferred))
	}
	second := fmt.Sprintf("Examined %d files (%s total).", st.FilesExamined, HumanSize(st.BytesExamined))
	return []string{first, second}
}
