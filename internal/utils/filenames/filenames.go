// Package filenames normalizes uploaded filenames for duplicate comparison.
package filenames

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	copySuffixPattern     = regexp.MustCompile(`(?i)[\s_.-]*(copy|copie|duplicate|dup|version|final|v\d+|\(\d+\))$`)
	trailingNumberPattern = regexp.MustCompile(`[\s_.-]+\d+$`)
)

// NormalizeStem reduces a filename to its comparison stem: extension stripped,
// lowercased, then copy/duplicate/version style suffixes and trailing numeric
// tokens removed until stable. "invoice_copy(2).pdf" and "invoice.pdf" share a
// stem.
func NormalizeStem(filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	stem = strings.ToLower(strings.TrimSpace(stem))

	for {
		next := copySuffixPattern.ReplaceAllString(stem, "")
		next = trailingNumberPattern.ReplaceAllString(next, "")
		next = strings.TrimSpace(next)
		if next == stem {
			break
		}
		stem = next
	}
	return stem
}
