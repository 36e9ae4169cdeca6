package extract

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// OCR output renders many CJK characters as Kangxi radicals or compatibility
// ideographs (⽂ instead of 文). NFKC folds most of them back; the radicals in
// this table survive NFKC and need an explicit mapping.
var cjkRadicalFixup = strings.NewReplacer(
	"⺠", "民", // ⺠ → 民
	"⻑", "長", // ⻑ → 長
	"⻩", "黃", // ⻩ → 黃
)

// NormalizeCJK applies NFKC normalization plus the radical fixup table.
// Run on every document before extraction.
func NormalizeCJK(text string) string {
	return cjkRadicalFixup.Replace(norm.NFKC.String(text))
}
