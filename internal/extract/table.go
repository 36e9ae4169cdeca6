package extract

import (
	"regexp"
	"strings"
)

var (
	separatorRowPattern = regexp.MustCompile(`^\|[\s\-:|]+\|$`)
	brTagPattern        = regexp.MustCompile(`<br\s*/?>`)
)

// cleanCell trims a cell and replaces <br> tags with spaces.
func cleanCell(cell string) string {
	return strings.TrimSpace(brTagPattern.ReplaceAllString(cell, " "))
}

// ParseTableRows parses GitHub-style pipe-table lines into cell grids.
// Alignment/separator rows (|---|---|) are discarded and the empty leading and
// trailing cells produced by the outer pipes are stripped.
func ParseTableRows(text string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") {
			continue
		}
		if separatorRowPattern.MatchString(line) {
			continue
		}

		cells := strings.Split(line, "|")
		if len(cells) > 0 && strings.TrimSpace(cells[0]) == "" {
			cells = cells[1:]
		}
		if len(cells) > 0 && strings.TrimSpace(cells[len(cells)-1]) == "" {
			cells = cells[:len(cells)-1]
		}

		row := make([]string, len(cells))
		for i, c := range cells {
			row[i] = cleanCell(c)
		}
		rows = append(rows, row)
	}
	return rows
}
