package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hsinyuc/talentsift/internal/resume"
)

var (
	numberedRowPattern = regexp.MustCompile(`^\d+\.`)
	eduPeriodPattern   = regexp.MustCompile(`(\d{4}/\d{2}/\d{2})\s*~\s*(\d{4}/\d{2}/\d{2})`)
)

// parseEducation scans table rows for numbered entries ("1.", "2.", ...) and
// maps the fixed column positions to school, department, degree, period,
// region and status. Header rows are skipped.
func parseEducation(section string) []resume.Education {
	var entries []resume.Education

	for _, cells := range ParseTableRows(section) {
		if len(cells) == 0 {
			continue
		}
		if containsCell(cells, "學校") || containsCell(cells, "教育背景") {
			continue
		}
		first := strings.TrimSpace(cells[0])
		if !numberedRowPattern.MatchString(first) {
			continue
		}

		entry := resume.Education{
			School:      cellAt(cells, 1),
			Department:  cellAt(cells, 2),
			DegreeLevel: cellAt(cells, 3),
			Region:      cellAt(cells, 5),
			Status:      cellAt(cells, 6),
		}
		if n, err := strconv.Atoi(strings.TrimSuffix(first, ".")); err == nil {
			entry.Seq = n
		}
		if m := eduPeriodPattern.FindStringSubmatch(cellAt(cells, 4)); m != nil {
			entry.DateStart = m[1]
			entry.DateEnd = m[2]
		}

		entries = append(entries, entry)
	}

	return entries
}

func containsCell(cells []string, value string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) == value {
			return true
		}
	}
	return false
}

func cellAt(cells []string, i int) string {
	if i < len(cells) {
		return strings.TrimSpace(cells[i])
	}
	return ""
}
