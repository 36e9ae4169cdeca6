package extract

import (
	"regexp"
	"strings"
)

// PreambleSection holds everything before the first heading.
const PreambleSection = "_preamble"

var headingPattern = regexp.MustCompile(`^#{1,4}\s+(.+)$`)

// SplitSections splits markdown into named blocks on ATX headings with one to
// four # markers. Text before the first heading lands in PreambleSection.
// Every input line is assigned to exactly one section; nothing is dropped.
func SplitSections(markdown string) map[string]string {
	sections := make(map[string]string)

	name := PreambleSection
	var body []string

	flush := func() {
		sections[name] = strings.TrimSpace(strings.Join(body, "\n"))
	}

	for _, line := range strings.Split(markdown, "\n") {
		if m := headingPattern.FindStringSubmatch(strings.TrimRight(line, "\r")); m != nil {
			flush()
			name = strings.TrimSpace(m[1])
			body = body[:0]
			continue
		}
		body = append(body, line)
	}
	flush()

	return sections
}

// sectionBlock slices the raw markdown from the heading matched by start up to
// (but not including) the first heading matched by end, or to the end of the
// document. Returns "" when the start heading is absent. Used when OCR breaks
// a section apart with stray headings and the section map is unusable.
func sectionBlock(markdown string, start, end *regexp.Regexp) string {
	loc := start.FindStringIndex(markdown)
	if loc == nil {
		return ""
	}
	rest := markdown[loc[1]:]
	if end != nil {
		if endLoc := end.FindStringIndex(rest); endLoc != nil {
			return rest[:endLoc[0]]
		}
	}
	return rest
}
