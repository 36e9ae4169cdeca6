package extract

import (
	"regexp"
	"strings"
)

var (
	// Both Unicode variants of the skills / intro headings appear in OCR output.
	skillsHeadingPattern = regexp.MustCompile(`(?m)^#{1,4}\s+才能專[⻑長]`)
	introHeadingPattern  = regexp.MustCompile(`(?m)^#{1,2}\s+[⾃自]我介紹`)
)

// parseSkills locates the skills block in the raw markdown and collects
// hashtag-run lines like "#Python #Machine Learning #MS SQL". The block is
// sliced from the raw document because OCR scatters the actual content across
// #### subsections that the section map stores separately.
// Returns the block text and the deduplicated, order-preserving tag list.
func parseSkills(markdown string) (string, []string) {
	start := skillsHeadingPattern.FindStringIndex(markdown)
	if start == nil {
		return "", []string{}
	}

	text := markdown[start[0]:]
	if end := introHeadingPattern.FindStringIndex(markdown[start[1]:]); end != nil {
		text = markdown[start[0] : start[1]+end[0]]
	}

	tags := []string{}
	seen := make(map[string]struct{})
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		// Hashtag runs start with # but are not markdown headings.
		if !strings.HasPrefix(line, "#") || headingPattern.MatchString(line) {
			continue
		}
		for _, tag := range splitHashtags(line) {
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				tags = append(tags, tag)
			}
		}
	}

	return strings.TrimSpace(text), tags
}

// splitHashtags splits "#Python #Machine Learning" into its tag texts. Tags
// may contain spaces; a new tag starts at each # marker.
func splitHashtags(line string) []string {
	var tags []string
	for _, part := range strings.Split(line, "#") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
