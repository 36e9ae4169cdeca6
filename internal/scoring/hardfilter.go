package scoring

import (
	"fmt"
	"strings"

	"github.com/hsinyuc/talentsift/internal/resume"
)

// ApplyHardFilters checks the boolean gate before any numeric scoring. Every
// required skill must appear as a substring of the combined candidate text;
// frameworks and keywords each need at least one hit when configured.
// Returns pass/fail plus one failure reason per violated rule.
func ApplyHardFilters(candidate *resume.Extract, filters resume.HardFilters) (bool, []string) {
	var failures []string

	parts := []string{candidate.RawMarkdown}
	parts = append(parts, candidate.SkillTags...)
	for _, we := range candidate.WorkExperiences {
		parts = append(parts, we.JobDescription, we.JobTitle, we.JobSkills)
	}
	combined := strings.ToLower(strings.Join(parts, " "))

	for _, skill := range filters.RequiredSkills {
		if !strings.Contains(combined, strings.ToLower(skill)) {
			failures = append(failures, fmt.Sprintf("Missing required skill: %s", skill))
		}
	}

	if len(filters.RequiredFrameworks) > 0 && !containsAny(combined, filters.RequiredFrameworks) {
		failures = append(failures, fmt.Sprintf(
			"Missing required framework (need at least one of: %s)",
			strings.Join(filters.RequiredFrameworks, ", ")))
	}

	if len(filters.RequiredKeywords) > 0 && !containsAny(combined, filters.RequiredKeywords) {
		failures = append(failures, fmt.Sprintf(
			"Missing required keyword (need at least one of: %s)",
			strings.Join(filters.RequiredKeywords, ", ")))
	}

	return len(failures) == 0, failures
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
