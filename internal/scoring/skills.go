package scoring

import (
	"fmt"
	"strings"

	"github.com/hsinyuc/talentsift/internal/resume"
)

// ScoreSkills classifies the candidate's skill ecosystem and verifies that
// claimed high-value skills are backed by evidence. The raw markdown counts
// as a weaker evidence tier: a skill found there but not in structured work
// history draws a small penalty, a skill found nowhere a larger one. The
// ecosystem sets the base score; penalties subtract from it, with a floor.
func ScoreSkills(cfg *Config, candidate *resume.Extract) SkillDetail {
	c := &cfg.Skills

	tagText := strings.Join(candidate.SkillTags, " ")
	workText := workEvidenceText(candidate)
	workLower := strings.ToLower(workText)
	rawLower := strings.ToLower(candidate.RawMarkdown)

	// Work descriptions are often empty in parsed resumes; the raw text
	// carries the real evidence, so the ecosystem scan covers everything.
	eco := classifyEcosystem(tagText + " " + workText + " " + candidate.RawMarkdown)
	score := c.EcosystemScores[eco]

	var flags []string

	if strings.TrimSpace(workText) != "" {
		tagLower := strings.ToLower(tagText)
		for _, skill := range c.HighValueSkills {
			sl := strings.ToLower(skill)
			if !strings.Contains(tagLower, sl) || strings.Contains(workLower, sl) {
				continue
			}
			if strings.Contains(rawLower, sl) {
				flags = append(flags, fmt.Sprintf(
					"Claimed %q found in portfolio or self-intro but not in work history", skill))
				score -= c.PortfolioPenalty
			} else {
				flags = append(flags, fmt.Sprintf(
					"Claimed %q with no evidence in work experience or portfolio", skill))
				score -= c.UnsupportedPenalty
			}
		}
	}

	if isKeywordStuffing(c, candidate.WorkExperiences) {
		flags = append(flags, "Skill list disproportionate to work history (possible keyword stuffing)")
		score -= c.StuffingPenalty
	}

	if score < c.Floor {
		score = c.Floor
	}

	return SkillDetail{
		Ecosystem:       eco,
		SuspiciousFlags: flags,
		Score:           round1(score),
	}
}

// workEvidenceText is the structured-evidence corpus for claim verification:
// descriptions and skill lists, without titles.
func workEvidenceText(candidate *resume.Extract) string {
	parts := make([]string, 0, len(candidate.WorkExperiences)*2)
	for _, we := range candidate.WorkExperiences {
		parts = append(parts, we.JobDescription, we.JobSkills)
	}
	return strings.Join(parts, " ")
}

func classifyEcosystem(corpus string) string {
	switch {
	case llmStackPattern.MatchString(corpus):
		return "LLM Stack"
	case deepLearningPattern.MatchString(corpus):
		return "Deep Learning"
	case traditionalMLPattern.MatchString(corpus):
		return "Traditional ML"
	}
	return "General"
}

// isKeywordStuffing flags entries whose skill lists dwarf the descriptions
// backing them, with a word floor so thin but honest junior histories are
// exempt.
func isKeywordStuffing(c *SkillsConfig, works []resume.WorkExperience) bool {
	var skillWords, descWords int
	for _, we := range works {
		skillWords += len(strings.Fields(we.JobSkills))
		descWords += len(strings.Fields(we.JobDescription))
	}
	return float64(skillWords) > float64(descWords)*c.StuffingRatio && skillWords > c.StuffingMinWords
}
