package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hsinyuc/talentsift/internal/resume"
)

// ScoreExperience classifies the candidate on the 3-tier AI pyramid and
// returns the experience dimension score.
//
// Tier assignment scans the full corpus (work history, raw narrative and
// skill tags) with unweighted keyword totals, so a candidate is never
// demoted for where the evidence sits. The stack bonus is position-weighted:
// a keyword appearing only in the skill-tag header counts at TagWeightFactor
// of its weight, since tag lists are cheap to pad.
func ScoreExperience(cfg *Config, candidate *resume.Extract) ExperienceDetail {
	c := &cfg.Experience

	evidenceText := strings.ToLower(candidate.CombinedWorkText() + " " + candidate.RawMarkdown)
	tagText := strings.ToLower(strings.Join(candidate.SkillTags, " "))
	combined := evidenceText + " " + tagText

	if strings.TrimSpace(combined) == "" {
		return ExperienceDetail{
			Tier:      1,
			TierLabel: c.TierLabels[1],
			Score:     c.TierBaseScores[1],
		}
	}

	thresholdWeight := map[int]float64{1: 0, 2: 0, 3: 0}
	var stackScore float64
	var evidence []string

	for _, tier := range []int{3, 2, 1} {
		kws := c.Keywords[tier]

		// Deterministic iteration so evidence ordering is stable.
		names := make([]string, 0, len(kws))
		for k := range kws {
			names = append(names, k)
		}
		sort.Strings(names)

		for _, kw := range names {
			kwLower := strings.ToLower(kw)
			inEvidence := strings.Contains(evidenceText, kwLower)
			inTags := strings.Contains(tagText, kwLower)
			if !inEvidence && !inTags {
				continue
			}

			weight := kws[kw]
			thresholdWeight[tier] += weight

			entry := fmt.Sprintf("[T%d] %s", tier, kw)
			if inEvidence {
				stackScore += weight
			} else {
				stackScore += weight * c.TagWeightFactor
				entry += " (tag)"
			}
			if len(evidence) < c.EvidenceCap {
				evidence = append(evidence, entry)
			}
		}
	}

	tier := 1
	switch {
	case thresholdWeight[3] >= c.Tier3MinWeight:
		tier = 3
	case thresholdWeight[3] > 0 || thresholdWeight[2] > 0:
		tier = 2
	}

	base := c.TierBaseScores[tier]
	stackBonus := math.Min(2.0*stackScore, c.StackBonusCap)
	complexity := complexityScore(combined)
	metric := metricScore(combined)

	score := math.Min(base+stackBonus+complexity+metric, 100.0)

	return ExperienceDetail{
		Tier:            tier,
		TierLabel:       c.TierLabels[tier],
		Evidence:        evidence,
		TechStackScore:  round2(stackScore),
		ComplexityScore: round2(complexity),
		MetricScore:     round2(metric),
		Score:           round1(score),
	}
}

// complexityScore awards up to 5 points for three independent signals of
// project scale: data volume, system architecture and model size.
func complexityScore(text string) float64 {
	var ratio float64
	if dataScalePattern.MatchString(text) {
		ratio += 0.33
	}
	if systemArchPattern.MatchString(text) {
		ratio += 0.33
	}
	if modelScalePattern.MatchString(text) {
		ratio += 0.34
	}
	return ratio * 5.0
}

// metricScore awards up to 5 points for quantified improvement claims.
// Four distinct metrics saturate the bonus.
func metricScore(text string) float64 {
	n := len(validMetricPattern.FindAllString(text, -1))
	return math.Min(0.25*float64(n), 1.0) * 5.0
}
