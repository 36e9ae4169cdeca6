package scoring

import (
	"math"
	"regexp"
	"strings"

	"github.com/hsinyuc/talentsift/internal/resume"
)

type ladder struct {
	l3, l2, l1 *regexp.Regexp
}

var (
	backendLadder  = ladder{backendL3Pattern, backendL2Pattern, backendL1Pattern}
	databaseLadder = ladder{dbL3Pattern, dbL2Pattern, dbL1Pattern}
	frontendLadder = ladder{feL3Pattern, feL2Pattern, feL1Pattern}
)

func (l ladder) level(text string) int {
	switch {
	case l.l3.MatchString(text):
		return 3
	case l.l2.MatchString(text):
		return 2
	case l.l1.MatchString(text):
		return 1
	}
	return 0
}

// ScoreEngineering measures full-stack maturity on three independent
// ladders. Each ladder contributes the score of the highest level matched
// anywhere in the resume text; the multiplier is the capped sum.
func ScoreEngineering(cfg *Config, candidate *resume.Extract) EngineeringDetail {
	c := &cfg.Engineering
	text := strings.Join([]string{
		candidate.CombinedWorkText(),
		strings.Join(candidate.SkillTags, " "),
		candidate.RawMarkdown,
	}, " ")

	be := backendLadder.level(text)
	db := databaseLadder.level(text)
	fe := frontendLadder.level(text)

	beScore := c.BackendScores[be]
	dbScore := c.DatabaseScores[db]
	feScore := c.FrontendScores[fe]

	return EngineeringDetail{
		BackendLevel:  be,
		BackendScore:  beScore,
		DatabaseLevel: db,
		DatabaseScore: dbScore,
		FrontendLevel: fe,
		FrontendScore: feScore,
		MEng:          round2(math.Min(beScore+dbScore+feScore, c.Ceiling)),
	}
}

// EngineeringScore100 normalizes the engineering multiplier to the 0-100
// range used by the weighted aggregation, relative to the configured ceiling.
func EngineeringScore100(cfg *Config, d EngineeringDetail) float64 {
	if cfg.Engineering.Ceiling <= 0 {
		return 0
	}
	return round1(d.MEng / cfg.Engineering.Ceiling * 100.0)
}
