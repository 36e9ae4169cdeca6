package scoring

import (
	"math"
	"strings"

	"github.com/hsinyuc/talentsift/internal/resume"
)

type degreeLevel int

const (
	degreeBachelor degreeLevel = iota
	degreeMaster
	degreeDoctorate
)

var (
	masterKeywords    = []string{"碩士", "碩", "master", "mba", "m.s."}
	doctorateKeywords = []string{"博士", "phd", "doctorate", "ph.d."}
)

func classifyDegree(degree string) degreeLevel {
	dl := strings.ToLower(degree)
	for _, k := range doctorateKeywords {
		if strings.Contains(dl, k) {
			return degreeDoctorate
		}
	}
	for _, k := range masterKeywords {
		if strings.Contains(dl, k) {
			return degreeMaster
		}
	}
	return degreeBachelor
}

// schoolPoints looks up the school tier. A doctorate is top tier irrespective
// of the school name and carries the higher point value.
func (c *EducationConfig) schoolPoints(school string, level degreeLevel) (string, float64) {
	if level == degreeDoctorate {
		return "A", c.SchoolDoctoratePoints
	}
	lower := strings.ToLower(school)
	for _, s := range gradeASchools {
		if strings.Contains(lower, strings.ToLower(s)) {
			return "A", c.SchoolTopPoints
		}
	}
	if twGradeAPattern.MatchString(school) {
		return "A", c.SchoolTopPoints
	}
	if twGradeBPattern.MatchString(school) {
		return "B", c.SchoolMidPoints
	}
	return "C", 0
}

func (c *EducationConfig) majorPoints(department string) (string, float64) {
	if coreMajorPattern.MatchString(department) {
		return "Tier1", c.MajorCorePoints
	}
	if quantMajorPattern.MatchString(department) {
		return "Tier2", c.MajorQuantPoints
	}
	return "Other", 0
}

func (c *EducationConfig) scoreEntry(ed resume.Education, level degreeLevel) *EducationLevelDetail {
	sTier, sPts := c.schoolPoints(ed.School, level)
	mTier, mPts := c.majorPoints(ed.Department)
	return &EducationLevelDetail{
		School:         ed.School,
		SchoolTier:     sTier,
		SchoolPoints:   sPts,
		Major:          ed.Department,
		MajorRelevance: mTier,
		MajorPoints:    mPts,
		BaseScore:      sPts + mPts,
	}
}

// ScoreEducation grades the education history with the hybrid bachelor/
// graduate weighting: the single best bachelor entry and the single best
// graduate entry (master and doctorate share the slot) are blended, the
// result normalized to 0-100 with a pre-bonus cap, and thesis signals found
// in the raw text add a bonus after the cap.
func ScoreEducation(cfg *Config, education []resume.Education, rawMarkdown string) EducationDetail {
	if len(education) == 0 {
		return EducationDetail{}
	}
	c := &cfg.Education

	var bachelorBest, graduateBest *EducationLevelDetail
	for _, ed := range education {
		level := classifyDegree(ed.DegreeLevel)
		detail := c.scoreEntry(ed, level)

		if level == degreeBachelor {
			if bachelorBest == nil || detail.BaseScore > bachelorBest.BaseScore {
				bachelorBest = detail
			}
		} else {
			if graduateBest == nil || detail.BaseScore > graduateBest.BaseScore {
				graduateBest = detail
			}
		}
	}

	var bScore, gScore float64
	if bachelorBest != nil {
		bScore = bachelorBest.BaseScore
	}
	if graduateBest != nil {
		gScore = graduateBest.BaseScore
	}

	var hybrid float64
	if graduateBest != nil {
		hybrid = bScore*c.BachelorWeight + gScore*c.GraduateWeight
	} else {
		hybrid = bScore * c.BachelorOnlyWeight
	}

	score := math.Min(hybrid/c.Denominator*100.0, c.PreBonusCap)

	var bonus float64
	if rawMarkdown != "" {
		if thesisAIPattern.MatchString(rawMarkdown) {
			bonus += c.ThesisBonusPer
		}
		if topVenuePattern.MatchString(rawMarkdown) {
			bonus += c.ThesisBonusPer
		}
	}
	score = math.Min(score+bonus, 100.0)

	return EducationDetail{
		Bachelor:    bachelorBest,
		Graduate:    graduateBest,
		ThesisBonus: bonus,
		Score:       round1(score),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
