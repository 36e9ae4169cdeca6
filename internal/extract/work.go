package extract

import (
	"regexp"
	"strings"

	"github.com/hsinyuc/talentsift/internal/resume"
)

// companyLinePattern matches "<company>, <start>~<end>(<duration>)" which
// starts a new work-experience entry.
var companyLinePattern = regexp.MustCompile(`(.+?)\s*,\s*(\d{4}/\d{2}/\d{2})\s*~\s*(\S+)\s*\(([^)]+)\)`)

// workKeys is the field dictionary scanned inside an entry.
var workKeys = []string{
	"產業類別", "公司規模", "職務類別", "管理責任", "職務名稱",
	"⼯作內容", "工作內容", "⼯作技能", "工作技能",
}

var workKeyPattern = keySplitPattern(workKeys)

func applyWorkKV(kv map[string]string, we *resume.WorkExperience) {
	if v, ok := kv["產業類別"]; ok {
		we.Industry = v
	}
	if v, ok := kv["公司規模"]; ok {
		we.CompanySize = v
	}
	if v, ok := kv["職務類別"]; ok {
		we.JobCategory = v
	}
	if v, ok := kv["管理責任"]; ok {
		we.ManagementResponsibility = v
	}
	if v, ok := kv["職務名稱"]; ok {
		we.JobTitle = v
	}
	if v := firstKeyValue(kv, "⼯作內容", "工作內容"); v != "" {
		we.JobDescription = v
	}
	if v := firstKeyValue(kv, "⼯作技能", "工作技能"); v != "" {
		we.JobSkills = v
	}
}

// parseWorkExperience runs the two-pass extraction: table rows first, then a
// flat-text line scan when the table pass finds nothing.
func parseWorkExperience(section string) []resume.WorkExperience {
	var experiences []resume.WorkExperience

	var current *resume.WorkExperience
	seq := 0

	flush := func() {
		if current != nil {
			experiences = append(experiences, *current)
			current = nil
		}
	}

	startEntry := func(m []string) {
		flush()
		seq++
		current = &resume.WorkExperience{
			Seq:         seq,
			CompanyName: strings.TrimSpace(m[1]),
			DateStart:   m[2],
			DateEnd:     m[3],
			Duration:    m[4],
		}
	}

	// Pass 1: table rows.
	for _, cells := range ParseTableRows(section) {
		joined := strings.Join(cells, " ")
		if m := companyLinePattern.FindStringSubmatch(joined); m != nil {
			startEntry(m)
			continue
		}
		if current == nil {
			continue
		}
		applyWorkKV(KeyValuesFromRows([][]string{cells}), current)
	}
	flush()

	if len(experiences) > 0 {
		return experiences
	}

	// Pass 2: flat text. OCR sometimes reorders lines so keyed fields appear
	// before the company line; buffer those and apply them to the first entry.
	clean := strings.ReplaceAll(section, "**", "")
	pending := make(map[string]string)
	seq = 0

	for _, line := range strings.Split(clean, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := companyLinePattern.FindStringSubmatch(line); m != nil {
			startEntry(m)
			if len(pending) > 0 {
				applyWorkKV(pending, current)
				pending = make(map[string]string)
			}
			continue
		}

		kv := splitOnKeys(line, workKeyPattern)
		if current != nil {
			applyWorkKV(kv, current)
		} else {
			for k, v := range kv {
				pending[k] = v
			}
		}
	}
	flush()

	return experiences
}
