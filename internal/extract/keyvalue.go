package extract

import (
	"regexp"
	"strings"
)

var (
	keyCellPattern  = regexp.MustCompile(`[:：]\s*$`)
	keySuffixStrip  = regexp.MustCompile(`[\s*]*[:：]\s*$`)
	imageLinePrefix = "!["
)

// KeyValuesFromRows scans table rows for key/value pairs. A cell whose
// trailing characters (after stripping bold markers) are a colon is a key and
// the immediately following cell is its value.
func KeyValuesFromRows(rows [][]string) map[string]string {
	kv := make(map[string]string)
	for _, cells := range rows {
		for i := 0; i < len(cells); {
			cell := strings.TrimSpace(cells[i])
			if !keyCellPattern.MatchString(cell) {
				i++
				continue
			}

			key := strings.TrimSpace(keySuffixStrip.ReplaceAllString(cell, ""))
			key = strings.TrimSpace(strings.ReplaceAll(key, "*", ""))
			val := ""
			if i+1 < len(cells) {
				val = strings.TrimSpace(cells[i+1])
			}
			if key != "" {
				kv[key] = val
			}
			i += 2
		}
	}
	return kv
}

// basicInfoKeys is the ordered dictionary of known bilingual field names used
// by the flat-text fallback. Both Unicode-normalization variants of each field
// are listed because OCR output mixes radical and ideograph forms.
var basicInfoKeys = []string{
	"姓/名", "姓名", "英⽂名字", "英文名字", "104代碼",
	"年齡", "國籍", "⽬前⾝份", "目前身份", "最快可上班⽇", "最快可上班日",
	"⾝⼼障礙類別", "身心障礙類別",
	"學歷", "學校", "科系", "兵役狀況", "退伍時間",
	"希望薪資待遇", "希望職務類別", "希望⼯作地點", "希望工作地點",
	"希望從事產業", "理想職務", "語⾔", "語言", "年資", "特殊⾝份", "特殊身份",
	"最近⼯作", "最近工作", "相關職務經驗/年資",
	"駕駛執照", "交通⼯具", "交通工具",
	"個⼈簡介", "個人簡介", "個⼈格⾔", "個人格言", "個⼈特⾊", "個人特色",
	"個⼈連結", "個人連結",
}

// keySplitPattern builds a pattern matching any of the given field names
// followed by a half- or full-width colon.
func keySplitPattern(keys []string) *regexp.Regexp {
	escaped := make([]string, len(keys))
	for i, k := range keys {
		escaped[i] = regexp.QuoteMeta(k)
	}
	return regexp.MustCompile(`(` + strings.Join(escaped, "|") + `)\s*[:：]\s*`)
}

// splitOnKeys splits text on known field names and returns the key/value pairs
// in document order. The text between one key's colon and the next key is that
// key's value. First occurrence of a key wins.
func splitOnKeys(text string, pattern *regexp.Regexp) map[string]string {
	kv := make(map[string]string)
	matches := pattern.FindAllStringSubmatchIndex(text, -1)
	for i, m := range matches {
		key := strings.TrimSpace(text[m[2]:m[3]])
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		val := strings.TrimSpace(text[m[1]:end])
		if key != "" {
			if _, ok := kv[key]; !ok {
				kv[key] = val
			}
		}
	}
	return kv
}

// KeyValuesFromFlatText is the fallback strategy for sections where OCR
// collapsed the table into one text blob. It strips bold markers, joins all
// non-heading, non-image lines and splits the result on the known field names.
func KeyValuesFromFlatText(section string, keys []string) map[string]string {
	var lines []string
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, imageLinePrefix) {
			continue
		}
		if headingPattern.MatchString(line) {
			continue
		}
		lines = append(lines, line)
	}
	text := strings.Join(lines, " ")

	// 姓**/**名**:** → 姓/名:
	text = strings.ReplaceAll(text, "**", "")

	return splitOnKeys(text, keySplitPattern(keys))
}

// mergeKeyValues copies pairs from src into dst without overwriting existing
// non-empty values.
func mergeKeyValues(dst, src map[string]string) {
	for k, v := range src {
		if cur, ok := dst[k]; !ok || cur == "" {
			dst[k] = v
		}
	}
}

// firstKeyValue returns the first non-empty value among the given keys.
func firstKeyValue(kv map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := kv[k]; v != "" {
			return v
		}
	}
	return ""
}
