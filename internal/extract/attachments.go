package extract

import (
	"regexp"
	"strings"

	"github.com/hsinyuc/talentsift/internal/resume"
)

var attachmentNumberPattern = regexp.MustCompile(`^(\d+)\.$`)

// attachmentHeaderCells are literal column-name tokens; rows containing one
// are table headers, not entries.
var attachmentHeaderCells = map[string]struct{}{
	"#": {}, "名稱": {}, "姓名": {}, "電⼦郵件": {}, "電話": {}, "檔案/連結": {}, "說明": {},
}

// parseAttachments walks the trailing references/attachments table as a state
// machine: a row mentioning a section label switches the mode, and subsequent
// numbered rows are captured under that mode. The 104 layout puts attachment
// rows directly after the 推薦人 label, so numbered rows in both modes become
// attachments.
func parseAttachments(text string) ([]resume.Reference, []resume.Attachment) {
	refs := []resume.Reference{}
	attachments := []resume.Attachment{}

	mode := ""
	attSeq := 0

	for _, cells := range ParseTableRows(text) {
		if len(cells) == 0 {
			continue
		}
		joined := strings.Join(cells, " ")

		if strings.Contains(joined, "推薦⼈") || strings.Contains(joined, "推薦人") {
			mode = "ref"
		}
		if strings.Contains(joined, "附件") {
			mode = "att"
		}
		if strings.Contains(joined, "專案成就") {
			mode = "project"
		}
		if strings.Contains(joined, "其他作品") {
			mode = "other"
		}

		if isHeaderRow(cells) {
			continue
		}

		numbered := false
		for _, c := range cells {
			if attachmentNumberPattern.MatchString(strings.TrimSpace(c)) {
				numbered = true
				break
			}
		}
		if !numbered {
			continue
		}

		if mode == "att" || mode == "ref" {
			attSeq++
			name, fileLink := "", ""
			for _, c := range cells {
				c = strings.TrimSpace(c)
				if c == "" || attachmentNumberPattern.MatchString(c) {
					continue
				}
				if c == "推薦⼈" || c == "推薦人" || c == "附件" {
					continue
				}
				if name == "" {
					name = c
				} else if fileLink == "" {
					fileLink = c
				}
			}
			attachments = append(attachments, resume.Attachment{
				Type: "附件",
				Seq:  attSeq,
				Name: name,
				URL:  fileLink,
			})
		}
	}

	return refs, attachments
}

func isHeaderRow(cells []string) bool {
	for _, c := range cells {
		if _, ok := attachmentHeaderCells[strings.TrimSpace(c)]; ok {
			return true
		}
	}
	return false
}
