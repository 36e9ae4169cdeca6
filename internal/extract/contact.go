package extract

import (
	"strings"

	"github.com/hsinyuc/talentsift/internal/resume"
)

// contactKeys is the field dictionary for the contact section flat-text
// fallback.
var contactKeys = []string{
	"email", "聯絡⽅式", "聯絡方式",
	"⼿機1", "手機1", "⼿機2", "手機2",
	"住家", "公司", "地區", "通訊地址",
}

// parseContact extracts contact fields using the same two-strategy pattern as
// basic info. The caller passes the basic-info section when no dedicated
// contact section exists.
func parseContact(section string, out *resume.Extract) {
	kv := KeyValuesFromRows(ParseTableRows(section))

	if kv["email"] == "" {
		text := strings.ReplaceAll(section, "**", "")
		mergeKeyValues(kv, splitOnKeys(text, keySplitPattern(contactKeys)))
	}

	out.Email = kv["email"]
	out.Mobile1 = firstKeyValue(kv, "⼿機1", "手機1")
	out.Mobile2 = firstKeyValue(kv, "⼿機2", "手機2")
	out.PhoneHome = kv["住家"]
	out.PhoneWork = kv["公司"]
	out.District = kv["地區"]
	out.MailingAddress = kv["通訊地址"]
}

// parseJobPreferences extracts the 求職條件 table.
func parseJobPreferences(section string, out *resume.Extract) {
	kv := KeyValuesFromRows(ParseTableRows(section))

	out.WorkType = firstKeyValue(kv, "希望⼯作性質", "希望工作性質")
	out.ShiftPreference = kv["希望上班時段"]
	out.RemoteWorkPreference = firstKeyValue(kv, "遠端⼯作", "遠端工作")
}
