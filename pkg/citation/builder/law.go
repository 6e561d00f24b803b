package builder

import (
	"regexp"
	"strings"

	"lexcite/pkg/citation/model"
)

// singleDottedSectionRe matches a single dot-separated "part.section" form
// (spec §4.4: "778.113" decomposes to part "778", section "113"); a
// multi-section comma-joined form never matches this and is left verbatim.
var singleDottedSectionRe = regexp.MustCompile(`^(\d+)\.(\d+(?:\([a-zA-Z0-9]+\))*)$`)

// NormalizeLawSection splits a raw captured section into part/section_only
// when it is a single dotted form and the reporter's convention uses part
// numbers (spec §4.4, §9). sectionForm follows the registry's
// "title"/"chapter"/"volume" convention: chapter-form reporters (C.F.R.-
// style) decompose; title-form (U.S.C.-style) and volume-form (Stat.-style)
// never do, since their section numbers do not carry a part prefix.
func NormalizeLawSection(sectionForm, raw string) (part, sectionOnly string) {
	if sectionForm != "chapter" {
		return "", raw
	}
	if strings.Contains(raw, ",") {
		return "", raw
	}
	if m := singleDottedSectionRe.FindStringSubmatch(raw); m != nil {
		return m[1], m[2]
	}
	return "", raw
}

// ApplyLawLocatorFields records the reporter-specific locator on Metadata
// per the normalization rule of spec §9: title for U.S.C., chapter for
// C.F.R., volume for Stat.
func ApplyLawLocatorFields(sectionForm, locator string, meta *model.Metadata) {
	switch sectionForm {
	case "chapter":
		meta.Chapter = locator
	case "volume":
		meta.Volume = locator
	default:
		meta.Title = locator
	}
}
