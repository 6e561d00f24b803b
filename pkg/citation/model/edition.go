package model

// ReporterHandle identifies a reporter (or law/journal code) independent of
// any one of its editions.
type ReporterHandle struct {
	ShortName string
	FullName  string
	CiteType  string // "federal", "state", "neutral", "specialty", "journal", "law", ...
	IsScotus  bool
}

// Edition is one dated series of a reporter: (reporter, found spelling,
// optional start/end year). An absent End means the edition is still
// current.
type Edition struct {
	Reporter  ReporterHandle
	FoundName string
	Start     *int
	End       *int
}

// ContainsYear reports whether y falls within [Start, End], treating a nil
// End as "present" and a nil Start as "since always".
func (e Edition) ContainsYear(y int) bool {
	if e.Start != nil && y < *e.Start {
		return false
	}
	if e.End != nil && y > *e.End {
		return false
	}
	return true
}

func IntPtr(v int) *int { return &v }
