package registry

import "strconv"

// This file is the data-table contract of spec §6: the shapes the
// reporter/law/journal/court tables must satisfy. The tables themselves are
// an external collaborator (spec §1 "deliberately out of scope"); this
// package only consumes them, defaulting to the small sample table that
// loader.go embeds from data/default_tables.json when a caller does not
// supply its own.

// EditionSpec describes one dated series of a reporter within a
// ReporterEntry's edition map.
type EditionSpec struct {
	Start   string   `json:"start,omitempty" yaml:"start,omitempty"` // "YYYY-MM-DD" or "YYYY"
	End     string   `json:"end,omitempty" yaml:"end,omitempty"`
	Regexes []string `json:"regexes,omitempty" yaml:"regexes,omitempty"` // symbolic templates, default form if empty
	Format  string   `json:"format,omitempty" yaml:"format,omitempty"`  // "", "year_page", or "hyphen_separated"
}

// VariationSpec is an alternate spelling of a reporter/law/journal name
// that should extract to the same canonical key.
type VariationSpec struct {
	Name    string   `json:"name" yaml:"name"`
	Regexes []string `json:"regexes,omitempty" yaml:"regexes,omitempty"`
}

// ReporterEntry is one row of the reporter table (cases).
type ReporterEntry struct {
	CiteType     string                 `json:"cite_type" yaml:"cite_type"`
	Name         string                 `json:"name" yaml:"name"`
	IsScotus     bool                   `json:"is_scotus,omitempty" yaml:"is_scotus,omitempty"`
	Nominative   bool                   `json:"nominative,omitempty" yaml:"nominative,omitempty"`
	Editions     map[string]EditionSpec `json:"editions" yaml:"editions"`
	Variations   []VariationSpec        `json:"variations,omitempty" yaml:"variations,omitempty"`
	Jurisdictions []string              `json:"jurisdictions,omitempty" yaml:"jurisdictions,omitempty"`
}

// LawEntry is one row of the law/regulation table.
type LawEntry struct {
	CiteType    string          `json:"cite_type" yaml:"cite_type"`
	Name        string          `json:"name" yaml:"name"`
	Regexes     []string        `json:"regexes" yaml:"regexes"`
	Variations  []VariationSpec `json:"variations,omitempty" yaml:"variations,omitempty"`
	SectionForm string          `json:"section_form,omitempty" yaml:"section_form,omitempty"` // "title", "chapter", "volume"
}

// JournalEntry is one row of the journal table.
type JournalEntry struct {
	Name       string          `json:"name" yaml:"name"`
	Variations []VariationSpec `json:"variations,omitempty" yaml:"variations,omitempty"`
}

// CourtEntry is one row of the court table.
type CourtEntry struct {
	ID              string   `json:"id" yaml:"id"`
	Regex           []string `json:"regex,omitempty" yaml:"regex,omitempty"` // may contain "${coa}"
	CitationString  string   `json:"citation_string" yaml:"citation_string"`
}

// Tables is the full read-only data-table contract consumed by the
// registry: reporters keyed by canonical short name, laws keyed by
// canonical reporter name, journals keyed by canonical name, and the court
// list.
type Tables struct {
	Reporters map[string]ReporterEntry `json:"reporters" yaml:"reporters"`
	Laws      map[string]LawEntry      `json:"laws" yaml:"laws"`
	Journals  map[string]JournalEntry  `json:"journals" yaml:"journals"`
	Courts    []CourtEntry             `json:"courts" yaml:"courts"`
}

// Validate enforces the data-table contract at load time (spec §6:
// "Shapes must be enforced at load time; failure is a fatal configuration
// error").
func (t *Tables) Validate() error {
	for key, r := range t.Reporters {
		if r.CiteType == "" || r.Name == "" {
			return &ConfigError{Msg: "reporter " + key + ": cite_type and name are required"}
		}
		if len(r.Editions) == 0 {
			return &ConfigError{Msg: "reporter " + key + ": at least one edition is required"}
		}
	}
	for key, l := range t.Laws {
		if l.CiteType == "" || len(l.Regexes) == 0 {
			return &ConfigError{Msg: "law " + key + ": cite_type and at least one regex are required"}
		}
	}
	for key, j := range t.Journals {
		if j.Name == "" {
			return &ConfigError{Msg: "journal " + key + ": name is required"}
		}
	}
	for i, c := range t.Courts {
		if c.ID == "" {
			return &ConfigError{Msg: "courts[" + strconv.Itoa(i) + "]: id is required"}
		}
	}
	return nil
}

// ConfigError is a fatal configuration error (spec §7): malformed pattern,
// unknown data-table shape, or an unresolvable duplicate named group.
// Surfaced only at registry construction time, never at tokenize time.
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return "citation: configuration error: " + e.Msg + ": " + e.Err.Error()
	}
	return "citation: configuration error: " + e.Msg
}

func (e *ConfigError) Unwrap() error { return e.Err }
