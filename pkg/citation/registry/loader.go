package registry

import (
	_ "embed"
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

//go:embed data/default_tables.json
var defaultTablesJSON []byte

// DefaultTables returns the small sample reporter/law/journal/court table
// bundled with the module. Real deployments supply their own (spec §1
// treats the tables as an external, read-only collaborator); this is
// enough to exercise every code path and every spec §8 scenario.
func DefaultTables() (*Tables, error) {
	var t Tables
	if err := json.Unmarshal(defaultTablesJSON, &t); err != nil {
		return nil, &ConfigError{Msg: "failed to parse embedded default tables", Err: err}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadJSON reads a Tables document from JSON.
func LoadJSON(r io.Reader) (*Tables, error) {
	var t Tables
	dec := json.NewDecoder(r)
	if err := dec.Decode(&t); err != nil {
		return nil, &ConfigError{Msg: "failed to parse JSON data tables", Err: err}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadYAML reads a Tables document from YAML, the format maintained by hand
// in the pack's config-driven repos (gopkg.in/yaml.v3).
func LoadYAML(r io.Reader) (*Tables, error) {
	var t Tables
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&t); err != nil {
		return nil, &ConfigError{Msg: "failed to parse YAML data tables", Err: err}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Merge overlays extra tables on top of base, extra winning on key
// collision. Used to let a caller extend the default tables instead of
// replacing them wholesale.
func Merge(base, extra *Tables) *Tables {
	out := &Tables{
		Reporters: cloneReporters(base.Reporters),
		Laws:      cloneLaws(base.Laws),
		Journals:  cloneJournals(base.Journals),
		Courts:    append([]CourtEntry{}, base.Courts...),
	}
	for k, v := range extra.Reporters {
		out.Reporters[k] = v
	}
	for k, v := range extra.Laws {
		out.Laws[k] = v
	}
	for k, v := range extra.Journals {
		out.Journals[k] = v
	}
	out.Courts = append(out.Courts, extra.Courts...)
	return out
}

func cloneReporters(m map[string]ReporterEntry) map[string]ReporterEntry {
	out := make(map[string]ReporterEntry, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneLaws(m map[string]LawEntry) map[string]LawEntry {
	out := make(map[string]LawEntry, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneJournals(m map[string]JournalEntry) map[string]JournalEntry {
	out := make(map[string]JournalEntry, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
