// Package ledger is the small local store behind `cmd/citeql --continue`:
// resolved resources from one CLI invocation are persisted so a later
// invocation's Short/Supra/Reference citations can resolve against resources seen in an
// earlier file, without re-extracting or re-parsing it.
package ledger

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"lexcite/pkg/citation/model"
)

// Store wraps a goose-migrated sqlite database of resolved resources.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite file at path and brings its
// schema up to date.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("ledger: open %s: %w", path, err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Record persists every resolved resource from a run, tagged with the
// document id it was seen under, upserting on Resource.Key so re-extracting
// the same document refreshes last_seen instead of duplicating rows.
func (s *Store) Record(byResource map[*model.Resource]model.List, seenIn string) error {
	for res, cites := range byResource {
		if res == nil || len(cites) == 0 {
			continue
		}
		full := cites[0]
		caseName := caseNameOf(full)
		if _, err := s.db.Exec(
			`INSERT INTO resources (key, case_name, variant, full_text, seen_in, last_seen)
			 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT(key) DO UPDATE SET
			   last_seen = CURRENT_TIMESTAMP,
			   seen_in   = excluded.seen_in,
			   case_name = CASE WHEN excluded.case_name != '' THEN excluded.case_name ELSE resources.case_name END`,
			res.Key, caseName, full.Variant().String(), full.MatchedText(), seenIn,
		); err != nil {
			return fmt.Errorf("ledger: record %s: %w", res.Key, err)
		}
	}
	return nil
}

// SeedResource is one previously resolved resource, read back for a
// continuation run.
type SeedResource struct {
	Key      string
	CaseName string
	Variant  string
	FullText string
	SeenIn   string
}

func (r SeedResource) resource() *model.Resource {
	return &model.Resource{Key: r.Key, CaseName: r.CaseName}
}

// Seed returns every resource the ledger currently holds, for
// resolver.Continue to match new citations against.
func (s *Store) Seed() ([]SeedResource, error) {
	rows, err := s.db.Query(`SELECT key, case_name, variant, full_text, seen_in FROM resources`)
	if err != nil {
		return nil, fmt.Errorf("ledger: seed query: %w", err)
	}
	defer rows.Close()

	var out []SeedResource
	for rows.Next() {
		var r SeedResource
		if err := rows.Scan(&r.Key, &r.CaseName, &r.Variant, &r.FullText, &r.SeenIn); err != nil {
			return nil, fmt.Errorf("ledger: seed scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Prune deletes resources not touched within ttl, the cleanup the
// cmd/server cron job runs against the ledger (spec_full §B).
func (s *Store) Prune(ttl time.Duration) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM resources WHERE last_seen < ?`, time.Now().Add(-ttl))
	if err != nil {
		return 0, fmt.Errorf("ledger: prune: %w", err)
	}
	return res.RowsAffected()
}

func caseNameOf(c model.Citation) string {
	m := c.Metadata()
	if m.ResolvedCaseName != "" {
		return m.ResolvedCaseName
	}
	if m.Plaintiff != "" || m.Defendant != "" {
		return m.Plaintiff + " v. " + m.Defendant
	}
	return ""
}
