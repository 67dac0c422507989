// Package store persists leads and properties in SQLite and implements the
// read-only inventory contract the matching engine consumes.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/costaverde/lead-matcher/internal/crm"
)

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) ensureSchema() error {
	const createProperties = `
CREATE TABLE IF NOT EXISTS properties (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL DEFAULT '',
  price REAL NOT NULL DEFAULT 0,
  location TEXT NOT NULL DEFAULT '',
  country TEXT NOT NULL DEFAULT '',
  property_type TEXT NOT NULL DEFAULT '',
  bedrooms INTEGER NOT NULL DEFAULT 0,
  amenities_json TEXT NOT NULL DEFAULT '[]',
  url TEXT NOT NULL DEFAULT '',
  main_image TEXT NOT NULL DEFAULT '',
  is_available INTEGER NOT NULL DEFAULT 1
);
`
	const createLeads = `
CREATE TABLE IF NOT EXISTS leads (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  pipeline TEXT NOT NULL DEFAULT 'buyers',
  stage TEXT NOT NULL DEFAULT 'New',
  budget_min TEXT NOT NULL DEFAULT '',
  budget_max TEXT NOT NULL DEFAULT '',
  budget_currency TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  country TEXT NOT NULL DEFAULT '',
  property_types_json TEXT NOT NULL DEFAULT '[]',
  bedrooms_json TEXT NOT NULL DEFAULT '[]',
  views_json TEXT NOT NULL DEFAULT '[]',
  amenities_json TEXT NOT NULL DEFAULT '[]'
);
`
	if _, err := s.db.Exec(createProperties); err != nil {
		return err
	}
	if _, err := s.db.Exec(createLeads); err != nil {
		return err
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_properties_available ON properties(is_available);`); err != nil {
		return err
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_leads_stage ON leads(pipeline, stage);`); err != nil {
		return err
	}
	return nil
}

// UpsertProperties inserts or replaces listings by id.
func (s *Store) UpsertProperties(properties []*crm.Property) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT OR REPLACE INTO properties
(id, title, price, location, country, property_type, bedrooms, amenities_json, url, main_image, is_available)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range properties {
		am, _ := json.Marshal(p.Amenities)
		available := 0
		if p.IsAvailable {
			available = 1
		}
		if _, err := stmt.Exec(
			p.ID, p.Title, p.Price, p.Location, p.Country, p.PropertyType,
			p.Bedrooms, string(am), p.URL, p.MainImage, available,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// UpsertLeads inserts or replaces leads by id.
func (s *Store) UpsertLeads(leads []*crm.Lead) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT OR REPLACE INTO leads
(id, name, email, phone, pipeline, stage, budget_min, budget_max, budget_currency,
 location, country, property_types_json, bedrooms_json, views_json, amenities_json)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, l := range leads {
		pt, _ := json.Marshal(l.PropertyTypes)
		bd, _ := json.Marshal(l.Bedrooms)
		vw, _ := json.Marshal(l.Views)
		am, _ := json.Marshal(l.Amenities)
		if _, err := stmt.Exec(
			l.ID, l.Name, l.Email, l.Phone, l.Pipeline, l.Stage,
			l.BudgetMin, l.BudgetMax, l.BudgetCurrency,
			l.Location, l.Country, string(pt), string(bd), string(vw), string(am),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// FetchAvailableProperties returns only currently offerable listings, in id
// order. This is the inventory contract the engine trusts: availability is
// decided here and nowhere else.
func (s *Store) FetchAvailableProperties(ctx context.Context) ([]*crm.Property, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, title, price, location, country, property_type, bedrooms, amenities_json, url, main_image, is_available
FROM properties
WHERE is_available = 1
ORDER BY id
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*crm.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// FetchActiveLeads returns buyers-pipeline leads whose stage is still before
// won/lost, in id order.
func (s *Store) FetchActiveLeads(ctx context.Context) ([]*crm.Lead, error) {
	stages := crm.ActiveStages()
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(stages)), ",")

	args := make([]any, 0, len(stages)+1)
	args = append(args, crm.PipelineOwners)
	for _, st := range stages {
		args = append(args, st)
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, email, phone, pipeline, stage, budget_min, budget_max, budget_currency,
       location, country, property_types_json, bedrooms_json, views_json, amenities_json
FROM leads
WHERE pipeline != ? AND stage IN (`+placeholders+`)
ORDER BY id
`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*crm.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// GetLead fetches a single lead by id; found is false when it is absent.
func (s *Store) GetLead(ctx context.Context, id string) (*crm.Lead, bool, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, name, email, phone, pipeline, stage, budget_min, budget_max, budget_currency,
       location, country, property_types_json, bedrooms_json, views_json, amenities_json
FROM leads WHERE id = ?
`, id)

	l, err := scanLead(row)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return l, true, nil
}

// CountProperties reports the total number of listings, available or not.
func (s *Store) CountProperties() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM properties`).Scan(&n)
	return n, err
}

// CountLeads reports the total number of leads across all pipelines.
func (s *Store) CountLeads() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM leads`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (*crm.Property, error) {
	var p crm.Property
	var amenitiesJSON string
	var available int

	if err := row.Scan(
		&p.ID, &p.Title, &p.Price, &p.Location, &p.Country, &p.PropertyType,
		&p.Bedrooms, &amenitiesJSON, &p.URL, &p.MainImage, &available,
	); err != nil {
		return nil, err
	}

	_ = json.Unmarshal([]byte(amenitiesJSON), &p.Amenities)
	p.IsAvailable = available == 1
	return &p, nil
}

func scanLead(row rowScanner) (*crm.Lead, error) {
	var l crm.Lead
	var typesJSON, bedroomsJSON, viewsJSON, amenitiesJSON string

	if err := row.Scan(
		&l.ID, &l.Name, &l.Email, &l.Phone, &l.Pipeline, &l.Stage,
		&l.BudgetMin, &l.BudgetMax, &l.BudgetCurrency,
		&l.Location, &l.Country, &typesJSON, &bedroomsJSON, &viewsJSON, &amenitiesJSON,
	); err != nil {
		return nil, err
	}

	_ = json.Unmarshal([]byte(typesJSON), &l.PropertyTypes)
	_ = json.Unmarshal([]byte(bedroomsJSON), &l.Bedrooms)
	_ = json.Unmarshal([]byte(viewsJSON), &l.Views)
	_ = json.Unmarshal([]byte(amenitiesJSON), &l.Amenities)
	return &l, nil
}
