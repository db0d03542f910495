package importer

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Source is one row of the dataset_sources table. The nullable check
// columns stay nil until the first availability check runs.
type Source struct {
	AdapterID   string
	Target      string
	Description string
	SourceURL   string
	License     string
	LastCheck   *int64
	LastStatus  *int
	LastError   *string
	UpdatedAt   int64
}

// SourceDB persists per-adapter source URLs and check results.
type SourceDB struct {
	db *sql.DB
}

const sourcesSchema = `CREATE TABLE IF NOT EXISTS dataset_sources (
	adapter_id   TEXT PRIMARY KEY,
	target       TEXT NOT NULL,
	description  TEXT NOT NULL,
	source_url   TEXT NOT NULL,
	license      TEXT NOT NULL DEFAULT '',
	last_check   INTEGER,
	last_status  INTEGER,
	last_error   TEXT,
	updated_at   INTEGER NOT NULL
)`

// OpenSourceDB opens (or creates) the SQLite database at path.
func OpenSourceDB(path string) (*SourceDB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open source db: %w", err)
	}
	if _, err := db.Exec(sourcesSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create dataset_sources table: %w", err)
	}
	return &SourceDB{db: db}, nil
}

func (s *SourceDB) Close() error {
	return s.db.Close()
}

// Seed inserts a default row per adapter. Existing rows are left alone
// so operator URL overrides survive restarts.
func (s *SourceDB) Seed(adapters []Adapter) error {
	now := time.Now().Unix()
	for _, a := range adapters {
		_, err := s.db.Exec(
			`INSERT OR IGNORE INTO dataset_sources
			 (adapter_id, target, description, source_url, license, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			a.ID(), a.Target(), a.Description(), a.DefaultURL(), a.License(), now,
		)
		if err != nil {
			return fmt.Errorf("seed %s: %w", a.ID(), err)
		}
	}
	return nil
}

// GetURL returns the active source URL for an adapter.
func (s *SourceDB) GetURL(adapterID string) (string, error) {
	var url string
	err := s.db.QueryRow(
		`SELECT source_url FROM dataset_sources WHERE adapter_id = ?`, adapterID,
	).Scan(&url)
	if err != nil {
		return "", fmt.Errorf("get url for %s: %w", adapterID, err)
	}
	return url, nil
}

// SetURL overrides an adapter's source URL.
func (s *SourceDB) SetURL(adapterID, url string) error {
	res, err := s.db.Exec(
		`UPDATE dataset_sources SET source_url = ?, updated_at = ? WHERE adapter_id = ?`,
		url, time.Now().Unix(), adapterID,
	)
	if err != nil {
		return fmt.Errorf("set url for %s: %w", adapterID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("adapter %s not found in dataset_sources", adapterID)
	}
	return nil
}

// UpdateCheck records an availability check result. An empty checkErr
// stores NULL.
func (s *SourceDB) UpdateCheck(adapterID string, status int, checkErr string) error {
	var errVal *string
	if checkErr != "" {
		errVal = &checkErr
	}
	_, err := s.db.Exec(
		`UPDATE dataset_sources SET last_check = ?, last_status = ?, last_error = ? WHERE adapter_id = ?`,
		time.Now().Unix(), status, errVal, adapterID,
	)
	if err != nil {
		return fmt.Errorf("update check for %s: %w", adapterID, err)
	}
	return nil
}

// ListSources returns all rows ordered by adapter id.
func (s *SourceDB) ListSources() ([]Source, error) {
	rows, err := s.db.Query(
		`SELECT adapter_id, target, description, source_url, license,
		        last_check, last_status, last_error, updated_at
		 FROM dataset_sources ORDER BY adapter_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	var out []Source
	for rows.Next() {
		var src Source
		err := rows.Scan(
			&src.AdapterID, &src.Target, &src.Description, &src.SourceURL,
			&src.License, &src.LastCheck, &src.LastStatus, &src.LastError, &src.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		out = append(out, src)
	}
	return out, rows.Err()
}
