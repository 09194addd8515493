// file: internal/database/sqlite_store.go
// version: 2.2.0
// guid: 4a099881-357a-4a7c-95f6-153755d996ed

package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/practiceops/practice-directory/internal/models"
	"github.com/practiceops/practice-directory/internal/search"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

const practiceSelectColumns = `
	ods_code, name, postcode, city, address_line1, address_line2,
	phone, status, primary_role, last_updated, raw_data
`

func scanPractice(scanner rowScanner, includeRaw bool) (*models.PracticeRecord, error) {
	var rec models.PracticeRecord
	var postcode, city, addr1, addr2, phone, status, role, updated, raw sql.NullString

	if err := scanner.Scan(
		&rec.ODSCode, &rec.Name, &postcode, &city, &addr1, &addr2,
		&phone, &status, &role, &updated, &raw,
	); err != nil {
		return nil, err
	}

	rec.Postcode = nullableString(postcode)
	rec.City = nullableString(city)
	rec.AddressLine1 = nullableString(addr1)
	rec.AddressLine2 = nullableString(addr2)
	rec.Phone = nullableString(phone)
	rec.Status = nullableString(status)
	rec.PrimaryRole = nullableString(role)
	rec.LastUpdated = nullableString(updated)
	if includeRaw && raw.Valid && raw.String != "" {
		rec.RawData = []byte(raw.String)
	}
	return &rec, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	v := s.String
	return &v
}

func stringOrNull(s *string) interface{} {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

// SQLiteStore implements the Store interface using SQLite3
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	store := &SQLiteStore{db: db}

	if err := store.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS practices (
		ods_code TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		postcode TEXT,
		city TEXT,
		address_line1 TEXT,
		address_line2 TEXT,
		phone TEXT,
		status TEXT,
		primary_role TEXT,
		last_updated TEXT,
		raw_data TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_practices_name ON practices(name);
	CREATE INDEX IF NOT EXISTS idx_practices_postcode ON practices(postcode);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Reset drops all rows. Used by tests and the import --replace mode.
func (s *SQLiteStore) Reset() error {
	_, err := s.db.Exec(`DELETE FROM practices; DELETE FROM settings;`)
	return err
}

// UpsertPractice inserts or replaces a practice record keyed by ODS code.
func (s *SQLiteStore) UpsertPractice(rec *models.PracticeRecord) error {
	if rec.ODSCode == "" {
		return fmt.Errorf("practice record requires an ods_code")
	}
	var raw interface{}
	if len(rec.RawData) > 0 {
		raw = string(rec.RawData)
	}
	_, err := s.db.Exec(`
		INSERT INTO practices (
			ods_code, name, postcode, city, address_line1, address_line2,
			phone, status, primary_role, last_updated, raw_data
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(ods_code) DO UPDATE SET
			name = excluded.name,
			postcode = excluded.postcode,
			city = excluded.city,
			address_line1 = excluded.address_line1,
			address_line2 = excluded.address_line2,
			phone = excluded.phone,
			status = excluded.status,
			primary_role = excluded.primary_role,
			last_updated = excluded.last_updated,
			raw_data = excluded.raw_data`,
		rec.ODSCode, rec.Name, stringOrNull(rec.Postcode), stringOrNull(rec.City),
		stringOrNull(rec.AddressLine1), stringOrNull(rec.AddressLine2),
		stringOrNull(rec.Phone), stringOrNull(rec.Status),
		stringOrNull(rec.PrimaryRole), stringOrNull(rec.LastUpdated), raw,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert practice %s: %w", rec.ODSCode, err)
	}
	return nil
}

// GetPracticeByCode fetches one record by its ODS code.
func (s *SQLiteStore) GetPracticeByCode(code string) (*models.PracticeRecord, error) {
	row := s.db.QueryRow(
		`SELECT `+practiceSelectColumns+` FROM practices WHERE ods_code = ?`, code)
	rec, err := scanPractice(row, true)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get practice %s: %w", code, err)
	}
	return rec, nil
}

// DeletePractice removes a record by ODS code.
func (s *SQLiteStore) DeletePractice(code string) error {
	result, err := s.db.Exec(`DELETE FROM practices WHERE ods_code = ?`, code)
	if err != nil {
		return fmt.Errorf("failed to delete practice %s: %w", code, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPractices returns records in ODS-code order with limit/offset paging.
func (s *SQLiteStore) ListPractices(limit, offset int) ([]models.PracticeRecord, error) {
	rows, err := s.db.Query(
		`SELECT `+practiceSelectColumns+` FROM practices ORDER BY ods_code LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list practices: %w", err)
	}
	defer rows.Close()
	return collectPractices(rows, true)
}

// CountPractices returns the number of records in the directory.
func (s *SQLiteStore) CountPractices() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM practices`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count practices: %w", err)
	}
	return count, nil
}

// FetchCandidates runs the coarse pre-filter query for a search. Results are
// ordered by ODS code so repeated fetches over an unchanged table return the
// same list. No relevance ordering happens here.
func (s *SQLiteStore) FetchCandidates(ctx context.Context, searchType models.SearchType, query string, fetchLimit int, includeRaw bool) ([]models.PracticeRecord, error) {
	var rows *sql.Rows
	var err error

	switch searchType {
	case models.SearchTypeName:
		pattern := "%" + query + "%"
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+practiceSelectColumns+` FROM practices
			 WHERE name LIKE ? OR ods_code LIKE ? OR postcode LIKE ?
			 ORDER BY ods_code LIMIT ?`,
			pattern, pattern, pattern, fetchLimit)
	case models.SearchTypePostcode:
		// District-level prefix is the loosest granularity any radius mode
		// uses, so this fetch is a superset for exact, district, and area.
		prefix := search.NormalizePostcode(query)
		if len(prefix) > 2 {
			prefix = prefix[:2]
		}
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+practiceSelectColumns+` FROM practices
			 WHERE postcode IS NOT NULL
			   AND REPLACE(UPPER(postcode), ' ', '') LIKE ?
			 ORDER BY ods_code LIMIT ?`,
			prefix+"%", fetchLimit)
	case models.SearchTypeType:
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+practiceSelectColumns+` FROM practices ORDER BY ods_code LIMIT ?`,
			fetchLimit)
	default:
		return nil, fmt.Errorf("unsupported search type: %s", searchType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}
	defer rows.Close()
	return collectPractices(rows, includeRaw)
}

func collectPractices(rows *sql.Rows, includeRaw bool) ([]models.PracticeRecord, error) {
	records := []models.PracticeRecord{}
	for rows.Next() {
		rec, err := scanPractice(rows, includeRaw)
		if err != nil {
			return nil, fmt.Errorf("failed to scan practice: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// GetSetting reads one settings value.
func (s *SQLiteStore) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting writes one settings value.
func (s *SQLiteStore) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}
