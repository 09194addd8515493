// file: internal/database/memory_store.go
// version: 1.0.0
// guid: c62c7ae7-9e9b-48cb-82e4-8e5b06eee6ad

package database

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/practiceops/practice-directory/internal/models"
)

// MemoryStore is a slice-backed Store for tests and dev mode. Its coarse
// name match is deliberately looser than the disk backends (fuzzy
// subsequence instead of plain substring), which keeps it a valid superset
// for the engine while making typo-ridden local experiments pleasant.
type MemoryStore struct {
	mu        sync.RWMutex
	practices map[string]models.PracticeRecord
	settings  map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		practices: make(map[string]models.PracticeRecord),
		settings:  make(map[string]string),
	}
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error { return nil }

// Reset drops all records and settings.
func (m *MemoryStore) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.practices = make(map[string]models.PracticeRecord)
	m.settings = make(map[string]string)
	return nil
}

// UpsertPractice stores a practice record keyed by ODS code.
func (m *MemoryStore) UpsertPractice(rec *models.PracticeRecord) error {
	if rec.ODSCode == "" {
		return fmt.Errorf("practice record requires an ods_code")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.practices[rec.ODSCode] = *rec
	return nil
}

// GetPracticeByCode fetches one record by its ODS code.
func (m *MemoryStore) GetPracticeByCode(code string) (*models.PracticeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.practices[code]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

// DeletePractice removes a record by ODS code.
func (m *MemoryStore) DeletePractice(code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.practices[code]; !ok {
		return ErrNotFound
	}
	delete(m.practices, code)
	return nil
}

// sortedRecords returns every record in ODS-code order.
func (m *MemoryStore) sortedRecords() []models.PracticeRecord {
	records := make([]models.PracticeRecord, 0, len(m.practices))
	for _, rec := range m.practices {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ODSCode < records[j].ODSCode
	})
	return records
}

// ListPractices returns records in ODS-code order with limit/offset paging.
func (m *MemoryStore) ListPractices(limit, offset int) ([]models.PracticeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	records := m.sortedRecords()
	if offset >= len(records) {
		return []models.PracticeRecord{}, nil
	}
	records = records[offset:]
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// CountPractices returns the number of records in the directory.
func (m *MemoryStore) CountPractices() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.practices), nil
}

// FetchCandidates performs the coarse pre-filter over the in-memory set.
func (m *MemoryStore) FetchCandidates(ctx context.Context, searchType models.SearchType, query string, fetchLimit int, includeRaw bool) ([]models.PracticeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	match, err := coarseMatcher(searchType, query)
	if err != nil {
		return nil, err
	}
	fuzzyName := searchType == models.SearchTypeName
	q := strings.ToLower(query)

	m.mu.RLock()
	defer m.mu.RUnlock()

	records := []models.PracticeRecord{}
	for _, rec := range m.sortedRecords() {
		if len(records) >= fetchLimit {
			break
		}
		rec := rec
		if match(&rec) || (fuzzyName && fuzzy.Match(q, strings.ToLower(rec.Name))) {
			if !includeRaw {
				rec.RawData = nil
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

// GetSetting reads one settings value.
func (m *MemoryStore) GetSetting(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.settings[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// SetSetting writes one settings value.
func (m *MemoryStore) SetSetting(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
	return nil
}
