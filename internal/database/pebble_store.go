// file: internal/database/pebble_store.go
// version: 2.0.1
// guid: 22f36fcb-b7d8-46a0-a1a6-ddbf7fb8461a

package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/pebble/v2"

	"github.com/practiceops/practice-directory/internal/models"
	"github.com/practiceops/practice-directory/internal/search"
)

// PebbleStore implements the Store interface using PebbleDB (LSM key-value store)
//
// Key Schema:
// - practice:<ods_code> -> PracticeRecord JSON
// - setting:<key>       -> raw value
//
// Iteration over the practice: prefix is ODS-code ordered, which gives the
// order-stable candidate lists the search engine relies on. The directory is
// small (tens of thousands of records at most), so coarse candidate fetches
// are bounded linear scans.
type PebbleStore struct {
	db *pebble.DB
}

const (
	practiceKeyPrefix = "practice:"
	settingKeyPrefix  = "setting:"
)

// NewPebbleStore creates a new PebbleDB store
func NewPebbleStore(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open PebbleDB: %w", err)
	}
	return &PebbleStore{db: db}, nil
}

// Close closes the database
func (p *PebbleStore) Close() error {
	return p.db.Close()
}

// Reset deletes every practice record and setting.
func (p *PebbleStore) Reset() error {
	for _, prefix := range []string{practiceKeyPrefix, settingKeyPrefix} {
		if err := p.db.DeleteRange([]byte(prefix), []byte(prefix+"\xff"), pebble.Sync); err != nil {
			return fmt.Errorf("failed to reset %s keyspace: %w", prefix, err)
		}
	}
	return nil
}

func practiceKey(code string) []byte {
	return []byte(practiceKeyPrefix + code)
}

// UpsertPractice stores a practice record keyed by ODS code.
func (p *PebbleStore) UpsertPractice(rec *models.PracticeRecord) error {
	if rec.ODSCode == "" {
		return fmt.Errorf("practice record requires an ods_code")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal practice %s: %w", rec.ODSCode, err)
	}
	if err := p.db.Set(practiceKey(rec.ODSCode), data, pebble.Sync); err != nil {
		return fmt.Errorf("failed to upsert practice %s: %w", rec.ODSCode, err)
	}
	return nil
}

// GetPracticeByCode fetches one record by its ODS code.
func (p *PebbleStore) GetPracticeByCode(code string) (*models.PracticeRecord, error) {
	value, closer, err := p.db.Get(practiceKey(code))
	if err == pebble.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get practice %s: %w", code, err)
	}
	defer closer.Close()

	var rec models.PracticeRecord
	if err := json.Unmarshal(value, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal practice %s: %w", code, err)
	}
	return &rec, nil
}

// DeletePractice removes a record by ODS code.
func (p *PebbleStore) DeletePractice(code string) error {
	if _, err := p.GetPracticeByCode(code); err != nil {
		return err
	}
	if err := p.db.Delete(practiceKey(code), pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete practice %s: %w", code, err)
	}
	return nil
}

// ListPractices returns records in ODS-code order with limit/offset paging.
func (p *PebbleStore) ListPractices(limit, offset int) ([]models.PracticeRecord, error) {
	records := []models.PracticeRecord{}
	skipped := 0
	err := p.scanPractices(func(rec *models.PracticeRecord) bool {
		if skipped < offset {
			skipped++
			return true
		}
		if len(records) >= limit {
			return false
		}
		records = append(records, *rec)
		return true
	})
	return records, err
}

// CountPractices returns the number of records in the directory.
func (p *PebbleStore) CountPractices() (int, error) {
	count := 0
	err := p.scanPractices(func(*models.PracticeRecord) bool {
		count++
		return true
	})
	return count, err
}

// scanPractices iterates the practice keyspace in key order, invoking fn for
// each record until fn returns false or the keyspace is exhausted.
func (p *PebbleStore) scanPractices(fn func(*models.PracticeRecord) bool) error {
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(practiceKeyPrefix),
		UpperBound: []byte(practiceKeyPrefix + "\xff"),
	})
	if err != nil {
		return fmt.Errorf("failed to create iterator: %w", err)
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		var rec models.PracticeRecord
		if err := json.Unmarshal(iter.Value(), &rec); err != nil {
			return fmt.Errorf("failed to unmarshal practice at %s: %w", iter.Key(), err)
		}
		if !fn(&rec) {
			break
		}
	}
	return iter.Error()
}

// FetchCandidates performs the coarse pre-filter scan for a search. Matching
// is cheap substring/prefix work; no relevance ordering happens here.
func (p *PebbleStore) FetchCandidates(ctx context.Context, searchType models.SearchType, query string, fetchLimit int, includeRaw bool) ([]models.PracticeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	match, err := coarseMatcher(searchType, query)
	if err != nil {
		return nil, err
	}

	records := []models.PracticeRecord{}
	scanErr := p.scanPractices(func(rec *models.PracticeRecord) bool {
		if len(records) >= fetchLimit {
			return false
		}
		if match(rec) {
			r := *rec
			if !includeRaw {
				r.RawData = nil
			}
			records = append(records, r)
		}
		return true
	})
	if scanErr != nil {
		return nil, scanErr
	}
	return records, nil
}

// coarseMatcher builds the cheap per-record predicate for a search type.
// Shared by the Pebble and in-memory backends.
func coarseMatcher(searchType models.SearchType, query string) (func(*models.PracticeRecord) bool, error) {
	switch searchType {
	case models.SearchTypeName:
		q := strings.ToLower(query)
		return func(rec *models.PracticeRecord) bool {
			if strings.Contains(strings.ToLower(rec.Name), q) {
				return true
			}
			if strings.Contains(strings.ToLower(rec.ODSCode), q) {
				return true
			}
			if rec.Postcode != nil && strings.Contains(strings.ToLower(*rec.Postcode), q) {
				return true
			}
			return false
		}, nil
	case models.SearchTypePostcode:
		// District-level prefix is the loosest granularity any radius mode
		// uses, so the scan yields a superset for exact, district, and area.
		prefix := search.NormalizePostcode(query)
		if len(prefix) > 2 {
			prefix = prefix[:2]
		}
		return func(rec *models.PracticeRecord) bool {
			pc := search.NormalizePostcodeField(rec.Postcode)
			return pc != "" && strings.HasPrefix(pc, prefix)
		}, nil
	case models.SearchTypeType:
		return func(*models.PracticeRecord) bool { return true }, nil
	default:
		return nil, fmt.Errorf("unsupported search type: %s", searchType)
	}
}

// GetSetting reads one settings value.
func (p *PebbleStore) GetSetting(key string) (string, error) {
	value, closer, err := p.db.Get([]byte(settingKeyPrefix + key))
	if err == pebble.ErrNotFound {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	defer closer.Close()
	return string(value), nil
}

// SetSetting writes one settings value.
func (p *PebbleStore) SetSetting(key, value string) error {
	if err := p.db.Set([]byte(settingKeyPrefix+key), []byte(value), pebble.Sync); err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}
