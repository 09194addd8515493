// file: internal/ingest/import.go
// version: 1.1.0
// guid: 17488b03-dd6d-400e-be09-00911643d9c6

package ingest

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	ulid "github.com/oklog/ulid/v2"
	"github.com/schollz/progressbar/v3"
	"gopkg.in/yaml.v3"

	"github.com/practiceops/practice-directory/internal/database"
	"github.com/practiceops/practice-directory/internal/models"
)

// Settings keys written after a successful import run.
const (
	SettingLastImportBatch = "last_import_batch"
	SettingLastImportCount = "last_import_count"
	SettingLastImportAt    = "last_import_at"
)

// Result summarizes one import run.
type Result struct {
	BatchID  string `json:"batch_id"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// Options controls an import run.
type Options struct {
	// ShowProgress renders a progress bar, for interactive CLI runs.
	ShowProgress bool
	// Replace drops the existing directory before importing.
	Replace bool
}

// ImportFile loads a registry extract into the store, upserting by ODS code.
// The format is chosen by file extension: .csv (header row required),
// .json (array of records), or .yaml/.yml. Rows without an ODS code or name
// are skipped, not fatal.
func ImportFile(ctx context.Context, store database.Store, path string, opts Options) (*Result, error) {
	records, err := readExtract(path)
	if err != nil {
		return nil, err
	}

	if opts.Replace {
		if err := store.Reset(); err != nil {
			return nil, fmt.Errorf("failed to reset store: %w", err)
		}
	}

	var bar *progressbar.ProgressBar
	if opts.ShowProgress {
		bar = progressbar.Default(int64(len(records)))
	}

	result := &Result{BatchID: ulid.Make().String()}
	for i := range records {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if bar != nil {
			bar.Add(1)
		}

		rec := &records[i]
		rec.ODSCode = strings.TrimSpace(rec.ODSCode)
		rec.Name = strings.TrimSpace(rec.Name)
		if rec.ODSCode == "" || rec.Name == "" {
			result.Skipped++
			continue
		}
		if err := store.UpsertPractice(rec); err != nil {
			return nil, fmt.Errorf("failed to import practice %s: %w", rec.ODSCode, err)
		}
		result.Imported++
	}

	if err := recordRun(store, result); err != nil {
		return nil, err
	}
	return result, nil
}

func recordRun(store database.Store, result *Result) error {
	if err := store.SetSetting(SettingLastImportBatch, result.BatchID); err != nil {
		return err
	}
	if err := store.SetSetting(SettingLastImportCount, fmt.Sprintf("%d", result.Imported)); err != nil {
		return err
	}
	return store.SetSetting(SettingLastImportAt, time.Now().UTC().Format(time.RFC3339))
}

func readExtract(path string) ([]models.PracticeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open extract: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(f)
	case ".json":
		return readJSON(f)
	case ".yaml", ".yml":
		return readYAML(f)
	default:
		return nil, fmt.Errorf("unsupported extract format: %s (supported: csv, json, yaml)", filepath.Ext(path))
	}
}

func readJSON(r io.Reader) ([]models.PracticeRecord, error) {
	var records []models.PracticeRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode JSON extract: %w", err)
	}
	return records, nil
}

// yamlRecord mirrors PracticeRecord for YAML seed files, which don't carry
// raw payloads.
type yamlRecord struct {
	ODSCode      string  `yaml:"ods_code"`
	Name         string  `yaml:"name"`
	Postcode     *string `yaml:"postcode"`
	City         *string `yaml:"city"`
	AddressLine1 *string `yaml:"address_line1"`
	AddressLine2 *string `yaml:"address_line2"`
	Phone        *string `yaml:"phone"`
	Status       *string `yaml:"status"`
	PrimaryRole  *string `yaml:"primary_role"`
	LastUpdated  *string `yaml:"last_updated"`
}

func readYAML(r io.Reader) ([]models.PracticeRecord, error) {
	var raw []yamlRecord
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode YAML extract: %w", err)
	}
	records := make([]models.PracticeRecord, 0, len(raw))
	for _, y := range raw {
		records = append(records, models.PracticeRecord{
			ODSCode:      y.ODSCode,
			Name:         y.Name,
			Postcode:     y.Postcode,
			City:         y.City,
			AddressLine1: y.AddressLine1,
			AddressLine2: y.AddressLine2,
			Phone:        y.Phone,
			Status:       y.Status,
			PrimaryRole:  y.PrimaryRole,
			LastUpdated:  y.LastUpdated,
		})
	}
	return records, nil
}

func readCSV(r io.Reader) ([]models.PracticeRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["ods_code"]; !ok {
		return nil, fmt.Errorf("CSV extract is missing the ods_code column")
	}

	field := func(row []string, name string) *string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return nil
		}
		value := strings.TrimSpace(row[idx])
		if value == "" {
			return nil
		}
		return &value
	}

	var records []models.PracticeRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		var rec models.PracticeRecord
		if v := field(row, "ods_code"); v != nil {
			rec.ODSCode = *v
		}
		if v := field(row, "name"); v != nil {
			rec.Name = *v
		}
		rec.Postcode = field(row, "postcode")
		rec.City = field(row, "city")
		rec.AddressLine1 = field(row, "address_line1")
		rec.AddressLine2 = field(row, "address_line2")
		rec.Phone = field(row, "phone")
		rec.Status = field(row, "status")
		rec.PrimaryRole = field(row, "primary_role")
		rec.LastUpdated = field(row, "last_updated")
		records = append(records, rec)
	}
	return records, nil
}
