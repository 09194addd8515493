// file: internal/server/response_types.go
// version: 1.1.0
// guid: b6d1c2a7-9e30-4f68-8f5d-0c4a2e91d773

package server

// HealthResponse reports service liveness and basic directory stats.
type HealthResponse struct {
	Status    string `json:"status"`
	Practices int    `json:"practices"`
	Database  string `json:"database"`
	Uptime    string `json:"uptime"`
	Version   string `json:"version"`
}

// PracticeTypeCount pairs a practice-type keyword with how many records
// currently match it.
type PracticeTypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// PracticeTypesResponse lists the configured type keywords with counts.
type PracticeTypesResponse struct {
	Types  []PracticeTypeCount `json:"types"`
	Cached bool                `json:"cached"`
}

// ImportRequest asks the server to ingest a registry extract from disk.
type ImportRequest struct {
	Path    string `json:"path" binding:"required"`
	Replace bool   `json:"replace"`
}

// ImportResponse summarizes one completed extract import.
type ImportResponse struct {
	BatchID  string `json:"batch_id"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}
