// file: internal/metrics/metrics_test.go
// version: 1.0.0
// guid: a5bfb6c7-c10a-43d8-903a-1a642f1e4be8

package metrics

import (
	"testing"
	"time"
)

func TestRegisterIsIdempotent(t *testing.T) {
	// MustRegister panics on duplicate registration; Register must not.
	Register()
	Register()
}

func TestHelpersDoNotPanic(t *testing.T) {
	Register()
	IncSearchStarted("name")
	IncSearchCompleted("name")
	IncSearchFailed("postcode")
	ObserveSearchDuration("type", 5*time.Millisecond)
	ObserveCandidatesScored("name", 42)
	SetPractices(100)
}
