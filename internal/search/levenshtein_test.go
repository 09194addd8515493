// file: internal/search/levenshtein_test.go
// version: 1.0.0
// guid: 0d3834af-0a58-481e-8371-bd33c7b65a8e

package search

import "testing"

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"a81001", "a81001", 0},
		{"a81001", "a81002", 1},
		{"riverside", "riversdie", 2},
	}
	for _, tt := range tests {
		got := Levenshtein(tt.a, tt.b)
		if got != tt.want {
			t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLevenshtein_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"park lane surgery", "park lane"},
		{"a81001", "b82017"},
		{"", "x"},
	}
	for _, p := range pairs {
		if Levenshtein(p[0], p[1]) != Levenshtein(p[1], p[0]) {
			t.Errorf("Levenshtein(%q, %q) not symmetric", p[0], p[1])
		}
	}
}

func TestLevenshtein_Identity(t *testing.T) {
	for _, s := range []string{"", "a", "riverside medical practice", "sw1a 1aa"} {
		if got := Levenshtein(s, s); got != 0 {
			t.Errorf("Levenshtein(%q, %q) = %d, want 0", s, s, got)
		}
	}
}
