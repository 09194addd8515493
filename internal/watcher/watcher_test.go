// file: internal/watcher/watcher_test.go
// version: 1.1.0
// guid: d04eb1bd-d8cd-4b58-958f-f9915b3baf12

package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_TriggersOnExtractWrite(t *testing.T) {
	dir := t.TempDir()
	extract := filepath.Join(dir, "extract.csv")
	if err := os.WriteFile(extract, []byte("ods_code,name\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	triggered := make(chan string, 1)
	w := New(func(path string) {
		select {
		case triggered <- path:
		default:
		}
	}, 50*time.Millisecond)

	if err := w.Start(extract); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(extract, []byte("ods_code,name\nA81001,Riverside\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-triggered:
		if path != extract {
			t.Errorf("callback path = %s, want %s", path, extract)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not fire after extract write")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	extract := filepath.Join(dir, "extract.csv")
	if err := os.WriteFile(extract, []byte("ods_code,name\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	triggered := make(chan string, 1)
	w := New(func(path string) { triggered <- path }, 50*time.Millisecond)
	if err := w.Start(extract); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-triggered:
		t.Fatal("watcher fired for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	extract := filepath.Join(dir, "extract.csv")
	if err := os.WriteFile(extract, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := New(func(string) {}, 50*time.Millisecond)
	if err := w.Start(extract); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()
}
