package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), DefaultFileName))
}

func TestLoad_MissingFileIsEmptyLog(t *testing.T) {
	store := newTestStore(t)

	records, err := store.Load()
	if err != nil {
		t.Fatalf("Load() on missing file returned error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Load() on missing file returned %d records, expected 0", len(records))
	}
}

func TestAppend_ThenLoad(t *testing.T) {
	store := newTestStore(t)
	before := time.Now()

	record, err := store.Append("Never Gonna Give You Up", "https://youtu.be/dQw4w9WgXcQ", "mp4", "/downloads/Never Gonna Give You Up.mp4")
	if err != nil {
		t.Fatalf("Append() returned error: %v", err)
	}

	if record.Timestamp.Before(before) {
		t.Errorf("record timestamp %v is earlier than call time %v", record.Timestamp, before)
	}

	records, err := store.Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Load() returned %d records, expected 1", len(records))
	}

	got := records[0]
	if got.Title != "Never Gonna Give You Up" {
		t.Errorf("Title = %q, expected %q", got.Title, "Never Gonna Give You Up")
	}
	if got.URL != "https://youtu.be/dQw4w9WgXcQ" {
		t.Errorf("URL = %q, expected %q", got.URL, "https://youtu.be/dQw4w9WgXcQ")
	}
	if got.FileType != "mp4" {
		t.Errorf("FileType = %q, expected %q", got.FileType, "mp4")
	}
	if got.DownloadPath != "/downloads/Never Gonna Give You Up.mp4" {
		t.Errorf("DownloadPath = %q, expected %q", got.DownloadPath, "/downloads/Never Gonna Give You Up.mp4")
	}
}

func TestAppend_GrowsByOne(t *testing.T) {
	store := newTestStore(t)

	for i := 1; i <= 3; i++ {
		if _, err := store.Append("title", "url", "mp3", "path"); err != nil {
			t.Fatalf("Append() #%d returned error: %v", i, err)
		}
		records, err := store.Load()
		if err != nil {
			t.Fatalf("Load() returned error: %v", err)
		}
		if len(records) != i {
			t.Errorf("after %d appends Load() returned %d records", i, len(records))
		}
	}
}

func TestSaveLoad_Fixpoint(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Append("a", "url-a", "mp4", "/a.mp4"); err != nil {
		t.Fatalf("Append() returned error: %v", err)
	}
	if _, err := store.Append("b", "url-b", "mp3", "/b.mp3"); err != nil {
		t.Fatalf("Append() returned error: %v", err)
	}

	first, err := store.Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if err := store.Save(first); err != nil {
		t.Fatalf("Save(Load()) returned error: %v", err)
	}
	second, err := store.Load()
	if err != nil {
		t.Fatalf("Load() after round-trip returned error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Save(Load()) is not a fixpoint:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestSave_FileStaysParseableAndIndented(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Append("title", "url", "mp4", "path"); err != nil {
		t.Fatalf("Append() returned error: %v", err)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("reading backing file: %v", err)
	}

	var parsed []Record
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("backing file is not valid JSON: %v", err)
	}
	if !strings.Contains(string(data), "\n    ") {
		t.Errorf("backing file is not indented:\n%s", data)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	store := newTestStore(t)
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0644); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}

	if _, err := store.Load(); err == nil {
		t.Error("Load() on corrupt file returned nil error")
	}
}

func TestAppend_ConcurrentAppendsDoNotLoseRecords(t *testing.T) {
	store := newTestStore(t)

	const writers = 8
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			if _, err := store.Append("title", "url", "mp4", "path"); err != nil {
				t.Errorf("concurrent Append() returned error: %v", err)
			}
		}()
	}
	wg.Wait()

	records, err := store.Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if len(records) != writers {
		t.Errorf("lost updates: %d records after %d concurrent appends", len(records), writers)
	}
}

func TestAppend_InsertionOrderPreserved(t *testing.T) {
	store := newTestStore(t)
	titles := []string{"first", "second", "third"}

	for _, title := range titles {
		if _, err := store.Append(title, "url", "mp4", "path"); err != nil {
			t.Fatalf("Append(%q) returned error: %v", title, err)
		}
	}

	records, err := store.Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	for i, title := range titles {
		if records[i].Title != title {
			t.Errorf("records[%d].Title = %q, expected %q", i, records[i].Title, title)
		}
	}
}
