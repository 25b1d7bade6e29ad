package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func useTempLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "trace.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
	})
	return path
}

func TestTraceWritesJSONWhenEnabled(t *testing.T) {
	path := useTempLog(t)
	SetTraceEnabled(true)
	Trace("nav.select", map[string]interface{}{"index": 2})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var entry struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("trace entry is not JSON: %v\n%s", err, data)
	}
	if entry.Event != "nav.select" {
		t.Fatalf("event = %q, want nav.select", entry.Event)
	}
	if entry.Payload["index"] != float64(2) {
		t.Fatalf("payload index = %v, want 2", entry.Payload["index"])
	}
}

func TestTraceSilentWhenDisabled(t *testing.T) {
	path := useTempLog(t)
	SetTraceEnabled(false)
	Trace("nav.select", nil)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file when tracing is disabled, stat err = %v", err)
	}
}

func TestErrorAppendsLine(t *testing.T) {
	path := useTempLog(t)
	Error(errors.New("first"))
	Error(nil)
	Error(errors.New("second"))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "first") || !strings.Contains(text, "second") {
		t.Fatalf("expected both errors in log, got %q", text)
	}
	if got := strings.Count(strings.TrimSpace(text), "\n"); got != 1 {
		t.Fatalf("expected two lines, got %d newlines", got)
	}
}

func TestTraceNumbersEntriesInOrder(t *testing.T) {
	path := useTempLog(t)
	SetTraceEnabled(true)
	Trace("nav.burst", nil)
	Trace("nav.select", nil)
	Trace("route.navigate", nil)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(lines))
	}
	for i, line := range lines {
		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("line %d is not JSON: %v", i, err)
		}
		if entry.Seq != uint64(i+1) {
			t.Fatalf("line %d seq = %d, want %d", i, entry.Seq, i+1)
		}
	}
}

func TestConfigureEmptyRestoresDefault(t *testing.T) {
	useTempLog(t)
	Configure("   ")
	if got := Path(); got != defaultLogFile {
		t.Fatalf("Path = %q, want %q", got, defaultLogFile)
	}
}
