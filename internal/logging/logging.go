// Package logging writes the error log and, when enabled, a JSON trace of nav
// and router events to one shared file.
package logging

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "gooeynav.log"

// Entry is one trace line. Seq orders entries written within a process even
// when their timestamps collide, which happens at frame rate.
type Entry struct {
	Time    time.Time   `json:"time"`
	Seq     uint64      `json:"seq"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

type sink struct {
	mu      sync.Mutex
	path    string
	tracing bool
	seq     uint64
}

var shared = &sink{path: defaultLogFile}

// append opens the log for one write. The file is reopened every time so an
// external rotation or removal never strands the writer.
func (s *sink) append(write func(f *os.File) error) {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	defer f.Close()
	if err := write(f); err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
	}
}

// Error writes err to the log file. Nil errors are ignored.
func Error(err error) {
	if err == nil {
		return
	}
	shared.mu.Lock()
	defer shared.mu.Unlock()
	shared.append(func(f *os.File) error {
		log.New(f, "", log.LstdFlags).Println(err)
		return nil
	})
}

// Errorf formats and logs an error.
func Errorf(format string, args ...interface{}) {
	Error(fmt.Errorf(format, args...))
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	shared.mu.Lock()
	shared.tracing = enabled
	shared.mu.Unlock()
}

// TraceEnabled reports whether trace entries are being written.
func TraceEnabled() bool {
	shared.mu.Lock()
	defer shared.mu.Unlock()
	return shared.tracing
}

// Trace appends a JSON entry when tracing is enabled.
func Trace(event string, payload interface{}) {
	shared.mu.Lock()
	defer shared.mu.Unlock()
	if !shared.tracing {
		return
	}
	shared.seq++
	entry := Entry{
		Time:    time.Now().UTC(),
		Seq:     shared.seq,
		Event:   event,
		Payload: payload,
	}
	shared.append(func(f *os.File) error {
		return json.NewEncoder(f).Encode(entry)
	})
}

// Configure sets the log destination. An empty path restores the default;
// missing directories are created.
func Configure(path string) {
	path = strings.TrimSpace(path)
	shared.mu.Lock()
	defer shared.mu.Unlock()
	shared.seq = 0
	if path == "" {
		shared.path = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		shared.path = defaultLogFile
		return
	}
	shared.path = path
}

// Path returns the current log destination.
func Path() string {
	shared.mu.Lock()
	defer shared.mu.Unlock()
	return shared.path
}
