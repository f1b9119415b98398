package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want hclog.Level
	}{
		{"default", Options{}, hclog.Info},
		{"verbose", Options{Verbose: true}, hclog.Debug},
		{"quiet", Options{Quiet: true}, hclog.Error},
		{"quiet wins", Options{Quiet: true, Verbose: true}, hclog.Error},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.Level(); got != tt.want {
				t.Errorf("Level() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{JSON: true, Output: &buf})
	logger.Info("classified", "colours", 8)
	logger.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line at info level, got %d:\n%s", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("invalid JSON log line: %v", err)
	}
	if entry["@message"] != "classified" || entry["@module"] != "nearestcolour" {
		t.Errorf("unexpected entry %v", entry)
	}
	id, _ := entry["run_id"].(string)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("run_id %q is not a UUID: %v", id, err)
	}
}

func TestNewVerbose(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Verbose: true, Output: &buf})
	logger.Debug("plan", "chunks", 4)
	if !strings.Contains(buf.String(), "plan") || !strings.Contains(buf.String(), "run_id=") {
		t.Errorf("expected debug line with run_id, got %q", buf.String())
	}
}

func TestRunIDsDiffer(t *testing.T) {
	var a, b bytes.Buffer
	New(Options{JSON: true, Output: &a}).Info("x")
	New(Options{JSON: true, Output: &b}).Info("x")

	var ea, eb map[string]any
	_ = json.Unmarshal(a.Bytes(), &ea)
	_ = json.Unmarshal(b.Bytes(), &eb)
	if ea["run_id"] == eb["run_id"] {
		t.Errorf("expected distinct run ids, both %v", ea["run_id"])
	}
}
