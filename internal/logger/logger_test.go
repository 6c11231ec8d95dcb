package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ravyz.log")

	log, err := New(true, false, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log.Debug("hidden below info")
	log.Info("screen visited")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected a single info record, got %q", data)
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("record is not json: %v", err)
	}
	if record["step"] != "screen visited" || record["level"] != "info" || record["logger"] != "ravyz" {
		t.Fatalf("unexpected record %v", record)
	}
}
