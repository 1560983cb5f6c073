package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTraceRespectsToggle(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(nil)
		SetTraceEnabled(false)
	})

	SetTraceEnabled(false)
	Trace("quiet", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output while tracing disabled, got %q", buf.String())
	}

	SetTraceEnabled(true)
	Trace("pane.split", map[string]interface{}{"pane": "%1"})
	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("expected JSON entry, got %q: %v", buf.String(), err)
	}
	if decoded["event"] != "pane.split" {
		t.Fatalf("expected event pane.split, got %v", decoded["event"])
	}
}

func TestErrorAndWarnAlwaysWritten(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })
	SetTraceEnabled(false)

	Error(nil)
	if buf.Len() != 0 {
		t.Fatalf("expected nil error to be ignored")
	}
	Error(errors.New("boom"))
	Warn("catalog fallback", map[string]interface{}{"level": 3})
	out := buf.String()
	if !strings.Contains(out, "boom") || !strings.Contains(out, "catalog fallback") {
		t.Fatalf("expected both entries, got %q", out)
	}
}

func TestConfigureCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dojo.log")
	Configure(path)
	t.Cleanup(func() { Configure("") })

	Error(errors.New("written to file"))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file, got %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Fatalf("expected entry in file, got %q", data)
	}
}
