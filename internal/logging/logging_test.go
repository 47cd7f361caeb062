package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpen_WritesWarnings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "quizbox.log")

	log, closer, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	Warnings(log, "quizPath.txt", []error{errors.New("line 3 skipped")})
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	for _, want := range []string{"level=WARN", "source=quizPath.txt", "line 3 skipped"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestOpen_EmptyPathDiscards(t *testing.T) {
	log, closer, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	log.Warn("dropped")
	if err := closer.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
