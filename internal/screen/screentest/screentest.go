// Package screentest builds screen environments backed by temp dirs.
package screentest

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/abhisek/quizbox/internal/config"
	"github.com/abhisek/quizbox/internal/errorbank"
	"github.com/abhisek/quizbox/internal/logging"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/themes"
)

// Env returns an Env rooted in a fresh temp dir with an empty registry,
// an empty error bank, no history, and a fixed random seed.
func Env(t *testing.T) *screen.Env {
	t.Helper()
	cfg := config.Default(t.TempDir())
	config.Normalize(&cfg)

	st, _, err := themes.Open(cfg.RegistryFile)
	if err != nil {
		t.Fatalf("open registry: %v", err)
	}
	return &screen.Env{
		Config: cfg,
		Themes: st,
		Bank:   errorbank.New(cfg.ErrorsDir, errorbank.WithCapacity(cfg.ErrorBankCapacity)),
		Log:    logging.Discard(),
		Rand:   rand.New(rand.NewPCG(1, 2)),
	}
}

// Theme creates a folder named name under the data dir, writes files
// into it, and registers it.
func Theme(t *testing.T, env *screen.Env, name string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(env.Config.DataDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for fname, content := range files {
		if err := os.WriteFile(filepath.Join(dir, fname), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", fname, err)
		}
	}
	if err := env.Themes.Add(name, dir); err != nil {
		t.Fatalf("add theme: %v", err)
	}
	return dir
}
