package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadFillsDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[policy]\nprefer = \"escape\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Policy.Prefer != "escape" {
		t.Fatalf("prefer: want escape, got %q", cfg.Policy.Prefer)
	}
	// незаданные поля заполняются дефолтами
	if cfg.Output.Format != "text" || cfg.Output.MaxDiagnostics != 100 {
		t.Fatalf("defaults not applied: %+v", cfg.Output)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []string{
		"[policy]\nprefer = \"sometimes\"\n",
		"[output]\ncolor = \"maybe\"\n",
		"[output]\nformat = \"xml\"\n",
		"[output]\nmax_diagnostics = -1\n",
	}
	for i, body := range cases {
		path := writeManifest(t, t.TempDir(), body)
		if _, err := Load(path); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestDiscoverWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[policy]\nprefer = \"escape\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cfg, path, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if path == "" {
		t.Fatalf("manifest in ancestor directory not found")
	}
	if cfg.Policy.Prefer != "escape" {
		t.Fatalf("prefer: want escape, got %q", cfg.Policy.Prefer)
	}
}

func TestDiscoverDefaultsWhenMissing(t *testing.T) {
	cfg, path, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if path != "" {
		t.Fatalf("no manifest expected, got %q", path)
	}
	if cfg.Output.Color != "auto" {
		t.Fatalf("defaults: want auto color, got %q", cfg.Output.Color)
	}
}
