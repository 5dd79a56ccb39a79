package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigReturnsDefaultWhenNoFileFound(t *testing.T) {
	root := t.TempDir()
	cfg, err := LoadConfig("", filepath.Join(root, "src", "index.ts"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Aliases) != 0 {
		t.Errorf("expected no aliases in default config, got %v", cfg.Aliases)
	}
	if len(cfg.Extensions) == 0 {
		t.Error("expected default extensions to be populated")
	}
}

func TestLoadConfigDiscoversUpward(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "src", "deep"), 0o755); err != nil {
		t.Fatal(err)
	}
	configYAML := `aliases:
  - prefix: "@/"
    target: "src/"
extra_source_roots:
  - vendor
`
	if err := os.WriteFile(filepath.Join(root, "sweepy.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig("", filepath.Join(root, "src", "deep", "index.ts"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Aliases) != 1 || cfg.Aliases[0].Prefix != "@/" || cfg.Aliases[0].Target != "src/" {
		t.Fatalf("unexpected aliases: %+v", cfg.Aliases)
	}
	if len(cfg.ExtraSourceRoots) != 1 || cfg.ExtraSourceRoots[0] != "vendor" {
		t.Fatalf("unexpected extra source roots: %v", cfg.ExtraSourceRoots)
	}
}

func TestLoadConfigExplicitPath(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, "custom.yaml")
	if err := os.WriteFile(configPath, []byte("extensions: ['.ts', '.vue']\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(configPath, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Extensions) != 2 || cfg.Extensions[0] != ".ts" || cfg.Extensions[1] != ".vue" {
		t.Fatalf("unexpected extensions: %v", cfg.Extensions)
	}
}

func TestLoadConfigInvalidFileErrors(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, "bad.yaml")
	if err := os.WriteFile(configPath, []byte("aliases:\n  - prefix: \"\"\n    target: \"x\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(configPath, ""); err == nil {
		t.Fatal("expected validation error for empty alias prefix")
	}
}
