package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProjectConfigMissingReturnsNil(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadProjectConfig(dir, "")
	if err != nil {
		t.Fatalf("LoadProjectConfig() error: %v", err)
	}
	if cfg != nil {
		t.Fatalf("LoadProjectConfig() = %+v, want nil", cfg)
	}
}

func TestLoadProjectConfigParsesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".depvizrc.yaml")
	content := `
version: 1
exclude:
  - vendor
  - build
oversized_lines: 400
max_depth: 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadProjectConfig(dir, "")
	if err != nil {
		t.Fatalf("LoadProjectConfig() error: %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadProjectConfig() = nil, want config")
	}
	if cfg.OversizedLines != 400 || cfg.MaxDepth != 5 {
		t.Fatalf("LoadProjectConfig() = %+v", cfg)
	}
	if len(cfg.Exclude) != 2 || cfg.Exclude[0] != "vendor" {
		t.Fatalf("LoadProjectConfig() Exclude = %v", cfg.Exclude)
	}
}

func TestLoadProjectConfigRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".depvizrc.yaml")
	if err := os.WriteFile(path, []byte("bogus_field: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadProjectConfig(dir, ""); err == nil {
		t.Fatal("LoadProjectConfig() with unknown field, want error")
	}
}

func TestLoadProjectConfigRejectsBadVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".depvizrc.yaml")
	if err := os.WriteFile(path, []byte("version: 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadProjectConfig(dir, ""); err == nil {
		t.Fatal("LoadProjectConfig() with bad version, want error")
	}
}

func TestLoadProjectConfigExplicitPath(t *testing.T) {
	dir := t.TempDir()
	customPath := filepath.Join(dir, "custom-config.yaml")
	if err := os.WriteFile(customPath, []byte("version: 1\nmax_depth: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadProjectConfig(dir, customPath)
	if err != nil {
		t.Fatalf("LoadProjectConfig() error: %v", err)
	}
	if cfg.MaxDepth != 2 {
		t.Fatalf("LoadProjectConfig() MaxDepth = %d, want 2", cfg.MaxDepth)
	}
}
