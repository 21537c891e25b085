package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portprowler.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Workers != 100 || cfg.Timeout != time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
workers: 10
timeout: 250ms
services_file: ""
services:
  9000: internal-api
  22: secure-shell
output: scan.txt
verbose: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workers != 10 {
		t.Fatalf("workers: got %d", cfg.Workers)
	}
	if cfg.Timeout != 250*time.Millisecond {
		t.Fatalf("timeout: got %s", cfg.Timeout)
	}
	if cfg.Output != "scan.txt" || !cfg.Verbose {
		t.Fatalf("unexpected output/verbose: %+v", cfg)
	}

	tbl, err := cfg.ServiceTable()
	if err != nil {
		t.Fatalf("ServiceTable: %v", err)
	}
	if n, _ := tbl.Lookup(9000); n != "internal-api" {
		t.Fatalf("9000: got %q", n)
	}
	if n, _ := tbl.Lookup(22); n != "secure-shell" {
		t.Fatalf("22 override: got %q", n)
	}
	if n, _ := tbl.Lookup(80); n != "http" {
		t.Fatalf("80 builtin: got %q", n)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"zero workers":  "workers: 0\n",
		"neg timeout":   "timeout: -1s\n",
		"unknown field": "threads: 4\n",
		"bad yaml":      "workers: [\n",
		"port zero":     "services:\n  0: nothing\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatalf("expected error for %q", body)
			}
		})
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestServiceTable_MissingServicesFile(t *testing.T) {
	cfg := Default()
	cfg.ServicesFile = filepath.Join(t.TempDir(), "no-such-services")
	tbl, err := cfg.ServiceTable()
	if err != nil {
		t.Fatalf("missing services file must fall back to builtin: %v", err)
	}
	if n, _ := tbl.Lookup(443); n != "https" {
		t.Fatalf("443: got %q", n)
	}
}
