package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `# Network services, Internet style
tcpmux		1/tcp				# TCP port service multiplexer
ssh		22/tcp				# SSH Remote Login Protocol
http		80/tcp		www		# WorldWideWeb HTTP
www-alt		80/tcp
domain		53/udp
custom-app	9001/tcp
`

func TestParse(t *testing.T) {
	got, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := map[uint16]string{1: "tcpmux", 22: "ssh", 80: "http", 9001: "custom-app"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for p, n := range want {
		if got[p] != n {
			t.Fatalf("port %d: got %q want %q", p, got[p], n)
		}
	}
	if _, ok := got[53]; ok {
		t.Fatal("udp-only entry must be ignored")
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := []string{
		"ssh 22\n",
		"ssh 0/tcp\n",
		"ssh 70000/tcp\n",
		"ssh abc/tcp\n",
	}
	for _, in := range cases {
		if _, err := Parse(strings.NewReader(in)); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestTable_LookupAndMerge(t *testing.T) {
	tbl := Builtin()
	if n, ok := tbl.Lookup(22); !ok || n != "ssh" {
		t.Fatalf("22: got %q,%v want ssh", n, ok)
	}
	if _, ok := tbl.Lookup(9999); ok {
		t.Fatal("9999 must be absent")
	}

	tbl.Merge(map[uint16]string{9999: "custom", 22: "  ", 80: "web"})
	if n, _ := tbl.Lookup(9999); n != "custom" {
		t.Fatalf("merged 9999: got %q", n)
	}
	if n, _ := tbl.Lookup(22); n != "ssh" {
		t.Fatalf("blank override must be ignored, got %q", n)
	}
	if n, _ := tbl.Lookup(80); n != "web" {
		t.Fatalf("80 override: got %q", n)
	}

	var nilTable *Table
	if _, ok := nilTable.Lookup(22); ok {
		t.Fatal("nil table must report absence")
	}
}

func TestBuiltinIsCopied(t *testing.T) {
	a := Builtin()
	a.Merge(map[uint16]string{22: "changed"})
	if n, _ := Builtin().Lookup(22); n != "ssh" {
		t.Fatalf("builtin table mutated: %q", n)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "services")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	names, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if names[9001] != "custom-app" {
		t.Fatalf("9001: got %q", names[9001])
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
