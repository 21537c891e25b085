package port

import (
	"errors"
	"testing"
)

func TestParseRange_Valid(t *testing.T) {
	cases := map[string]Range{
		"22":          {22, 22},
		"20-25":       {20, 25},
		" 1 - 1024 ":  {1, 1024},
		"65535":       {65535, 65535},
		"1-65535":     {1, 65535},
		"9000 - 9005": {9000, 9005},
	}
	for spec, want := range cases {
		t.Run(spec, func(t *testing.T) {
			got, err := ParseRange(spec)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != want {
				t.Fatalf("got %v want %v", got, want)
			}
		})
	}
}

func TestParseRange_Invalid(t *testing.T) {
	cases := []string{
		"",        // empty
		"0",       // invalid port
		"65536",   // invalid port
		"10-1",    // reversed range
		"abc",     // bad token
		"22-",     // missing end
		"1-70000", // out of range in range
	}
	for _, spec := range cases {
		t.Run(spec, func(t *testing.T) {
			if _, err := ParseRange(spec); err == nil {
				t.Fatalf("expected error for spec %q", spec)
			}
		})
	}
}

func TestParsePort_OutOfRange(t *testing.T) {
	_, err := ParsePort("70000")
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestRange_LenAndValidate(t *testing.T) {
	if n := (Range{20, 25}).Len(); n != 6 {
		t.Fatalf("len 20-25: got %d want 6", n)
	}
	if n := (Range{1, 65535}).Len(); n != 65535 {
		t.Fatalf("len full range: got %d", n)
	}
	if n := (Range{5, 1}).Len(); n != 0 {
		t.Fatalf("inverted range len: got %d want 0", n)
	}
	if err := (Range{0, 10}).Validate(); err == nil {
		t.Fatal("expected error for port 0")
	}
	if err := (Range{10, 9}).Validate(); err == nil {
		t.Fatal("expected error for reversed range")
	}
}

func TestState_String(t *testing.T) {
	cases := map[State]string{
		StateOpen:     "open",
		StateClosed:   "closed",
		StateFiltered: "filtered",
		StateError:    "error",
		State(42):     "state(42)",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Fatalf("State(%d).String() = %q want %q", int(s), got, want)
		}
	}
}
