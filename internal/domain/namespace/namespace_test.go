package namespace

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"", Isolated},
		{"single", Isolated},
		{"isolated", Isolated},
		{"multiple", Shareable},
		{"shareable", Shareable},
		{"agnostic", Global},
		{"global", Global},
	}
	for _, tt := range tests {
		t.Run("in="+tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseMode_Invalid(t *testing.T) {
	if _, err := ParseMode("sometimes"); err == nil {
		t.Fatal("expected error for unknown namespace type")
	}
}

func TestMode_StringRoundTrip(t *testing.T) {
	for _, m := range []Mode{Isolated, Shareable, Global} {
		got, err := ParseMode(m.String())
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", m.String(), err)
		}
		if got != m {
			t.Errorf("round trip of %v = %v", m, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil stays nil", nil, nil},
		{"empty stays empty", []string{}, []string{}},
		{"dedup and wildcard", []string{"foo", "*", "foo", "bar", "default"}, []string{"foo", "default", "bar"}},
		{"wildcard only", []string{"*"}, []string{"default"}},
		{"already normal", []string{"a", "b"}, []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("Normalize(%v) = %#v, want %#v", tt.in, got, tt.want)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOrDefault(t *testing.T) {
	if diff := cmp.Diff([]string{Default}, OrDefault(nil)); diff != "" {
		t.Errorf("OrDefault(nil) mismatch (-want +got):\n%s", diff)
	}
	empty := OrDefault([]string{})
	if empty == nil || len(empty) != 0 {
		t.Errorf("OrDefault([]) = %#v, want empty non-nil", empty)
	}
}
