package find

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTypeNamespaces_Order(t *testing.T) {
	m := NewTypeNamespaces().
		Set("pending", []string{"foo"}).
		Set("shared", []string{"bar", "default"}).
		Set("global", nil)

	if diff := cmp.Diff([]string{"pending", "shared", "global"}, m.Types()); diff != "" {
		t.Errorf("Types mismatch (-want +got):\n%s", diff)
	}
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
}

func TestTypeNamespaces_ResetKeepsPosition(t *testing.T) {
	m := NewTypeNamespaces().Set("a", nil).Set("b", nil).Set("a", []string{"x"})

	if diff := cmp.Diff([]string{"a", "b"}, m.Types()); diff != "" {
		t.Errorf("Types mismatch (-want +got):\n%s", diff)
	}
	ns, ok := m.Get("a")
	if !ok {
		t.Fatal("Get(a) not found")
	}
	if diff := cmp.Diff([]string{"x"}, ns); diff != "" {
		t.Errorf("Get(a) mismatch (-want +got):\n%s", diff)
	}
}

func TestTypeNamespaces_NilValueIsPresent(t *testing.T) {
	m := NewTypeNamespaces().Set("global", nil)
	ns, ok := m.Get("global")
	if !ok {
		t.Fatal("Get(global) should report presence")
	}
	if ns != nil {
		t.Errorf("Get(global) = %v, want nil", ns)
	}
	if _, ok := m.Get("saved"); ok {
		t.Error("Get(saved) should report absence")
	}
}

func TestTypeNamespaces_ZeroValue(t *testing.T) {
	var m TypeNamespaces
	if _, ok := m.Get("saved"); ok {
		t.Error("Get on zero value should report absence")
	}
	m.Set("saved", nil).Set("shared", []string{"foo"})

	if diff := cmp.Diff([]string{"saved", "shared"}, m.Types()); diff != "" {
		t.Errorf("Types mismatch (-want +got):\n%s", diff)
	}
	if _, ok := m.Get("saved"); !ok {
		t.Error("Get(saved) should report presence")
	}
}

func TestParseOperator(t *testing.T) {
	for _, in := range []string{"", "AND", "OR"} {
		got, err := ParseOperator(in)
		if err != nil {
			t.Fatalf("ParseOperator(%q): %v", in, err)
		}
		if string(got) != in {
			t.Errorf("ParseOperator(%q) = %q", in, got)
		}
	}
	if _, err := ParseOperator("and"); err == nil {
		t.Error("expected error for lowercase operator")
	}
}
