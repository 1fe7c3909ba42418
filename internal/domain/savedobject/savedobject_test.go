package savedobject

import "testing"

func TestRawID(t *testing.T) {
	tests := []struct {
		ns, typ, id string
		want        string
	}{
		{"", "dashboard", "abc", "dashboard:abc"},
		{"default", "dashboard", "abc", "dashboard:abc"},
		{"foo", "dashboard", "abc", "foo:dashboard:abc"},
	}
	for _, tt := range tests {
		if got := RawID(tt.ns, tt.typ, tt.id); got != tt.want {
			t.Errorf("RawID(%q, %q, %q) = %q, want %q", tt.ns, tt.typ, tt.id, got, tt.want)
		}
	}
}

func TestTrimRawID(t *testing.T) {
	tests := []struct {
		raw, ns, typ string
		want         string
	}{
		{"dashboard:abc", "", "dashboard", "abc"},
		{"foo:dashboard:abc", "foo", "dashboard", "abc"},
		{"foo:dashboard:abc", "", "dashboard", "foo:dashboard:abc"},
		{"dashboard:a:b", "", "dashboard", "a:b"},
		{"plain", "", "dashboard", "plain"},
	}
	for _, tt := range tests {
		if got := TrimRawID(tt.raw, tt.ns, tt.typ); got != tt.want {
			t.Errorf("TrimRawID(%q, %q, %q) = %q, want %q", tt.raw, tt.ns, tt.typ, got, tt.want)
		}
	}
}

func TestVersion(t *testing.T) {
	v := EncodeVersion(7, 1)
	if v != "WzcsMV0=" {
		t.Errorf("EncodeVersion(7, 1) = %q, want %q", v, "WzcsMV0=")
	}
	seqNo, primaryTerm, err := DecodeVersion(v)
	if err != nil {
		t.Fatalf("DecodeVersion: %v", err)
	}
	if seqNo != 7 || primaryTerm != 1 {
		t.Errorf("DecodeVersion = (%d, %d), want (7, 1)", seqNo, primaryTerm)
	}
	for _, bad := range []string{"!!", "WzFd", "bm90IGpzb24="} {
		if _, _, err := DecodeVersion(bad); err == nil {
			t.Errorf("DecodeVersion(%q): expected error", bad)
		}
	}
}

func TestEmptyPage(t *testing.T) {
	p := EmptyPage(2, 20)
	if p.Page != 2 || p.PerPage != 20 || p.Total != 0 {
		t.Errorf("EmptyPage = %+v", p)
	}
	if p.SavedObjects == nil || len(p.SavedObjects) != 0 {
		t.Errorf("SavedObjects = %#v, want empty non-nil", p.SavedObjects)
	}
}
