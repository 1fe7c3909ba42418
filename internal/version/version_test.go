package version

import "testing"

func TestString(t *testing.T) {
	prev := [3]string{Version, Commit, Date}
	t.Cleanup(func() { Version, Commit, Date = prev[0], prev[1], prev[2] })

	Version, Commit, Date = "v1.2.0", "abc123", "2026-10-01"
	if got, want := String(), "savedobjects v1.2.0 (commit abc123, built 2026-10-01)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
